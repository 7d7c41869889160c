package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"content-api/internal/repository"
)

type LikeRepo struct {
	coll *mongo.Collection
	exec executor
}

func NewLikeRepo(db *mongo.Database, opts Options) repository.LikeRepository {
	return &LikeRepo{
		coll: db.Collection(LikedArticlesCollection),
		exec: newExecutor(LikedArticlesCollection, opts),
	}
}

// CountByArticleID counts likes whose articleId is stored either as an
// ObjectID or as its hex string.
func (repo *LikeRepo) CountByArticleID(ctx context.Context, articleID string) (int64, error) {
	oid, err := toObjectID(articleID)
	if err != nil {
		return 0, err
	}

	var count int64
	err = repo.exec.run(ctx, "count_documents", func(ctx context.Context) error {
		var err error
		count, err = repo.coll.CountDocuments(ctx, bson.M{"articleId": bson.M{"$in": bson.A{oid, articleID}}})
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
