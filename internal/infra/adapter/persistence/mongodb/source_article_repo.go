package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"content-api/internal/domain/entity"
	"content-api/internal/repository"
)

type SourceArticleRepo struct {
	coll *mongo.Collection
	exec executor
}

func NewSourceArticleRepo(db *mongo.Database, opts Options) repository.SourceArticleRepository {
	return &SourceArticleRepo{
		coll: db.Collection(SourceArticlesCollection),
		exec: newExecutor(SourceArticlesCollection, opts),
	}
}

func (repo *SourceArticleRepo) Create(ctx context.Context, article *entity.SourceArticle) error {
	now := repo.exec.timestamp()
	article.CreatedAt = now
	article.UpdatedAt = now

	var res *mongo.InsertOneResult
	err := repo.exec.run(ctx, "insert_one", func(ctx context.Context) error {
		var err error
		res, err = repo.coll.InsertOne(ctx, newSourceArticleDoc(article))
		return err
	})
	if err != nil {
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		article.ID = oid.Hex()
	}
	return nil
}

// ExistsByURLBatch checks many source URLs with a single $in query.
func (repo *SourceArticleRepo) ExistsByURLBatch(ctx context.Context, urls []string) (map[string]bool, error) {
	result := make(map[string]bool, len(urls))
	if len(urls) == 0 {
		return result, nil
	}

	opts := options.Find().SetProjection(bson.M{"_id": 0, "sourceUrl": 1})
	err := repo.exec.run(ctx, "find_urls", func(ctx context.Context) error {
		cur, err := repo.coll.Find(ctx, bson.M{"sourceUrl": bson.M{"$in": urls}}, opts)
		if err != nil {
			return err
		}
		defer func() { _ = cur.Close(ctx) }()

		for cur.Next(ctx) {
			var doc struct {
				SourceURL string `bson:"sourceUrl"`
			}
			if err := cur.Decode(&doc); err != nil {
				return err
			}
			result[doc.SourceURL] = true
		}
		return cur.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
