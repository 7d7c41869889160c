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

type ArticleRepo struct {
	coll *mongo.Collection
	exec executor
}

func NewArticleRepo(db *mongo.Database, opts Options) repository.ArticleRepository {
	return &ArticleRepo{
		coll: db.Collection(ArticlesCollection),
		exec: newExecutor(ArticlesCollection, opts),
	}
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	now := repo.exec.timestamp()
	article.CreatedAt = now
	article.UpdatedAt = now

	doc, err := newArticleDoc(article)
	if err != nil {
		return err
	}

	var res *mongo.InsertOneResult
	err = repo.exec.run(ctx, "insert_one", func(ctx context.Context) error {
		var err error
		res, err = repo.coll.InsertOne(ctx, doc)
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

func (repo *ArticleRepo) Get(ctx context.Context, id string) (*entity.Article, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc articleDoc
	err = repo.exec.run(ctx, "find_one", func(ctx context.Context) error {
		return repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	})
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (repo *ArticleRepo) List(ctx context.Context, filter entity.ArticleFilter) ([]*entity.Article, error) {
	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	articles := make([]*entity.Article, 0, 100)

	err := repo.exec.run(ctx, "find", func(ctx context.Context) error {
		cur, err := repo.coll.Find(ctx, filterDoc(filter), options.Find().SetCollation(enumCollation))
		if err != nil {
			return err
		}
		defer func() { _ = cur.Close(ctx) }()

		for cur.Next(ctx) {
			var doc articleDoc
			if err := cur.Decode(&doc); err != nil {
				return err
			}
			articles = append(articles, doc.toEntity())
		}
		return cur.Err()
	})
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// Update applies the patch atomically and returns the document as it is after the update.
func (repo *ArticleRepo) Update(ctx context.Context, id string, patch entity.ArticlePatch) (*entity.Article, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return nil, err
	}
	update, err := patchUpdate(patch, repo.exec.timestamp())
	if err != nil {
		return nil, err
	}

	var doc articleDoc
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = repo.exec.run(ctx, "find_one_and_update", func(ctx context.Context) error {
		return repo.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	})
	if err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id string) error {
	oid, err := toObjectID(id)
	if err != nil {
		return err
	}

	var res *mongo.DeleteResult
	err = repo.exec.run(ctx, "delete_one", func(ctx context.Context) error {
		var err error
		res, err = repo.coll.DeleteOne(ctx, bson.M{"_id": oid})
		return err
	})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return entity.ErrNotFound
	}
	return nil
}
