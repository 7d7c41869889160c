package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type collectionIndexes struct {
	collection string
	models     []mongo.IndexModel
}

func indexSpecs() []collectionIndexes {
	return []collectionIndexes{
		{
			collection: ArticlesCollection,
			models: []mongo.IndexModel{
				// GET /contents?category=&level= の絞り込み用。List と同じ collation でないと使われない
				{
					Keys:    bson.D{{Key: "category", Value: 1}, {Key: "level", Value: 1}},
					Options: options.Index().SetName("idx_articles_category_level_ci").SetCollation(enumCollation),
				},
				{Keys: bson.D{{Key: "sourceId", Value: 1}}, Options: options.Index().SetName("idx_articles_source_id").SetSparse(true)},
			},
		},
		{
			collection: SourceArticlesCollection,
			models: []mongo.IndexModel{
				// ingest の重複チェック用
				{Keys: bson.D{{Key: "sourceUrl", Value: 1}}, Options: options.Index().SetName("idx_source_articles_source_url")},
			},
		},
		{
			collection: LikedArticlesCollection,
			models: []mongo.IndexModel{
				{Keys: bson.D{{Key: "articleId", Value: 1}}, Options: options.Index().SetName("idx_liked_articles_article_id")},
			},
		},
	}
}

// EnsureIndexes creates the indexes the repositories rely on.
// Creating an index that already exists with the same definition is a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, spec := range indexSpecs() {
		if _, err := db.Collection(spec.collection).Indexes().CreateMany(ctx, spec.models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", spec.collection, err)
		}
	}
	return nil
}
