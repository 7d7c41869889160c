package repository

import (
	"context"

	"content-api/internal/domain/entity"
)

// SourceArticleRepository persists raw ingested records.
type SourceArticleRepository interface {
	Create(ctx context.Context, article *entity.SourceArticle) error
	// ExistsByURLBatch reports which of the given source URLs are already stored.
	ExistsByURLBatch(ctx context.Context, urls []string) (map[string]bool, error)
}

// LikeRepository reads the liked-articles collection.
type LikeRepository interface {
	CountByArticleID(ctx context.Context, articleID string) (int64, error)
}
