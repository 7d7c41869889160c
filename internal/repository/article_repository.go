package repository

import (
	"context"

	"content-api/internal/domain/entity"
)

// ArticleRepository persists articles in a single collection.
// Lookups by an unknown id return entity.ErrNotFound; malformed ids return
// entity.ErrInvalidID; storage failures wrap entity.ErrPersistence.
type ArticleRepository interface {
	// Create stores the article, filling in ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, article *entity.Article) error
	Get(ctx context.Context, id string) (*entity.Article, error)
	// List returns every article matching the equality filter. Order is unspecified.
	List(ctx context.Context, filter entity.ArticleFilter) ([]*entity.Article, error)
	// Update applies the patch and returns the post-update document.
	Update(ctx context.Context, id string, patch entity.ArticlePatch) (*entity.Article, error)
	Delete(ctx context.Context, id string) error
}
