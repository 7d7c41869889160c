package content

import (
	"context"
	"net/http"

	"content-api/internal/domain/entity"
	artUC "content-api/internal/usecase/article"
	srcUC "content-api/internal/usecase/source"
)

// ArticleService is the article use case consumed by the handlers.
type ArticleService interface {
	Create(ctx context.Context, in artUC.CreateInput) (*entity.Article, error)
	List(ctx context.Context, in artUC.ListInput) ([]*entity.Article, error)
	Get(ctx context.Context, id string) (*entity.Article, error)
	Update(ctx context.Context, id string, patch entity.ArticlePatch) (*entity.Article, error)
	Delete(ctx context.Context, id string) error
	LikeCount(ctx context.Context, articleID string) (int64, error)
}

// SourceService is the source article use case consumed by the handlers.
type SourceService interface {
	Create(ctx context.Context, in srcUC.CreateInput) (*entity.SourceArticle, error)
}

// Register mounts every /contents route on mux.
func Register(mux *http.ServeMux, articles ArticleService, sources SourceService) {
	mux.Handle("POST /contents", CreateHandler{articles})
	mux.Handle("GET /contents", ListHandler{articles})
	mux.Handle("GET /contents/{id}", GetHandler{articles})
	mux.Handle("PUT /contents/{id}", UpdateHandler{articles})
	mux.Handle("DELETE /contents/{id}", DeleteHandler{articles})
	mux.Handle("GET /contents/{articleId}/like-count", LikeCountHandler{articles})

	mux.Handle("POST /contents/source", CreateSourceHandler{sources})

	// PUT without an id is answered with 400 rather than 405
	mux.Handle("PUT /contents", UpdateHandler{articles})
	mux.Handle("PUT /contents/{$}", UpdateHandler{articles})
}
