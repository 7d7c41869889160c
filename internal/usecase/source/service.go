// Package source provides use cases for raw source articles ingested from
// external publishers. It validates records before they are stored and
// reports which feed URLs are already known.
package source

import (
	"context"
	"fmt"
	"time"

	"content-api/internal/domain/entity"
	"content-api/internal/observability/metrics"
	"content-api/internal/repository"
)

// CreateInput represents the input parameters for storing a source article.
type CreateInput struct {
	Title       string
	Content     string
	SourceURL   string
	ImageURL    string
	Source      string
	PublishedAt *time.Time
}

// Service provides source article use cases.
// Origin labels metrics with the caller ("api", "ingest", "import").
type Service struct {
	Repo   repository.SourceArticleRepository
	Origin string
}

// Create validates and stores a source article.
// Returns entity.ValidationErrors when title, content, sourceUrl or a
// supported publisher is missing, or a value is malformed.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.SourceArticle, error) {
	art := &entity.SourceArticle{
		Title:       in.Title,
		Content:     in.Content,
		SourceURL:   in.SourceURL,
		ImageURL:    in.ImageURL,
		Source:      entity.Source(in.Source),
		PublishedAt: in.PublishedAt,
	}
	art.Normalize()

	if err := entity.ValidateSourceArticle(art); err != nil {
		metrics.RecordValidationFailure("source_article")
		return nil, err
	}

	if err := s.Repo.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("create source article: %w", err)
	}
	metrics.RecordSourceArticleCreated(string(art.Source), s.origin())
	return art, nil
}

// FilterNew returns the subset of urls that are not stored yet, preserving order.
// Duplicates within urls are reported once.
func (s *Service) FilterNew(ctx context.Context, urls []string) ([]string, error) {
	if len(urls) == 0 {
		return nil, nil
	}

	exists, err := s.Repo.ExistsByURLBatch(ctx, urls)
	if err != nil {
		return nil, fmt.Errorf("check existing source urls: %w", err)
	}

	seen := make(map[string]bool, len(urls))
	fresh := make([]string, 0, len(urls))
	for _, u := range urls {
		if exists[u] || seen[u] {
			continue
		}
		seen[u] = true
		fresh = append(fresh, u)
	}
	return fresh, nil
}

func (s *Service) origin() string {
	if s.Origin == "" {
		return "api"
	}
	return s.Origin
}
