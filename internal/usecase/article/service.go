package article

import (
	"context"
	"errors"
	"fmt"

	"content-api/internal/domain/entity"
	"content-api/internal/observability/metrics"
	"content-api/internal/repository"
)

// CreateInput represents the input parameters for creating a new article.
type CreateInput struct {
	Title    string
	Content  string
	Summary  string
	ImageURL string
	Category string
	Level    string
	Author   string
	SourceID string
}

// ListInput holds the optional equality filters for List.
// Values are matched case-insensitively against the known enumerations.
type ListInput struct {
	Category string
	Level    string
}

// Service provides article management use cases.
// It handles business logic for article operations and delegates persistence to the repositories.
type Service struct {
	Repo  repository.ArticleRepository
	Likes repository.LikeRepository
	Rules entity.ArticleRules
}

// NewService wires a Service with the given validation rules.
func NewService(repo repository.ArticleRepository, likes repository.LikeRepository, rules entity.ArticleRules) *Service {
	return &Service{Repo: repo, Likes: likes, Rules: rules}
}

// Create validates and stores a new article.
// Every violated constraint is reported in a single entity.ValidationErrors.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Article, error) {
	art := &entity.Article{
		Title:    in.Title,
		Content:  in.Content,
		Summary:  in.Summary,
		ImageURL: in.ImageURL,
		Category: entity.Category(in.Category),
		Level:    entity.Level(in.Level),
		Author:   in.Author,
		SourceID: in.SourceID,
	}
	art.Normalize()

	if err := s.Rules.ValidateArticle(art); err != nil {
		metrics.RecordValidationFailure("article")
		return nil, err
	}

	if err := s.Repo.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	metrics.RecordArticleWrite("create")
	return art, nil
}

// List retrieves every article matching the filter. An empty filter lists all articles.
func (s *Service) List(ctx context.Context, in ListInput) ([]*entity.Article, error) {
	filter := entity.ArticleFilter{}
	if in.Category != "" {
		filter.Category = entity.ParseCategory(in.Category)
	}
	if in.Level != "" {
		filter.Level = entity.ParseLevel(in.Level)
	}

	articles, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	if articles == nil {
		articles = []*entity.Article{}
	}
	return articles, nil
}

// Get retrieves a single article by its ID.
// Returns ErrInvalidArticleID if the ID is malformed.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, id string) (*entity.Article, error) {
	if !entity.IsValidID(id) {
		return nil, ErrInvalidArticleID
	}

	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, translate("get article", err)
	}
	return article, nil
}

// Update applies a partial update and returns the article as stored afterwards.
// Fields absent from the patch are left unchanged; required fields cannot be blanked.
func (s *Service) Update(ctx context.Context, id string, patch entity.ArticlePatch) (*entity.Article, error) {
	if id == "" || patch.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	if !entity.IsValidID(id) {
		return nil, ErrInvalidArticleID
	}

	patch.Normalize()
	if err := s.Rules.ValidatePatch(&patch); err != nil {
		metrics.RecordValidationFailure("article")
		return nil, err
	}

	article, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		return nil, translate("update article", err)
	}
	metrics.RecordArticleWrite("update")
	return article, nil
}

// Delete removes an article by its ID.
// Returns ErrArticleNotFound when there was nothing to delete.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !entity.IsValidID(id) {
		return ErrInvalidArticleID
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return translate("delete article", err)
	}
	metrics.RecordArticleWrite("delete")
	return nil
}

// LikeCount returns how many likes reference the article.
// The article itself is not required to exist.
func (s *Service) LikeCount(ctx context.Context, articleID string) (int64, error) {
	if !entity.IsValidID(articleID) {
		return 0, ErrInvalidArticleID
	}

	count, err := s.Likes.CountByArticleID(ctx, articleID)
	if err != nil {
		return 0, translate("count likes", err)
	}
	metrics.RecordLikeCountRead()
	return count, nil
}

func translate(op string, err error) error {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		return ErrArticleNotFound
	case errors.Is(err, entity.ErrInvalidID):
		return ErrInvalidArticleID
	}
	return fmt.Errorf("%s: %w", op, err)
}
