// Package content provides the HTTP handlers mounted under /contents:
// article CRUD, source article creation and the like count read.
package content

import (
	"time"

	"content-api/internal/domain/entity"
	artUC "content-api/internal/usecase/article"
	srcUC "content-api/internal/usecase/source"
)

// ArticleDTO is the JSON representation of a stored article.
type ArticleDTO struct {
	ID        string    `json:"_id" example:"654c609c1d32906852a3b01e"`
	Title     string    `json:"title" example:"The Basics of Binary Code"`
	Content   string    `json:"content" example:"Binary code is a two-symbol system used by computers to represent data..."`
	Summary   string    `json:"summary,omitempty" example:"An introduction to how computers count."`
	ImageURL  string    `json:"imageUrl,omitempty" example:"https://ichef.bbci.co.uk/news/976/cpsprodpb/1234/binary.jpg"`
	Category  string    `json:"category" example:"Technology" enums:"Technology,History,News"`
	Level     string    `json:"level" example:"Easy" enums:"Easy,Medium,Hard"`
	Author    string    `json:"author,omitempty" example:"Jane Doe"`
	SourceID  string    `json:"sourceId,omitempty" example:"654c5f1a1d32906852a3afff"`
	CreatedAt time.Time `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
}

func toDTO(a *entity.Article) ArticleDTO {
	return ArticleDTO{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		Summary:   a.Summary,
		ImageURL:  a.ImageURL,
		Category:  string(a.Category),
		Level:     string(a.Level),
		Author:    a.Author,
		SourceID:  a.SourceID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// ArticleRequest is the body of POST /contents and PUT /contents/{id}.
// english_level is accepted as an alias of level; level wins when both are sent.
type ArticleRequest struct {
	Title        *string `json:"title" example:"The Basics of Binary Code"`
	Content      *string `json:"content" example:"Binary code is a two-symbol system used by computers to represent data..."`
	Summary      *string `json:"summary,omitempty"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	Category     *string `json:"category" example:"Technology"`
	Level        *string `json:"level" example:"Easy"`
	EnglishLevel *string `json:"english_level,omitempty" example:"Easy"`
	Author       *string `json:"author,omitempty"`
	SourceID     *string `json:"sourceId,omitempty"`
}

func (r ArticleRequest) level() *string {
	if r.Level != nil {
		return r.Level
	}
	return r.EnglishLevel
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r ArticleRequest) createInput() artUC.CreateInput {
	return artUC.CreateInput{
		Title:    deref(r.Title),
		Content:  deref(r.Content),
		Summary:  deref(r.Summary),
		ImageURL: deref(r.ImageURL),
		Category: deref(r.Category),
		Level:    deref(r.level()),
		Author:   deref(r.Author),
		SourceID: deref(r.SourceID),
	}
}

func (r ArticleRequest) patch() entity.ArticlePatch {
	p := entity.ArticlePatch{
		Title:    r.Title,
		Content:  r.Content,
		Summary:  r.Summary,
		ImageURL: r.ImageURL,
		Author:   r.Author,
		SourceID: r.SourceID,
	}
	if r.Category != nil {
		c := entity.Category(*r.Category)
		p.Category = &c
	}
	if lvl := r.level(); lvl != nil {
		l := entity.Level(*lvl)
		p.Level = &l
	}
	return p
}

// SourceArticleRequest is the body of POST /contents/source.
type SourceArticleRequest struct {
	Title       string     `json:"title" example:"Scientists map the seafloor"`
	Content     string     `json:"content" example:"A new survey of the Atlantic..."`
	SourceURL   string     `json:"sourceUrl" example:"https://www.bbc.co.uk/news/articles/c0000000000o"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Source      string     `json:"source,omitempty" example:"BBC" enums:"BBC"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" example:"2024-01-15T08:00:00Z"`
}

func (r SourceArticleRequest) createInput() srcUC.CreateInput {
	return srcUC.CreateInput{
		Title:       r.Title,
		Content:     r.Content,
		SourceURL:   r.SourceURL,
		ImageURL:    r.ImageURL,
		Source:      r.Source,
		PublishedAt: r.PublishedAt,
	}
}

// CreatedResponse is returned by both create endpoints.
type CreatedResponse struct {
	ArticleID string `json:"articleId" example:"654c609c1d32906852a3b01e"`
}

// ListResponse wraps GET /contents results.
type ListResponse struct {
	Data []ArticleDTO `json:"data"`
}

// GetResponse wraps GET /contents/{id} results.
type GetResponse struct {
	Data ArticleDTO `json:"data"`
}

// LikeCountResponse is returned by GET /contents/{articleId}/like-count.
type LikeCountResponse struct {
	ArticleID string `json:"articleId" example:"654c609c1d32906852a3b01e"`
	Count     int64  `json:"count" example:"42"`
}
