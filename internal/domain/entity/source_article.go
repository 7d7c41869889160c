package entity

import (
	"strings"
	"time"
)

// Source names the upstream publisher of a SourceArticle.
type Source string

// SourceBBC is the only publisher currently ingested.
const SourceBBC Source = "BBC"

// Sources returns every valid publisher.
func Sources() []Source {
	return []Source{SourceBBC}
}

// ParseSource maps any casing of a known publisher to its canonical form.
func ParseSource(s string) Source {
	s = strings.TrimSpace(s)
	for _, src := range Sources() {
		if strings.EqualFold(s, string(src)) {
			return src
		}
	}
	return Source(s)
}

// SourceArticle is a raw record ingested from an external feed,
// prior to being rewritten into an Article.
type SourceArticle struct {
	ID          string
	Title       string
	Content     string
	SourceURL   string
	ImageURL    string
	Source      Source
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Normalize trims free-text fields and canonicalizes the publisher name.
func (s *SourceArticle) Normalize() {
	s.Title = strings.TrimSpace(s.Title)
	s.SourceURL = strings.TrimSpace(s.SourceURL)
	s.ImageURL = strings.TrimSpace(s.ImageURL)
	if s.Source != "" {
		s.Source = ParseSource(string(s.Source))
	}
}
