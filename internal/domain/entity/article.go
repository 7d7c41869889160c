// Package entity defines the core domain entities and validation logic for the application.
// It contains the content records served by the API (Article, SourceArticle),
// their enumerations, validation rules and domain-specific errors.
package entity

import (
	"strings"
	"time"
)

// Category is the subject area of an article.
type Category string

// Supported article categories.
const (
	CategoryTechnology Category = "Technology"
	CategoryHistory    Category = "History"
	CategoryNews       Category = "News"
)

// Categories returns every valid category in canonical casing.
func Categories() []Category {
	return []Category{CategoryTechnology, CategoryHistory, CategoryNews}
}

// Level is the English reading difficulty of an article.
type Level string

// Supported reading levels.
const (
	LevelEasy   Level = "Easy"
	LevelMedium Level = "Medium"
	LevelHard   Level = "Hard"
)

// Levels returns every valid level in canonical casing.
func Levels() []Level {
	return []Level{LevelEasy, LevelMedium, LevelHard}
}

// ParseCategory maps any casing of a known category to its canonical form.
// Unknown values are returned trimmed but otherwise untouched so that
// validation can report them.
func ParseCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return Category(s)
}

// ParseLevel maps any casing of a known level to its canonical form.
func ParseLevel(s string) Level {
	s = strings.TrimSpace(s)
	for _, l := range Levels() {
		if strings.EqualFold(s, string(l)) {
			return l
		}
	}
	return Level(s)
}

// Article represents a content record exposed by the API.
// SourceID optionally references the SourceArticle it was derived from;
// the article does not own that record.
type Article struct {
	ID        string
	Title     string
	Content   string
	Summary   string
	ImageURL  string
	Category  Category
	Level     Level
	Author    string
	SourceID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize trims free-text fields and canonicalizes enum casing.
func (a *Article) Normalize() {
	a.Title = strings.TrimSpace(a.Title)
	a.Summary = strings.TrimSpace(a.Summary)
	a.ImageURL = strings.TrimSpace(a.ImageURL)
	a.Author = strings.TrimSpace(a.Author)
	a.SourceID = strings.TrimSpace(a.SourceID)
	a.Category = ParseCategory(string(a.Category))
	a.Level = ParseLevel(string(a.Level))
}

// ArticlePatch carries a partial update. Nil fields are left untouched.
type ArticlePatch struct {
	Title    *string
	Content  *string
	Summary  *string
	ImageURL *string
	Category *Category
	Level    *Level
	Author   *string
	SourceID *string
}

// IsEmpty reports whether the patch would change nothing.
func (p *ArticlePatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Summary == nil && p.ImageURL == nil &&
		p.Category == nil && p.Level == nil && p.Author == nil && p.SourceID == nil
}

// Normalize applies the same canonicalization as Article.Normalize to present fields.
func (p *ArticlePatch) Normalize() {
	trim := func(s *string) {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	trim(p.Title)
	trim(p.Summary)
	trim(p.ImageURL)
	trim(p.Author)
	trim(p.SourceID)
	if p.Category != nil {
		c := ParseCategory(string(*p.Category))
		p.Category = &c
	}
	if p.Level != nil {
		l := ParseLevel(string(*p.Level))
		p.Level = &l
	}
}

// Apply merges the patch onto a copy of the article and returns it.
func (p *ArticlePatch) Apply(a Article) Article {
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Content != nil {
		a.Content = *p.Content
	}
	if p.Summary != nil {
		a.Summary = *p.Summary
	}
	if p.ImageURL != nil {
		a.ImageURL = *p.ImageURL
	}
	if p.Category != nil {
		a.Category = *p.Category
	}
	if p.Level != nil {
		a.Level = *p.Level
	}
	if p.Author != nil {
		a.Author = *p.Author
	}
	if p.SourceID != nil {
		a.SourceID = *p.SourceID
	}
	return a
}

// ArticleFilter is an equality filter for listing articles.
// Zero values mean "any".
type ArticleFilter struct {
	Category Category
	Level    Level
}
