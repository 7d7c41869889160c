package bulkimport

import (
	"time"

	artUC "content-api/internal/usecase/article"
	srcUC "content-api/internal/usecase/source"
)

// articleRecord is one article in an import file. It accepts the same
// fields as the HTTP API, including the english_level alias.
type articleRecord struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	Summary      string `json:"summary"`
	ImageURL     string `json:"imageUrl"`
	Category     string `json:"category"`
	Level        string `json:"level"`
	EnglishLevel string `json:"english_level"`
	Author       string `json:"author"`
	SourceID     string `json:"sourceId"`
}

func (r articleRecord) input() artUC.CreateInput {
	level := r.Level
	if level == "" {
		level = r.EnglishLevel
	}
	return artUC.CreateInput{
		Title:    r.Title,
		Content:  r.Content,
		Summary:  r.Summary,
		ImageURL: r.ImageURL,
		Category: r.Category,
		Level:    level,
		Author:   r.Author,
		SourceID: r.SourceID,
	}
}

type sourceRecord struct {
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	SourceURL   string     `json:"sourceUrl"`
	ImageURL    string     `json:"imageUrl"`
	Source      string     `json:"source"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func (r sourceRecord) input() srcUC.CreateInput {
	return srcUC.CreateInput{
		Title:       r.Title,
		Content:     r.Content,
		SourceURL:   r.SourceURL,
		ImageURL:    r.ImageURL,
		Source:      r.Source,
		PublishedAt: r.PublishedAt,
	}
}
