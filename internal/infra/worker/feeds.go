package worker

import (
	"fmt"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"

	"content-api/internal/domain/entity"
	"content-api/internal/usecase/ingest"
)

// feedFile is the YAML layout of INGEST_FEEDS_FILE:
//
//	feeds:
//	  - name: bbc-technology
//	    url: https://feeds.bbci.co.uk/news/technology/rss.xml
//	    source: BBC
type feedFile struct {
	Feeds []feedEntry `yaml:"feeds"`
}

type feedEntry struct {
	Name   string `yaml:"name"`
	URL    string `yaml:"url"`
	Source string `yaml:"source"`
}

func (f feedEntry) Validate() error {
	sources := make([]interface{}, 0, len(entity.Sources()))
	for _, s := range entity.Sources() {
		sources = append(sources, s)
	}
	return validation.Errors{
		"name":   validation.Validate(f.Name, validation.Required),
		"url":    validation.Validate(f.URL, validation.Required, is.URL),
		"source": validation.Validate(entity.ParseSource(f.Source), validation.Required, validation.In(sources...)),
	}.Filter()
}

// DefaultFeeds returns the built-in BBC feeds.
func DefaultFeeds() []ingest.Feed {
	return []ingest.Feed{
		{Name: "bbc-news", URL: "https://feeds.bbci.co.uk/news/rss.xml", Source: entity.SourceBBC},
		{Name: "bbc-technology", URL: "https://feeds.bbci.co.uk/news/technology/rss.xml", Source: entity.SourceBBC},
		{Name: "bbc-science", URL: "https://feeds.bbci.co.uk/news/science_and_environment/rss.xml", Source: entity.SourceBBC},
	}
}

// LoadFeeds reads the feed list from path. An empty path returns DefaultFeeds.
func LoadFeeds(path string) ([]ingest.Feed, error) {
	if path == "" {
		return DefaultFeeds(), nil
	}

	// #nosec G304 -- path comes from operator configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read feeds file: %w", err)
	}
	return ParseFeeds(data)
}

// ParseFeeds decodes and validates a YAML feed list.
func ParseFeeds(data []byte) ([]ingest.Feed, error) {
	var file feedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse feeds file: %w", err)
	}
	if len(file.Feeds) == 0 {
		return nil, fmt.Errorf("feeds file lists no feeds")
	}

	seen := make(map[string]bool, len(file.Feeds))
	feeds := make([]ingest.Feed, 0, len(file.Feeds))
	for i, f := range file.Feeds {
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("feed %d: %w", i, err)
		}
		if seen[f.URL] {
			return nil, fmt.Errorf("feed %d: duplicate url %s", i, f.URL)
		}
		seen[f.URL] = true
		feeds = append(feeds, ingest.Feed{Name: f.Name, URL: f.URL, Source: entity.ParseSource(f.Source)})
	}
	return feeds, nil
}
