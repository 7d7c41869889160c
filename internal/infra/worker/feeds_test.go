package worker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-api/internal/domain/entity"
	"content-api/internal/usecase/ingest"
)

func TestDefaultFeeds(t *testing.T) {
	feeds := DefaultFeeds()
	require.NotEmpty(t, feeds)
	for _, f := range feeds {
		assert.Equal(t, entity.SourceBBC, f.Source)
		assert.Contains(t, f.URL, "feeds.bbci.co.uk")
	}
}

func TestParseFeeds(t *testing.T) {
	feeds, err := ParseFeeds([]byte(`
feeds:
  - name: bbc-world
    url: https://feeds.bbci.co.uk/news/world/rss.xml
    source: bbc
  - name: bbc-business
    url: https://feeds.bbci.co.uk/news/business/rss.xml
    source: BBC
`))
	require.NoError(t, err)
	assert.Equal(t, []ingest.Feed{
		{Name: "bbc-world", URL: "https://feeds.bbci.co.uk/news/world/rss.xml", Source: entity.SourceBBC},
		{Name: "bbc-business", URL: "https://feeds.bbci.co.uk/news/business/rss.xml", Source: entity.SourceBBC},
	}, feeds)
}

func TestParseFeeds_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"not yaml", "feeds: [", "parse feeds file"},
		{"empty", "feeds: []", "no feeds"},
		{"missing url", "feeds:\n  - name: a\n    source: BBC\n", "url"},
		{"unsupported source", "feeds:\n  - name: a\n    url: https://example.com/rss\n    source: CNN\n", "source"},
		{"duplicate", "feeds:\n  - {name: a, url: 'https://x.example/rss', source: BBC}\n  - {name: b, url: 'https://x.example/rss', source: BBC}\n", "duplicate url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFeeds([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFeeds(t *testing.T) {
	feeds, err := LoadFeeds("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFeeds(), feeds)

	path := filepath.Join(t.TempDir(), "feeds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feeds:\n  - {name: a, url: 'https://feeds.bbci.co.uk/a.xml', source: BBC}\n"), 0o600))
	feeds, err = LoadFeeds(path)
	require.NoError(t, err)
	assert.Len(t, feeds, 1)

	_, err = LoadFeeds(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read feeds file")
}
