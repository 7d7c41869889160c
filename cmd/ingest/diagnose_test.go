package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-api/internal/usecase/ingest"
)

type stubFeedFetcher map[string]struct {
	items []ingest.FeedItem
	err   error
}

func (s stubFeedFetcher) Fetch(_ context.Context, url string) ([]ingest.FeedItem, error) {
	r := s[url]
	return r.items, r.err
}

func TestDiagnoseFeeds(t *testing.T) {
	older := time.Date(2024, 1, 14, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 1, 15, 10, 30, 0, 0, time.FixedZone("JST", 9*60*60))

	fetcher := stubFeedFetcher{
		"https://feeds.example.com/ok": {items: []ingest.FeedItem{
			{URL: "https://example.com/1", PublishedAt: &older},
			{URL: "https://example.com/2", PublishedAt: &newer},
			{URL: "https://example.com/3"},
		}},
		"https://feeds.example.com/empty": {},
		"https://feeds.example.com/down":  {err: errors.New("status 503")},
	}
	feeds := []ingest.Feed{
		{Name: "ok", URL: "https://feeds.example.com/ok"},
		{Name: "empty", URL: "https://feeds.example.com/empty"},
		{Name: "down", URL: "https://feeds.example.com/down"},
	}

	got := diagnoseFeeds(context.Background(), fetcher, feeds)
	require.Len(t, got, 3)

	assert.Equal(t, "ok", got[0].Name)
	assert.Equal(t, statusOK, got[0].Status)
	assert.Equal(t, 3, got[0].ItemCount)
	assert.Equal(t, "2024-01-15T01:30:00Z", got[0].LatestDate)

	assert.Equal(t, statusEmpty, got[1].Status)
	assert.Empty(t, got[1].LatestDate)

	assert.Equal(t, statusError, got[2].Status)
	assert.Contains(t, got[2].ErrorMessage, "503")
}

func TestWriteDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	healthy, err := writeDiagnostics(&buf, []FeedDiagnostic{
		{Name: "a", Status: statusOK, ItemCount: 2},
		{Name: "b", Status: statusEmpty},
	})
	require.NoError(t, err)
	assert.False(t, healthy)

	var decoded []FeedDiagnostic
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 2)

	buf.Reset()
	healthy, err = writeDiagnostics(&buf, []FeedDiagnostic{{Name: "a", Status: statusOK}})
	require.NoError(t, err)
	assert.True(t, healthy)
}
