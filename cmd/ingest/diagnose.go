package main

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"content-api/internal/handler/http/respond"
	"content-api/internal/usecase/ingest"
)

// Diagnostic statuses.
const (
	statusOK    = "OK"
	statusEmpty = "EMPTY"
	statusError = "ERROR"
)

// FeedDiagnostic is the result of probing a single feed.
type FeedDiagnostic struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Status       string `json:"status"`
	ItemCount    int    `json:"item_count"`
	LatestDate   string `json:"latest_date,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
	ResponseTime int64  `json:"response_time_ms"`
}

// diagnoseFeeds fetches every feed concurrently without storing anything.
// Results keep the order of feeds.
func diagnoseFeeds(ctx context.Context, f ingest.FeedFetcher, feeds []ingest.Feed) []FeedDiagnostic {
	out := make([]FeedDiagnostic, len(feeds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, feed := range feeds {
		g.Go(func() error {
			out[i] = diagnoseFeed(gctx, f, feed)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func diagnoseFeed(ctx context.Context, f ingest.FeedFetcher, feed ingest.Feed) FeedDiagnostic {
	d := FeedDiagnostic{Name: feed.Name, URL: feed.URL}

	start := time.Now()
	items, err := f.Fetch(ctx, feed.URL)
	d.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		d.Status = statusError
		d.ErrorMessage = respond.SanitizeError(err)
		return d
	}

	d.ItemCount = len(items)
	if d.ItemCount == 0 {
		d.Status = statusEmpty
		return d
	}
	d.Status = statusOK

	var latest time.Time
	for _, it := range items {
		if it.PublishedAt != nil && it.PublishedAt.After(latest) {
			latest = *it.PublishedAt
		}
	}
	if !latest.IsZero() {
		d.LatestDate = latest.UTC().Format(time.RFC3339)
	}
	return d
}

// writeDiagnostics prints the report as indented JSON and reports whether
// every feed returned items.
func writeDiagnostics(w io.Writer, diags []FeedDiagnostic) (bool, error) {
	healthy := true
	for _, d := range diags {
		if d.Status != statusOK {
			healthy = false
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return healthy, enc.Encode(diags)
}
