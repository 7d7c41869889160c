// Package scraper provides implementations for fetching RSS/Atom feeds.
// It uses the gofeed library to parse feed content with reliability patterns.
package scraper

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"content-api/internal/resilience/circuitbreaker"
	"content-api/internal/resilience/retry"
	"content-api/internal/usecase/ingest"

	"github.com/mmcdole/gofeed"
)

// DefaultUserAgent identifies the ingest crawler to publishers.
const DefaultUserAgent = "ContentAPIIngestBot/1.0"

// RSSFetcher implements ingest.FeedFetcher using the gofeed library.
// It includes circuit breaker and retry logic for improved reliability.
type RSSFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.Breaker
	retryPolicy    retry.Policy
	UserAgent      string
}

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
// It automatically configures circuit breaker and retry logic.
func NewRSSFetcher(client *http.Client) *RSSFetcher {
	return NewRSSFetcherWithPolicy(client, retry.FeedPolicy())
}

// NewRSSFetcherWithPolicy creates an RSSFetcher with a custom retry schedule.
func NewRSSFetcherWithPolicy(client *http.Client, policy retry.Policy) *RSSFetcher {
	return &RSSFetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedConfig()),
		retryPolicy:    policy,
		UserAgent:      DefaultUserAgent,
	}
}

// Fetch retrieves and parses an RSS/Atom feed from the given URL.
// It uses circuit breaker and retry logic for improved reliability.
// Returns a slice of FeedItem containing the parsed feed entries.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]ingest.FeedItem, error) {
	return retry.Do(ctx, f.retryPolicy, func(ctx context.Context) ([]ingest.FeedItem, error) {
		items, err := circuitbreaker.Call(f.circuitBreaker, func() ([]ingest.FeedItem, error) {
			return f.doFetch(ctx, feedURL)
		})
		if circuitbreaker.IsRejected(err) {
			slog.Warn("feed fetch circuit breaker open, request rejected",
				slog.String("url", feedURL),
				slog.String("state", f.circuitBreaker.State().String()))
		}
		return items, err
	})
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]ingest.FeedItem, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = f.UserAgent
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		// gofeed のステータスエラーをリトライ判定できる形に変換
		var he gofeed.HTTPError
		if errors.As(err, &he) {
			return nil, &retry.StatusError{Code: he.StatusCode, Status: he.Status}
		}
		return nil, err
	}

	items := make([]ingest.FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		// Content優先、なければDescriptionを使用
		content := it.Content
		if content == "" {
			content = it.Description
		}

		items = append(items, ingest.FeedItem{
			Title:       strings.TrimSpace(it.Title),
			URL:         strings.TrimSpace(it.Link),
			Content:     content,
			ImageURL:    itemImage(it),
			PublishedAt: it.PublishedParsed,
		})
	}

	return items, nil
}

// itemImage picks the first image the feed advertises for an item:
// <image>, then an image enclosure, then media:thumbnail / media:content.
func itemImage(it *gofeed.Item) string {
	if it.Image != nil && it.Image.URL != "" {
		return it.Image.URL
	}
	for _, enc := range it.Enclosures {
		if enc != nil && enc.URL != "" && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	media := it.Extensions["media"]
	for _, name := range []string{"thumbnail", "content"} {
		for _, e := range media[name] {
			if u := e.Attrs["url"]; u != "" {
				return u
			}
		}
	}
	return ""
}
