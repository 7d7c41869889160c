package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"content-api/internal/domain/entity"
	"content-api/internal/observability/metrics"
	srcUC "content-api/internal/usecase/source"
)

// Feed is a configured publisher feed.
type Feed struct {
	Name   string
	URL    string
	Source entity.Source
}

// FeedItem represents a single item from an RSS/Atom feed.
type FeedItem struct {
	Title       string
	URL         string
	Content     string
	ImageURL    string
	PublishedAt *time.Time
}

// FeedFetcher is an interface for fetching RSS/Atom feeds from a URL.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]FeedItem, error)
}

// SourceStore stores source articles. It is satisfied by *source.Service.
type SourceStore interface {
	Create(ctx context.Context, in srcUC.CreateInput) (*entity.SourceArticle, error)
	FilterNew(ctx context.Context, urls []string) ([]string, error)
}

// ContentFetchConfig controls content enhancement.
type ContentFetchConfig struct {
	Parallelism int // Maximum number of items processed concurrently per feed
	Threshold   int // Minimum feed content length (in characters) before fetching the page
}

// Service provides feed ingest use cases.
type Service struct {
	Store          SourceStore
	FeedFetcher    FeedFetcher
	ContentFetcher ContentFetcher // nil disables content enhancement
	// Limiter paces page fetches against the publisher. nil means unlimited.
	Limiter       *rate.Limiter
	contentConfig ContentFetchConfig
}

// NewService creates a new ingest Service.
//
// Example:
//
//	config := ContentFetchConfig{Parallelism: 4, Threshold: 1500}
//	svc := NewService(sourceService, rssFetcher, readabilityFetcher, rate.NewLimiter(2, 1), config)
//	stats, err := svc.CrawlAll(ctx, feeds)
func NewService(store SourceStore, feedFetcher FeedFetcher, contentFetcher ContentFetcher, limiter *rate.Limiter, contentConfig ContentFetchConfig) *Service {
	if contentConfig.Parallelism <= 0 {
		contentConfig.Parallelism = 1
	}
	return &Service{
		Store:          store,
		FeedFetcher:    feedFetcher,
		ContentFetcher: contentFetcher,
		Limiter:        limiter,
		contentConfig:  contentConfig,
	}
}

// CrawlStats contains statistics about a crawl operation.
type CrawlStats struct {
	Feeds      int
	FeedItems  int64
	Inserted   int64
	Duplicated int64
	Invalid    int64
	Duration   time.Duration
}

// CrawlAll fetches and stores new items from every feed.
// It performs the following steps for each feed:
// 1. Fetches the RSS/Atom feed
// 2. Filters out already stored items using a batch URL check
// 3. Enhances short content with the full page text in parallel
// 4. Stores new source articles
// A feed that cannot be fetched is logged and skipped. Storage failures abort the crawl.
func (s *Service) CrawlAll(ctx context.Context, feeds []Feed) (*CrawlStats, error) {
	logger := slog.Default()
	startAll := time.Now()
	stats := &CrawlStats{Feeds: len(feeds)}

	for _, feed := range feeds {
		if err := s.processFeed(ctx, feed, stats); err != nil {
			stats.Duration = time.Since(startAll)
			return stats, err
		}
	}

	stats.Duration = time.Since(startAll)
	logger.Info("all feeds crawl completed",
		slog.Int("feeds", stats.Feeds),
		slog.Int64("feed_items", stats.FeedItems),
		slog.Int64("inserted", stats.Inserted),
		slog.Int64("duplicated", stats.Duplicated),
		slog.Int64("invalid", stats.Invalid),
		slog.Duration("duration", stats.Duration),
	)

	return stats, nil
}

// processFeed processes a single feed by fetching, deduplicating,
// enhancing and storing items. It updates the provided stats atomically.
func (s *Service) processFeed(ctx context.Context, feed Feed, stats *CrawlStats) error {
	logger := slog.Default().With(slog.String("feed", feed.Name))
	feedStart := time.Now()

	feedItems, err := s.FeedFetcher.Fetch(ctx, feed.URL)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Warn("failed to fetch feed",
			slog.String("feed_url", feed.URL),
			slog.Any("error", err))
		metrics.RecordFeedCrawlError(feed.Name, "fetch_failed")
		// Continue with other feeds even if one fails
		return nil
	}

	atomic.AddInt64(&stats.FeedItems, int64(len(feedItems)))
	if len(feedItems) == 0 {
		logger.Info("feed is empty", slog.String("feed_url", feed.URL))
		return nil
	}

	// N+1問題解消: 事前に全URLをバッチで存在チェック
	urls := make([]string, 0, len(feedItems))
	for _, item := range feedItems {
		urls = append(urls, item.URL)
	}
	fresh, err := s.Store.FilterNew(ctx, urls)
	if err != nil {
		metrics.RecordFeedCrawlError(feed.Name, "batch_check_failed")
		return fmt.Errorf("check existing urls for %s: %w", feed.Name, err)
	}

	freshSet := make(map[string]bool, len(fresh))
	for _, u := range fresh {
		freshSet[u] = true
	}

	var inserted, invalid int64
	newItems := make([]FeedItem, 0, len(fresh))
	for _, item := range feedItems {
		// 既に存在するURL・フィード内の重複はスキップ
		if !freshSet[item.URL] {
			continue
		}
		delete(freshSet, item.URL)
		newItems = append(newItems, item)
	}
	duplicated := int64(len(feedItems) - len(newItems))
	atomic.AddInt64(&stats.Duplicated, duplicated)

	err = s.processFeedItems(ctx, feed, newItems, &inserted, &invalid)
	atomic.AddInt64(&stats.Inserted, inserted)
	atomic.AddInt64(&stats.Invalid, invalid)

	feedDuration := time.Since(feedStart)
	metrics.RecordFeedCrawl(feed.Name, feedDuration, int(inserted), int(duplicated), int(invalid), 0)

	if err != nil {
		metrics.RecordFeedCrawlError(feed.Name, "process_items_failed")
		return fmt.Errorf("process feed items for %s: %w", feed.Name, err)
	}

	logger.Info("feed crawl completed",
		slog.Int("feed_items", len(feedItems)),
		slog.Int64("inserted", inserted),
		slog.Int64("duplicated", duplicated),
		slog.Int64("invalid", invalid),
		slog.Duration("duration", feedDuration),
	)
	return nil
}

// processFeedItems enhances and stores items in parallel.
//
// Error Handling:
//   - Context cancellation: propagates immediately (aborts crawl)
//   - Validation errors: logged and counted, processing continues
//   - Storage errors: propagate (abort crawl for this feed)
func (s *Service) processFeedItems(ctx context.Context, feed Feed, items []FeedItem, inserted, invalid *int64) error {
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.contentConfig.Parallelism)

	for _, feedItem := range items {
		item := feedItem

		eg.Go(func() error {
			item = s.enhanceContent(egCtx, item)

			_, err := s.Store.Create(egCtx, srcUC.CreateInput{
				Title:       item.Title,
				Content:     item.Content,
				SourceURL:   item.URL,
				ImageURL:    item.ImageURL,
				Source:      string(feed.Source),
				PublishedAt: item.PublishedAt,
			})
			switch {
			case err == nil:
				atomic.AddInt64(inserted, 1)
				return nil
			case errors.Is(err, entity.ErrValidationFailed):
				atomic.AddInt64(invalid, 1)
				slog.Warn("invalid feed item, skipping",
					slog.String("feed", feed.Name),
					slog.String("url", item.URL),
					slog.Any("error", err))
				return nil
			default:
				return fmt.Errorf("store source article: %w", err)
			}
		})
	}

	return eg.Wait()
}

// enhanceContent replaces short feed content with the full page text.
//
// Behavior:
//   - ContentFetcher == nil → feed content (feature disabled)
//   - feed length >= threshold → feed content (skip fetch)
//   - feed length < threshold → fetch page, fall back to feed content on error
//   - fetched text shorter than feed content → feed content
//
// A missing ImageURL is filled from the page's og:image whenever the page is fetched.
// It never returns an error so that fetch failures do not break the crawl.
func (s *Service) enhanceContent(ctx context.Context, item FeedItem) FeedItem {
	logger := slog.Default()

	if s.ContentFetcher == nil {
		return item
	}

	feedLength := utf8.RuneCountInString(item.Content)
	if feedLength >= s.contentConfig.Threshold {
		logger.Debug("feed content sufficient, skipping fetch",
			slog.String("url", item.URL),
			slog.Int("feed_length", feedLength),
			slog.Int("threshold", s.contentConfig.Threshold))
		metrics.RecordContentFetchSkipped()
		return item
	}

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx); err != nil {
			return item
		}
	}

	fetchStart := time.Now()
	page, err := s.ContentFetcher.FetchContent(ctx, item.URL)
	fetchDuration := time.Since(fetchStart)

	if err != nil {
		logger.Warn("content fetch failed, using feed content",
			slog.String("url", item.URL),
			slog.Any("error", err),
			slog.Duration("fetch_duration", fetchDuration))
		metrics.RecordContentFetchFailed(fetchDuration)
		return item
	}
	metrics.RecordContentFetchSuccess(fetchDuration)

	fetchedLength := utf8.RuneCountInString(page.Text)
	logger.Debug("content fetch successful",
		slog.String("url", item.URL),
		slog.Int("feed_length", feedLength),
		slog.Int("fetched_length", fetchedLength),
		slog.Duration("fetch_duration", fetchDuration))

	// 抽出結果がフィードより短い場合は採用しない
	if fetchedLength > feedLength {
		item.Content = page.Text
	}
	if item.ImageURL == "" {
		item.ImageURL = page.ImageURL
	}
	return item
}
