package metrics

import (
	"time"
)

// RecordArticleWrite records a successful article write.
// Operation should be one of "create", "update" or "delete".
func RecordArticleWrite(operation string) {
	ArticlesWrittenTotal.WithLabelValues(operation).Inc()
}

// RecordSourceArticleCreated records a stored source article.
// Origin distinguishes the API from the ingest and import tools.
func RecordSourceArticleCreated(source, origin string) {
	if source == "" {
		source = "unknown"
	}
	SourceArticlesCreatedTotal.WithLabelValues(source, origin).Inc()
}

// RecordLikeCountRead records a like-count lookup.
func RecordLikeCountRead() {
	LikeCountReadsTotal.Inc()
}

// RecordValidationFailure records a write rejected by validation.
func RecordValidationFailure(kind string) {
	ValidationFailuresTotal.WithLabelValues(kind).Inc()
}

// RecordDBOperation records the duration of a MongoDB operation and counts it
// as an error when err is non-nil. Callers pass nil for "no documents" results.
func RecordDBOperation(collection, operation string, duration time.Duration, err error) {
	DBOperationDuration.WithLabelValues(collection, operation).Observe(duration.Seconds())
	if err != nil {
		DBOperationErrors.WithLabelValues(collection, operation).Inc()
	}
}

// RecordImportRecord records one bulk import record.
// Result should be "inserted", "invalid", "failed" or "skipped".
func RecordImportRecord(kind, result string) {
	ImportRecordsTotal.WithLabelValues(kind, result).Inc()
}

// RecordFeedCrawl records the duration of a feed crawl and the outcome of each item.
func RecordFeedCrawl(feed string, duration time.Duration, inserted, duplicated, invalid, failed int) {
	FeedCrawlDuration.WithLabelValues(feed).Observe(duration.Seconds())

	add := func(outcome string, n int) {
		if n > 0 {
			FeedItemsTotal.WithLabelValues(feed, outcome).Add(float64(n))
		}
	}
	add("inserted", inserted)
	add("duplicate", duplicated)
	add("invalid", invalid)
	add("failed", failed)
}

// RecordFeedCrawlError records an error during feed crawling.
func RecordFeedCrawlError(feed, errorType string) {
	FeedCrawlErrors.WithLabelValues(feed, errorType).Inc()
}

// RecordContentFetchSuccess records a successful content fetch operation.
//
// Example:
//
//	start := time.Now()
//	content, err := fetcher.FetchContent(ctx, url)
//	if err == nil {
//	    RecordContentFetchSuccess(time.Since(start))
//	}
func RecordContentFetchSuccess(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("success").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordContentFetchFailed records a failed content fetch operation.
func RecordContentFetchFailed(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("failure").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordContentFetchSkipped records a skipped content fetch.
// This occurs when feed content is already long enough.
func RecordContentFetchSkipped() {
	ContentFetchAttemptsTotal.WithLabelValues("skipped").Inc()
}

// RecordBreakerState publishes a breaker's state as 0 (closed), 1 (half-open) or 2 (open).
func RecordBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordBreakerRejection records a call refused by an open breaker.
func RecordBreakerRejection(name string) {
	CircuitBreakerRejectionsTotal.WithLabelValues(name).Inc()
}
