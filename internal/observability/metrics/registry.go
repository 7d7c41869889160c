// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Content metrics track writes and reads against the content collections
var (
	// ArticlesWrittenTotal counts article writes by operation (create, update, delete)
	ArticlesWrittenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_articles_written_total",
			Help: "Total number of article writes by operation",
		},
		[]string{"operation"},
	)

	// SourceArticlesCreatedTotal counts stored source articles by publisher
	SourceArticlesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_source_articles_created_total",
			Help: "Total number of source articles stored",
		},
		[]string{"source", "origin"},
	)

	// LikeCountReadsTotal counts like-count lookups
	LikeCountReadsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "content_like_count_reads_total",
			Help: "Total number of like count lookups",
		},
	)

	// ValidationFailuresTotal counts rejected writes by record kind
	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_validation_failures_total",
			Help: "Total number of writes rejected by validation",
		},
		[]string{"kind"},
	)
)

// Database metrics track MongoDB operations
var (
	// DBOperationDuration measures MongoDB operation duration
	DBOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mongodb_operation_duration_seconds",
			Help:    "MongoDB operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"collection", "operation"},
	)

	// DBOperationErrors counts failed MongoDB operations.
	// A document that does not exist is not counted.
	DBOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongodb_operation_errors_total",
			Help: "Total number of failed MongoDB operations",
		},
		[]string{"collection", "operation"},
	)
)

// Batch metrics track the offline import and ingest tools
var (
	// ImportRecordsTotal counts bulk import records by kind and result
	ImportRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "import_records_total",
			Help: "Total number of records processed by bulk import",
		},
		[]string{"kind", "result"},
	)

	// FeedCrawlDuration measures time to crawl a feed
	FeedCrawlDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_crawl_duration_seconds",
			Help:    "Time taken to crawl a feed",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"feed"},
	)

	// FeedCrawlErrors counts errors during feed crawling
	FeedCrawlErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_crawl_errors_total",
			Help: "Total number of feed crawl errors",
		},
		[]string{"feed", "error_type"},
	)

	// FeedItemsTotal counts feed items by outcome (inserted, duplicate, invalid, failed)
	FeedItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_items_total",
			Help: "Total number of feed items processed",
		},
		[]string{"feed", "outcome"},
	)

	// ContentFetchAttemptsTotal counts full-page content fetch attempts by result
	ContentFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_attempts_total",
			Help: "Total number of content fetch attempts",
		},
		[]string{"result"},
	)

	// ContentFetchDuration measures content fetch duration
	ContentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Time taken to fetch article content",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
	)
)

// Resilience metrics track circuit breakers
var (
	// CircuitBreakerState is 0 closed, 1 half-open, 2 open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	// CircuitBreakerRejectionsTotal counts calls refused while a breaker was open
	CircuitBreakerRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_rejections_total",
			Help: "Total number of calls rejected by an open circuit breaker",
		},
		[]string{"name"},
	)
)
