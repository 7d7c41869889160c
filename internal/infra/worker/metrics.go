package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// IngestMetrics tracks ingest configuration and job runs.
//
//   - ingest_config_load_timestamp, ingest_config_validation_errors_total{field},
//     ingest_config_fallbacks_total{field}, ingest_config_fallback_active
//   - ingest_job_runs_total{status}, ingest_job_duration_seconds,
//     ingest_job_feeds_processed_total, ingest_job_items_inserted_total,
//     ingest_job_last_success_timestamp
type IngestMetrics struct {
	ConfigLoadTimestamp   prometheus.Gauge
	ValidationErrorsTotal *prometheus.CounterVec
	FallbacksTotal        *prometheus.CounterVec
	FallbackActive        prometheus.Gauge

	JobRunsTotal         *prometheus.CounterVec
	JobDurationSeconds   prometheus.Histogram
	FeedsProcessedTotal  prometheus.Counter
	ItemsInsertedTotal   prometheus.Counter
	LastSuccessTimestamp prometheus.Gauge
}

// NewIngestMetrics creates the metrics and registers them with reg.
// cmd/ingest passes prometheus.DefaultRegisterer; tests pass a fresh registry.
func NewIngestMetrics(reg prometheus.Registerer) *IngestMetrics {
	f := promauto.With(reg)
	return &IngestMetrics{
		ConfigLoadTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "ingest_config_load_timestamp",
			Help: "Unix timestamp of last ingest configuration load",
		}),
		ValidationErrorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ingest_config_validation_errors_total",
			Help: "Total number of ingest configuration validation errors",
		}, []string{"field"}),
		FallbacksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ingest_config_fallbacks_total",
			Help: "Total number of ingest configuration fallback operations",
		}, []string{"field"}),
		FallbackActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "ingest_config_fallback_active",
			Help: "1 if any ingest configuration fallback is active, 0 otherwise",
		}),

		JobRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "ingest_job_runs_total",
			Help: "Total number of ingest job runs by status (success/failure)",
		}, []string{"status"}),
		JobDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ingest_job_duration_seconds",
			Help:    "Duration of ingest job execution in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		}),
		FeedsProcessedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "ingest_job_feeds_processed_total",
			Help: "Total number of feeds processed across all ingest runs",
		}),
		ItemsInsertedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "ingest_job_items_inserted_total",
			Help: "Total number of source articles inserted across all ingest runs",
		}),
		LastSuccessTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "ingest_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful ingest run",
		}),
	}
}

func (m *IngestMetrics) RecordLoadTimestamp() { m.ConfigLoadTimestamp.SetToCurrentTime() }

func (m *IngestMetrics) RecordValidationError(field string) {
	m.ValidationErrorsTotal.WithLabelValues(field).Inc()
}

func (m *IngestMetrics) RecordFallback(field string) {
	m.FallbacksTotal.WithLabelValues(field).Inc()
}

func (m *IngestMetrics) SetFallbackActive(active bool) {
	if active {
		m.FallbackActive.Set(1)
		return
	}
	m.FallbackActive.Set(0)
}

// RecordJob records one finished run.
func (m *IngestMetrics) RecordJob(status string, seconds float64, feeds int, inserted int64) {
	m.JobRunsTotal.WithLabelValues(status).Inc()
	m.JobDurationSeconds.Observe(seconds)
	m.FeedsProcessedTotal.Add(float64(feeds))
	m.ItemsInsertedTotal.Add(float64(inserted))
	if status == "success" {
		m.LastSuccessTimestamp.SetToCurrentTime()
	}
}
