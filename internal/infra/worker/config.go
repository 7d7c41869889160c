// Package worker runs the feed ingest job: on demand or on a cron schedule,
// with a health server, Prometheus metrics and fail-open configuration.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"content-api/pkg/config"
)

// IngestConfig controls the ingest daemon.
//
// Every field falls back to its default when the environment holds an
// invalid value, so the daemon always starts with a usable schedule.
type IngestConfig struct {
	// CronSchedule is the robfig/cron expression ("minute hour dom month dow").
	// Default: "0 */6 * * *" (every 6 hours)
	CronSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	// Default: "UTC"
	Timezone string

	// RunTimeout bounds one complete ingest run (1m-4h).
	// Default: 10 minutes
	RunTimeout time.Duration

	// FetchRPS paces page fetches against publishers.
	// Default: 2
	FetchRPS float64

	// FeedsFile is an optional YAML feed list. Empty means DefaultFeeds.
	FeedsFile string

	// HealthPort serves /health, /health/ready and /metrics (1024-65535).
	// Default: 9091
	HealthPort int
}

// DefaultConfig returns the ingest defaults.
func DefaultConfig() IngestConfig {
	return IngestConfig{
		CronSchedule: "0 */6 * * *",
		Timezone:     "UTC",
		RunTimeout:   10 * time.Minute,
		FetchRPS:     2,
		HealthPort:   9091,
	}
}

// Validate reports every invalid field at once.
func (c IngestConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.CronSchedule, validation.Required, config.CronRule),
		validation.Field(&c.Timezone, validation.Required, config.TimezoneRule),
		validation.Field(&c.RunTimeout, validation.Required, validation.Min(time.Minute), validation.Max(4*time.Hour)),
		validation.Field(&c.FetchRPS, validation.Required, validation.Min(0.01), validation.Max(100.0)),
		validation.Field(&c.HealthPort, validation.Required, validation.Min(1024), validation.Max(65535)),
	)
}

// Location returns the schedule timezone, UTC when it cannot be loaded.
func (c IngestConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadConfigFromEnv loads the ingest configuration with per-field fallback.
// Rejected values are logged and counted; the returned config is always valid.
//
// Environment variables:
//   - INGEST_CRON_SCHEDULE (default "0 */6 * * *")
//   - INGEST_TIMEZONE (default "UTC")
//   - INGEST_TIMEOUT (default 10m, 1m-4h)
//   - INGEST_FETCH_RPS (default 2)
//   - INGEST_FEEDS_FILE (default: built-in feeds)
//   - INGEST_HEALTH_PORT (default 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *IngestMetrics) IngestConfig {
	cfg := DefaultConfig()
	fallback := false

	note := func(field, warning string) {
		fallback = true
		metrics.RecordValidationError(field)
		metrics.RecordFallback(field)
		logger.Warn("Configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}

	if r := config.LoadWithFallback("INGEST_CRON_SCHEDULE", cfg.CronSchedule, config.ParseString, config.ValidateCronSchedule); r.FallbackApplied {
		note("cron_schedule", r.Warning)
	} else {
		cfg.CronSchedule = r.Value
	}

	if r := config.LoadWithFallback("INGEST_TIMEZONE", cfg.Timezone, config.ParseString, config.ValidateTimezone); r.FallbackApplied {
		note("timezone", r.Warning)
	} else {
		cfg.Timezone = r.Value
	}

	if r := config.LoadWithFallback("INGEST_TIMEOUT", cfg.RunTimeout, config.ParseDuration, func(d time.Duration) error {
		return config.ValidateDuration(d, time.Minute, 4*time.Hour)
	}); r.FallbackApplied {
		note("run_timeout", r.Warning)
	} else {
		cfg.RunTimeout = r.Value
	}

	if r := config.LoadWithFallback("INGEST_FETCH_RPS", cfg.FetchRPS, config.ParseFloat, func(v float64) error {
		if v < 0.01 || v > 100 {
			return fmt.Errorf("value %v out of range [0.01, 100]", v)
		}
		return nil
	}); r.FallbackApplied {
		note("fetch_rps", r.Warning)
	} else {
		cfg.FetchRPS = r.Value
	}

	if r := config.LoadWithFallback("INGEST_HEALTH_PORT", cfg.HealthPort, config.ParseInt, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	}); r.FallbackApplied {
		note("health_port", r.Warning)
	} else {
		cfg.HealthPort = r.Value
	}

	cfg.FeedsFile = config.GetEnvString("INGEST_FEEDS_FILE", "")

	metrics.SetFallbackActive(fallback)
	metrics.RecordLoadTimestamp()
	return cfg
}
