package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"content-api/internal/handler/http/respond"
	"content-api/internal/usecase/ingest"
)

// Crawler runs one ingest pass. It is satisfied by *ingest.Service.
type Crawler interface {
	CrawlAll(ctx context.Context, feeds []ingest.Feed) (*ingest.CrawlStats, error)
}

// Job is a single ingest run over a fixed feed list.
type Job struct {
	Crawler Crawler
	Feeds   []ingest.Feed
	Timeout time.Duration
	Metrics *IngestMetrics
	Logger  *slog.Logger
}

// Run executes the job under its timeout and records the outcome.
func (j *Job) Run(ctx context.Context) (*ingest.CrawlStats, error) {
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	start := time.Now()
	j.Logger.Info("ingest started", slog.Int("feeds", len(j.Feeds)))

	stats, err := j.Crawler.CrawlAll(ctx, j.Feeds)
	elapsed := time.Since(start)

	var inserted int64
	if stats != nil {
		inserted = stats.Inserted
	}

	if err != nil {
		// 機密情報をマスクしてログ出力
		j.Logger.Error("ingest failed",
			slog.String("error", respond.SanitizeError(err)),
			slog.Duration("duration", elapsed))
		if j.Metrics != nil {
			j.Metrics.RecordJob("failure", elapsed.Seconds(), len(j.Feeds), inserted)
		}
		return stats, err
	}

	if j.Metrics != nil {
		j.Metrics.RecordJob("success", elapsed.Seconds(), stats.Feeds, inserted)
	}
	j.Logger.Info("ingest completed",
		slog.Int("feeds", stats.Feeds),
		slog.Int64("feed_items", stats.FeedItems),
		slog.Int64("inserted", stats.Inserted),
		slog.Int64("duplicated", stats.Duplicated),
		slog.Int64("invalid", stats.Invalid),
		slog.Duration("duration", elapsed))
	return stats, nil
}

// Schedule runs job on cfg.CronSchedule until ctx is cancelled.
// Overlapping runs are skipped. Readiness is reported through health when non-nil.
// It returns after the running job, if any, has finished.
func Schedule(ctx context.Context, cfg IngestConfig, job *Job, health *HealthServer) error {
	c := cron.New(
		cron.WithLocation(cfg.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(cfg.CronSchedule, func() {
		_, _ = job.Run(ctx)
	}); err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	c.Start()
	if health != nil {
		health.SetReady(true)
	}
	job.Logger.Info("ingest scheduler started",
		slog.String("schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone))

	<-ctx.Done()

	if health != nil {
		health.SetReady(false)
	}
	<-c.Stop().Done()
	job.Logger.Info("ingest scheduler stopped")
	return nil
}
