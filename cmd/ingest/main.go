// Command ingest pulls RSS feeds into the sourceArticles collection, either
// once (-once) or on INGEST_CRON_SCHEDULE until SIGINT/SIGTERM.
// With -check it only probes the configured feeds and prints a JSON report.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"content-api/internal/config"
	mongoRepo "content-api/internal/infra/adapter/persistence/mongodb"
	"content-api/internal/infra/db"
	"content-api/internal/infra/fetcher"
	"content-api/internal/infra/scraper"
	workerPkg "content-api/internal/infra/worker"
	"content-api/internal/observability/logging"
	"content-api/internal/resilience/circuitbreaker"
	"content-api/internal/usecase/ingest"
	srcUC "content-api/internal/usecase/source"
)

func main() {
	once := flag.Bool("once", false, "run a single ingest pass and exit")
	check := flag.Bool("check", false, "probe every feed, print a report and exit")
	flag.Parse()

	os.Exit(run(*once, *check))
}

// run returns the process exit code so that deferred cleanup happens first.
func run(once, check bool) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		return 1
	}
	logger := initLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load ingest configuration (fail-open strategy)
	ingestMetrics := workerPkg.NewIngestMetrics(prometheus.DefaultRegisterer)
	ingestCfg := workerPkg.LoadConfigFromEnv(logger, ingestMetrics)
	logger.Info("ingest configuration loaded",
		slog.String("cron_schedule", ingestCfg.CronSchedule),
		slog.String("timezone", ingestCfg.Timezone),
		slog.Duration("run_timeout", ingestCfg.RunTimeout),
		slog.Float64("fetch_rps", ingestCfg.FetchRPS),
		slog.Int("health_port", ingestCfg.HealthPort))

	feeds, err := workerPkg.LoadFeeds(ingestCfg.FeedsFile)
	if err != nil {
		logger.Error("failed to load feeds", slog.String("file", ingestCfg.FeedsFile), slog.Any("error", err))
		return 1
	}

	if check {
		diags := diagnoseFeeds(ctx, scraper.NewRSSFetcher(createHTTPClient()), feeds)
		healthy, err := writeDiagnostics(os.Stdout, diags)
		if err != nil || !healthy {
			return 1
		}
		return 0
	}

	client, database, err := db.Open(ctx, cfg.Mongo.ConnectionConfig())
	if err != nil {
		logger.Error("failed to connect to database",
			slog.String("uri", db.RedactURI(cfg.Mongo.URI)),
			slog.Any("error", err))
		return 1
	}
	defer func() {
		if err := db.Close(client, cfg.Server.ShutdownTimeout); err != nil {
			logger.Error("failed to disconnect database", slog.Any("error", err))
		}
	}()

	repoOpts := mongoRepo.Options{OpTimeout: cfg.Mongo.OpTimeout, Breaker: circuitbreaker.NewMongo()}
	store := &srcUC.Service{Repo: mongoRepo.NewSourceArticleRepo(database, repoOpts), Origin: "ingest"}

	job := &workerPkg.Job{
		Crawler: setupIngestService(logger, store, ingestCfg.FetchRPS),
		Feeds:   feeds,
		Timeout: ingestCfg.RunTimeout,
		Metrics: ingestMetrics,
		Logger:  logger,
	}

	if once {
		if _, err := job.Run(ctx); err != nil {
			return 1
		}
		return 0
	}

	healthAddr := fmt.Sprintf(":%d", ingestCfg.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger, prometheus.DefaultGatherer)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	if err := workerPkg.Schedule(ctx, ingestCfg, job, healthServer); err != nil {
		logger.Error("failed to schedule ingest", slog.Any("error", err))
		return 1
	}
	return 0
}

func initLogger(level string) *slog.Logger {
	logger := logging.New(os.Stdout, level)
	slog.SetDefault(logger)
	return logger
}

// setupIngestService builds the ingest service with the RSS fetcher and,
// when enabled, the readability content fetcher.
func setupIngestService(logger *slog.Logger, store ingest.SourceStore, fetchRPS float64) *ingest.Service {
	feedFetcher := scraper.NewRSSFetcher(createHTTPClient())

	contentCfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		logger.Error("Failed to load content fetch configuration", slog.Any("error", err))
		logger.Warn("Content fetching disabled due to configuration error")
		contentCfg = fetcher.DefaultConfig()
		contentCfg.Enabled = false
	}

	var contentFetcher ingest.ContentFetcher
	if contentCfg.Enabled {
		contentFetcher = fetcher.NewReadabilityFetcher(contentCfg)
		logger.Info("Content fetching enabled",
			slog.Int("threshold", contentCfg.Threshold),
			slog.Int("parallelism", contentCfg.Parallelism),
			slog.Duration("timeout", contentCfg.Timeout))
	} else {
		logger.Info("Content fetching disabled")
	}

	return ingest.NewService(store, feedFetcher, contentFetcher,
		rate.NewLimiter(rate.Limit(fetchRPS), 1), contentCfg.Ingest())
}

// createHTTPClient creates an HTTP client with timeouts and connection pooling.
// TLS 1.2+ is enforced.
func createHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
	}
}
