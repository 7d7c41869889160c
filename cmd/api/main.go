package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"content-api/internal/config"
	"content-api/internal/handler/http/middleware"
	mongoRepo "content-api/internal/infra/adapter/persistence/mongodb"
	"content-api/internal/infra/db"
	"content-api/internal/observability/logging"
	"content-api/internal/observability/tracing"
	"content-api/internal/resilience/circuitbreaker"
	artUC "content-api/internal/usecase/article"
	srcUC "content-api/internal/usecase/source"

	_ "content-api/docs" // swagger docs
)

// @title           Content API
// @version         1.0.0
// @description     API documentation for managing articles and source articles.
// @description     記事と取得元記事の CRUD、いいね数の参照を提供します。

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		logger.Error("failed to set up tracing", slog.Any("error", err))
		os.Exit(1)
	}

	client, database := initDatabase(ctx, logger, cfg)

	components := setupServer(logger, cfg, database)
	components.DBClient = client

	runServer(ctx, cancel, logger, cfg, components, shutdownTracing)
}

// initLogger installs the JSON logger as the process default.
func initLogger(level string) *slog.Logger {
	logger := logging.New(os.Stdout, level)
	slog.SetDefault(logger)
	return logger
}

// initDatabase connects to MongoDB and makes sure the indexes exist.
func initDatabase(ctx context.Context, logger *slog.Logger, cfg config.Config) (*mongo.Client, *mongo.Database) {
	client, database, err := db.Open(ctx, cfg.Mongo.ConnectionConfig())
	if err != nil {
		logger.Error("failed to connect to database",
			slog.String("uri", db.RedactURI(cfg.Mongo.URI)),
			slog.Any("error", err))
		os.Exit(1)
	}

	indexCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.ConnectTimeout)
	defer cancel()
	if err := mongoRepo.EnsureIndexes(indexCtx, database); err != nil {
		logger.Error("failed to ensure indexes", slog.Any("error", err))
		_ = db.Close(client, cfg.Server.ShutdownTimeout)
		os.Exit(1)
	}
	return client, database
}

// ServerComponents holds what the server needs at runtime and on shutdown.
type ServerComponents struct {
	Handler     http.Handler
	RateLimiter *middleware.RateLimiter
	DBClient    *mongo.Client
}

// setupServer wires repositories, use cases and handlers.
func setupServer(logger *slog.Logger, cfg config.Config, database *mongo.Database) *ServerComponents {
	breaker := circuitbreaker.NewMongo()
	opts := mongoRepo.Options{OpTimeout: cfg.Mongo.OpTimeout, Breaker: breaker}

	artSvc := artUC.NewService(
		mongoRepo.NewArticleRepo(database, opts),
		mongoRepo.NewLikeRepo(database, opts),
		cfg.Articles,
	)
	srcSvc := &srcUC.Service{Repo: mongoRepo.NewSourceArticleRepo(database, opts), Origin: "api"}

	limiter, err := newRateLimiter(logger, cfg.RateLimit)
	if err != nil {
		logger.Error("failed to configure rate limiting", slog.Any("error", err))
		os.Exit(1)
	}

	handler := buildHandler(logger, cfg, Deps{
		Articles: artSvc,
		Sources:  srcSvc,
		DB:       database.Client(),
		Database: cfg.Mongo.Database,
		Breaker:  breaker,
		Limiter:  limiter,
	})

	return &ServerComponents{Handler: handler, RateLimiter: limiter}
}

// newRateLimiter returns nil when rate limiting is disabled.
func newRateLimiter(logger *slog.Logger, cfg config.RateLimitConfig) (*middleware.RateLimiter, error) {
	if !cfg.Enabled {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
		return nil, nil
	}

	trusted, err := middleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}
	if len(trusted) > 0 {
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(trusted)))
	} else {
		logger.Info("rate limiting: using RemoteAddr (proxy headers ignored)")
	}

	logger.Info("rate limiting initialized",
		slog.Float64("rps", cfg.RPS),
		slog.Int("burst", cfg.Burst))
	return middleware.NewRateLimiter(cfg.RPS, cfg.Burst, middleware.NewIPExtractor(trusted)), nil
}

// runServer serves until SIGINT/SIGTERM, then drains in-flight requests
// and releases the database and tracing resources.
func runServer(ctx context.Context, cancel context.CancelFunc, logger *slog.Logger, cfg config.Config, components *ServerComponents, shutdownTracing func(context.Context) error) {
	if components.RateLimiter != nil {
		go components.RateLimiter.Run(ctx, time.Minute)
	}

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Slowloris 対策
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}

	// Cancel background goroutines (rate limiter cleanup)
	cancel()

	if components.DBClient != nil {
		if err := db.Close(components.DBClient, cfg.Server.ShutdownTimeout); err != nil {
			logger.Error("failed to disconnect database", slog.Any("error", err))
		}
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("failed to flush traces", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
