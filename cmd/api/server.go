package main

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"content-api/internal/config"
	hhttp "content-api/internal/handler/http"
	"content-api/internal/handler/http/content"
	"content-api/internal/handler/http/middleware"
	"content-api/internal/handler/http/requestid"
	"content-api/internal/observability/tracing"
)

// Deps are the runtime collaborators of the HTTP handler.
type Deps struct {
	Articles content.ArticleService
	Sources  content.SourceService
	DB       hhttp.Pinger
	Database string
	Breaker  hhttp.BreakerStater
	// Limiter is nil when rate limiting is disabled.
	Limiter *middleware.RateLimiter
}

// buildHandler registers every route and wraps the mux in the middleware chain.
func buildHandler(logger *slog.Logger, cfg config.Config, d Deps) http.Handler {
	return applyMiddleware(logger, cfg, setupRoutes(cfg, d), d.Limiter)
}

func setupRoutes(cfg config.Config, d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	content.Register(mux, d.Articles, d.Sources)

	mux.Handle("GET /health", &hhttp.HealthHandler{
		DB:       d.DB,
		Database: d.Database,
		Breaker:  d.Breaker,
		Version:  cfg.Version,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: d.DB})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	// Swagger UI
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	return mux
}

// applyMiddleware wraps h so that CORS runs first and metrics run closest
// to the handler.
func applyMiddleware(logger *slog.Logger, cfg config.Config, h http.Handler, limiter *middleware.RateLimiter) http.Handler {
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORS.AllowedOrigins
	corsCfg.Logger = logger

	cspCfg := middleware.DefaultCSPConfig()
	cspCfg.Enabled = cfg.CSP.Enabled
	cspCfg.ReportOnly = cfg.CSP.ReportOnly

	mws := []func(http.Handler) http.Handler{
		middleware.CORS(corsCfg),
		middleware.CSP(cspCfg),
		requestid.Middleware,
		tracing.Middleware,
	}
	if limiter != nil {
		mws = append(mws, limiter.Middleware)
	}
	mws = append(mws,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(cfg.Server.MaxBodyBytes),
		hhttp.Timeout(cfg.Server.RequestTimeout),
		hhttp.MetricsMiddleware,
	)
	return hhttp.Chain(h, mws...)
}
