// Package http provides the HTTP server plumbing shared by every route:
// health endpoints, metrics, request logging, panic recovery, body limits,
// rate limiting and request timeouts.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"content-api/internal/handler/http/respond"
)

// Pinger checks database reachability. *mongo.Client satisfies it.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// BreakerStater reports the state of a circuit breaker.
type BreakerStater interface {
	State() gobreaker.State
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler reports database connectivity and circuit breaker state.
type HealthHandler struct {
	DB       Pinger
	Database string
	Breaker  BreakerStater
	Version  string
}

// ServeHTTP returns 200 when MongoDB answers a ping, 503 otherwise.
// An open breaker with a reachable database is reported as degraded.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{"database": h.checkDatabase(ctx)}
	if h.Breaker != nil {
		checks["circuit_breaker"] = checkBreaker(h.Breaker)
	}

	status := "healthy"
	code := http.StatusOK
	for _, c := range checks {
		switch c.Status {
		case "unhealthy":
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		case "degraded":
			if status == "healthy" {
				status = "degraded"
			}
		}
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if h.DB == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}

	start := time.Now()
	if err := h.DB.Ping(ctx, readpref.Primary()); err != nil {
		slog.Default().Warn("health: database ping failed",
			slog.String("error", respond.SanitizeError(err)))
		return CheckStatus{Status: "unhealthy", Message: "ping failed"}
	}
	return CheckStatus{
		Status: "healthy",
		Details: map[string]any{
			"database":     h.Database,
			"ping_latency": time.Since(start).String(),
		},
	}
}

func checkBreaker(b BreakerStater) CheckStatus {
	state := b.State()
	status := "healthy"
	if state != gobreaker.StateClosed {
		status = "degraded"
	}
	return CheckStatus{Status: status, Details: map[string]any{"state": state.String()}}
}

// ReadyHandler handles readiness probes: 200 once MongoDB answers a ping.
type ReadyHandler struct {
	DB Pinger
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.DB.Ping(ctx, readpref.Primary()); err != nil {
		http.Error(w, "database not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler handles liveness probes. It always answers 200.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
