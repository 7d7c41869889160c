package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type stubPinger struct {
	err   error
	delay time.Duration
	calls int
}

func (p *stubPinger) Ping(ctx context.Context, _ *readpref.ReadPref) error {
	p.calls++
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return p.err
}

type stubBreaker gobreaker.State

func (b stubBreaker) State() gobreaker.State { return gobreaker.State(b) }

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		pinger     Pinger
		breaker    BreakerStater
		wantCode   int
		wantStatus string
	}{
		{"healthy", &stubPinger{}, stubBreaker(gobreaker.StateClosed), http.StatusOK, "healthy"},
		{"ping fails", &stubPinger{err: errors.New("server selection timeout")}, nil, http.StatusServiceUnavailable, "unhealthy"},
		{"breaker open", &stubPinger{}, stubBreaker(gobreaker.StateOpen), http.StatusOK, "degraded"},
		{"breaker open and ping fails", &stubPinger{err: errors.New("down")}, stubBreaker(gobreaker.StateOpen), http.StatusServiceUnavailable, "unhealthy"},
		{"not configured", nil, nil, http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HealthHandler{DB: tt.pinger, Database: "content", Breaker: tt.breaker, Version: "test-version"}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			resp := decodeHealth(t, rec)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, "test-version", resp.Version)
			assert.NotEmpty(t, resp.Timestamp)
			assert.Contains(t, resp.Checks, "database")
			if tt.breaker != nil {
				assert.Contains(t, resp.Checks, "circuit_breaker")
			}
		})
	}
}

func TestHealthHandler_PingErrorNotExposed(t *testing.T) {
	h := &HealthHandler{DB: &stubPinger{err: errors.New("mongodb://admin:hunter2@db:27017 refused")}}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.NotContains(t, rec.Body.String(), "hunter2")
	assert.Equal(t, "ping failed", decodeHealth(t, rec).Checks["database"].Message)
}

func TestHealthHandler_CacheControl(t *testing.T) {
	h := &HealthHandler{DB: &stubPinger{}}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestReadyHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name     string
		pinger   Pinger
		wantCode int
		wantBody string
	}{
		{"ready", &stubPinger{}, http.StatusOK, "ready"},
		{"ping fails", &stubPinger{err: errors.New("down")}, http.StatusServiceUnavailable, "database not ready\n"},
		{"not configured", nil, http.StatusServiceUnavailable, "database not configured\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			(&ReadyHandler{DB: tt.pinger}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestReadyHandler_Timeout(t *testing.T) {
	p := &stubPinger{delay: 5 * time.Second}
	start := time.Now()
	rec := httptest.NewRecorder()
	(&ReadyHandler{DB: p}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestLiveHandler_ServeHTTP(t *testing.T) {
	rec := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
}
