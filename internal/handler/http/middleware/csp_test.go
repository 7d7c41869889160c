package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"content-api/pkg/security/csp"
)

func serveCSP(cfg CSPConfig, path string) http.Header {
	h := CSP(cfg)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Header()
}

func TestCSP_PolicyByPath(t *testing.T) {
	cfg := DefaultCSPConfig()

	tests := []struct {
		path string
		want string
	}{
		{"/contents", csp.StrictPolicy().String()},
		{"/health", csp.StrictPolicy().String()},
		{"/swagger/index.html", csp.SwaggerUIPolicy().String()},
		{"/swagger", csp.StrictPolicy().String()},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, serveCSP(cfg, tt.path).Get(csp.HeaderEnforce))
		})
	}
}

func TestCSP_LongestPrefixWins(t *testing.T) {
	docs := csp.Policy{}.With("default-src", "'self'")
	cfg := CSPConfig{
		Enabled:       true,
		DefaultPolicy: csp.StrictPolicy(),
		PathPolicies: map[string]csp.Policy{
			"/swagger/":      csp.SwaggerUIPolicy(),
			"/swagger/docs/": docs,
		},
	}

	assert.Equal(t, "default-src 'self'", serveCSP(cfg, "/swagger/docs/a").Get(csp.HeaderEnforce))
}

func TestCSP_ReportOnly(t *testing.T) {
	cfg := DefaultCSPConfig()
	cfg.ReportOnly = true

	h := serveCSP(cfg, "/contents")
	assert.Empty(t, h.Get(csp.HeaderEnforce))
	assert.Equal(t, csp.StrictPolicy().String(), h.Get(csp.HeaderReportOnly))
}

func TestCSP_Disabled(t *testing.T) {
	cfg := DefaultCSPConfig()
	cfg.Enabled = false

	h := serveCSP(cfg, "/contents")
	assert.Empty(t, h.Get(csp.HeaderEnforce))
	assert.Empty(t, h.Get(csp.HeaderReportOnly))
}

func TestCSP_EmptyPolicySendsNothing(t *testing.T) {
	h := serveCSP(CSPConfig{Enabled: true}, "/contents")
	assert.Empty(t, h.Get(csp.HeaderEnforce))
}
