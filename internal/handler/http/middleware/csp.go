package middleware

import (
	"net/http"
	"strings"

	"content-api/pkg/security/csp"
)

// CSPConfig selects a Content-Security-Policy per request path.
type CSPConfig struct {
	Enabled bool

	// DefaultPolicy applies when no PathPolicies prefix matches.
	DefaultPolicy csp.Policy

	// PathPolicies maps path prefixes to policies. The longest matching prefix wins.
	PathPolicies map[string]csp.Policy

	// ReportOnly sends Content-Security-Policy-Report-Only instead of enforcing.
	ReportOnly bool
}

// DefaultCSPConfig is strict for the API and relaxed for the Swagger UI.
func DefaultCSPConfig() CSPConfig {
	return CSPConfig{
		Enabled:       true,
		DefaultPolicy: csp.StrictPolicy(),
		PathPolicies: map[string]csp.Policy{
			"/swagger/": csp.SwaggerUIPolicy(),
		},
	}
}

// CSP sets the policy header before calling next. An empty selected policy
// sends no header.
func CSP(config CSPConfig) func(http.Handler) http.Handler {
	header := csp.HeaderName(config.ReportOnly)
	return func(next http.Handler) http.Handler {
		if !config.Enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p := config.policyFor(r.URL.Path); !p.IsEmpty() {
				w.Header().Set(header, p.String())
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (c CSPConfig) policyFor(path string) csp.Policy {
	longest := ""
	policy := c.DefaultPolicy
	for prefix, p := range c.PathPolicies {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(longest) {
			longest = prefix
			policy = p
		}
	}
	return policy
}
