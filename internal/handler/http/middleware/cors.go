// Package middleware holds the cross-origin and rate limiting middleware that
// sit at the front of the HTTP chain.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds the configuration for CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is the whitelist of permitted origins. "*" allows any origin.
	AllowedOrigins []string

	// Default: GET, POST, PUT, DELETE, OPTIONS
	AllowedMethods []string

	// Default: Content-Type, X-Request-ID
	AllowedHeaders []string

	// MaxAge is how long preflight results can be cached, in seconds.
	MaxAge int

	Logger *slog.Logger
}

// DefaultCORSConfig returns the permissive configuration used when
// CORS_ALLOWED_ORIGINS is unset.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}
}

// CORS returns an HTTP middleware that handles CORS for cross-origin requests.
//
// Behavior:
//   - no Origin header: the request is same-origin and passes through untouched
//   - disallowed origin: logged at warn, passed through without CORS headers
//   - allowed preflight (OPTIONS): headers set, 204 returned, next is not called
//   - allowed actual request: Access-Control-Allow-Origin set, next called
//
// With the "*" wildcard the literal "*" is returned and credentials are never
// advertised.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	validator := NewWhitelistValidator(config.AllowedOrigins)
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !validator.IsAllowed(origin) {
				logger.Warn("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method),
					slog.String("remote_addr", r.RemoteAddr))
				next.ServeHTTP(w, r)
				return
			}

			if validator.AllowsAny() {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))

				logger.Debug("CORS: preflight request",
					slog.String("origin", origin),
					slog.String("requested_method", r.Header.Get("Access-Control-Request-Method")),
					slog.String("requested_headers", r.Header.Get("Access-Control-Request-Headers")))

				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
