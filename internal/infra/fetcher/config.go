package fetcher

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"content-api/internal/usecase/ingest"
)

// DefaultUserAgent identifies page fetches to publishers.
const DefaultUserAgent = "ContentAPIIngestBot/1.0"

// ContentFetchConfig holds the configuration for full-article page fetches.
type ContentFetchConfig struct {
	// Enabled controls whether content fetching is enabled.
	// When false, feed content is stored as-is.
	Enabled bool

	// Threshold is the minimum feed content length (in characters) before fetching.
	// Content at or above the threshold is considered sufficient.
	Threshold int

	// Timeout bounds a single HTTP request.
	Timeout time.Duration

	// Parallelism is the maximum number of feed items processed concurrently.
	Parallelism int

	// MaxBodySize is the maximum HTTP response body size in bytes.
	// It is enforced while reading, not from the Content-Length header.
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	MaxRedirects int

	// DenyPrivateIPs rejects URLs resolving to private/loopback/link-local IPs (SSRF).
	// Should always be true in production.
	DenyPrivateIPs bool

	UserAgent string
}

// DefaultConfig returns the default configuration for content fetching.
func DefaultConfig() ContentFetchConfig {
	return ContentFetchConfig{
		Enabled:        true,
		Threshold:      1500,
		Timeout:        10 * time.Second,
		Parallelism:    10,
		MaxBodySize:    10 * 1024 * 1024, // 10MB
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      DefaultUserAgent,
	}
}

// Validate checks if the configuration values are valid and safe.
//
// Validation rules:
//   - Threshold: >= 0 (0 always fetches)
//   - Timeout: > 0
//   - Parallelism: 1-50
//   - MaxBodySize: 1KB-100MB
//   - MaxRedirects: 0-10
func (c *ContentFetchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Threshold, validation.Min(0)),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.Parallelism, validation.Required, validation.Min(1), validation.Max(50)),
		validation.Field(&c.MaxBodySize, validation.Required, validation.Min(int64(1024)), validation.Max(int64(100*1024*1024))),
		validation.Field(&c.MaxRedirects, validation.Min(0), validation.Max(10)),
	)
}

// Ingest returns the part of the configuration the ingest use case needs.
func (c ContentFetchConfig) Ingest() ingest.ContentFetchConfig {
	return ingest.ContentFetchConfig{Parallelism: c.Parallelism, Threshold: c.Threshold}
}

// LoadConfigFromEnv loads configuration from CONTENT_FETCH_* environment variables.
// Unset variables keep their default. A malformed value is an error, not a fallback,
// and the result is validated.
//
// Environment variables:
//   - CONTENT_FETCH_ENABLED: "true" or "false" (default: true)
//   - CONTENT_FETCH_THRESHOLD: integer (default: 1500)
//   - CONTENT_FETCH_TIMEOUT: duration string, e.g., "10s" (default: 10s)
//   - CONTENT_FETCH_PARALLELISM: integer (default: 10)
//   - CONTENT_FETCH_MAX_BODY_SIZE: integer in bytes (default: 10485760)
//   - CONTENT_FETCH_MAX_REDIRECTS: integer (default: 5)
//   - CONTENT_FETCH_DENY_PRIVATE_IPS: "true" or "false" (default: true)
func LoadConfigFromEnv() (ContentFetchConfig, error) {
	cfg := DefaultConfig()

	if val := os.Getenv("CONTENT_FETCH_ENABLED"); val != "" {
		cfg.Enabled = val == "true"
	}
	if val := os.Getenv("CONTENT_FETCH_DENY_PRIVATE_IPS"); val != "" {
		cfg.DenyPrivateIPs = val == "true"
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"CONTENT_FETCH_THRESHOLD", &cfg.Threshold},
		{"CONTENT_FETCH_PARALLELISM", &cfg.Parallelism},
		{"CONTENT_FETCH_MAX_REDIRECTS", &cfg.MaxRedirects},
	}
	for _, v := range ints {
		val := os.Getenv(v.key)
		if val == "" {
			continue
		}
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %v", v.key, err)
		}
		*v.dst = parsed
	}

	if val := os.Getenv("CONTENT_FETCH_TIMEOUT"); val != "" {
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return cfg, fmt.Errorf("invalid CONTENT_FETCH_TIMEOUT: %v (expected format: '10s', '1m')", err)
		}
		cfg.Timeout = parsed
	}

	if val := os.Getenv("CONTENT_FETCH_MAX_BODY_SIZE"); val != "" {
		parsed, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid CONTENT_FETCH_MAX_BODY_SIZE: %v", err)
		}
		cfg.MaxBodySize = parsed
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
