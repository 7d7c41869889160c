// Package ingest pulls articles from publisher feeds into the source article
// collection. Feeds are fetched, already known URLs are skipped, short feed
// content is optionally replaced by the full page text, and every new item is
// stored through the source article use case.
package ingest

import "errors"

// Sentinel errors for content fetching operations.
// These errors allow callers to distinguish between different failure modes
// and fall back to feed content.
var (
	// ErrInvalidURL indicates the URL format is invalid or uses an unsupported scheme.
	// Only http:// and https:// schemes are supported.
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP indicates the URL resolves to a private IP address.
	ErrPrivateIP = errors.New("private IP access denied (SSRF prevention)")

	// ErrTooManyRedirects indicates the redirect chain exceeded the configured maximum.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response body exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrReadabilityFailed indicates content extraction failed.
	ErrReadabilityFailed = errors.New("content extraction failed")
)
