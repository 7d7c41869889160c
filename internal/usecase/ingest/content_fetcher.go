package ingest

import (
	"context"
)

// Page is the readable part of an article page.
type Page struct {
	// Text is the extracted article body without markup.
	Text string
	// ImageURL is the page's lead image (og:image), if any.
	ImageURL string
}

// ContentFetcher fetches full article content from URLs.
// Implementations extract clean article text from web pages and must
// prevent requests to private addresses, enforce size limits and timeouts,
// and validate redirect targets.
//
// Example usage:
//
//	fetcher := fetcher.NewReadabilityFetcher(config)
//	page, err := fetcher.FetchContent(ctx, "https://www.bbc.co.uk/news/articles/c1")
//	if err != nil {
//	    // fall back to feed content
//	}
type ContentFetcher interface {
	// FetchContent fetches and extracts article content from the given URL.
	//
	// Errors:
	//   - ErrInvalidURL: URL format is invalid or uses unsupported scheme
	//   - ErrPrivateIP: URL resolves to a private IP address
	//   - ErrTooManyRedirects: Redirect chain exceeds configured maximum
	//   - ErrBodyTooLarge: Response body exceeds size limit
	//   - ErrTimeout: Request timed out
	//   - ErrReadabilityFailed: Content extraction failed
	//   - gobreaker.ErrOpenState: Circuit breaker is open (too many failures)
	FetchContent(ctx context.Context, url string) (Page, error)
}
