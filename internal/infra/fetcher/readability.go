package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"content-api/internal/resilience/circuitbreaker"
	"content-api/internal/usecase/ingest"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// ReadabilityFetcher implements ingest.ContentFetcher using the Mozilla
// Readability algorithm (go-shiori/go-readability). The page's lead image is
// taken from its Open Graph or Twitter card metadata.
//
// Every request and every redirect target is checked against SSRF rules.
// ReadabilityFetcher is safe for concurrent use.
type ReadabilityFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.Breaker
	config         ContentFetchConfig
}

// NewReadabilityFetcher creates a new ReadabilityFetcher with the given configuration.
//
// Example:
//
//	config := DefaultConfig()
//	fetcher := NewReadabilityFetcher(config)
//	page, err := fetcher.FetchContent(ctx, "https://www.bbc.co.uk/news/articles/c0000001")
func NewReadabilityFetcher(config ContentFetchConfig) *ReadabilityFetcher {
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	f := &ReadabilityFetcher{
		circuitBreaker: circuitbreaker.New(circuitbreaker.PageConfig()),
		config:         config,
	}

	f.client = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ingest.ErrTooManyRedirects, len(via))
			}
			// リダイレクト先もSSRFチェック
			if err := validateURL(req.URL.String(), f.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target validation failed: %w", err)
			}
			return nil
		},
	}
	return f
}

// FetchContent fetches the page at urlStr and extracts its article text and lead image.
// Callers are expected to fall back to the feed content on error.
func (f *ReadabilityFetcher) FetchContent(ctx context.Context, urlStr string) (ingest.Page, error) {
	if err := validateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		return ingest.Page{}, err
	}

	return circuitbreaker.Call(f.circuitBreaker, func() (ingest.Page, error) {
		return f.doFetch(ctx, urlStr)
	})
}

// doFetch performs the HTTP request and extraction without the circuit breaker.
func (f *ReadabilityFetcher) doFetch(ctx context.Context, urlStr string) (ingest.Page, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return ingest.Page{}, fmt.Errorf("%w: failed to create request: %v", ingest.ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return ingest.Page{}, fmt.Errorf("%w: request exceeded %v", ingest.ErrTimeout, f.config.Timeout)
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Err != nil {
			return ingest.Page{}, urlErr.Err
		}
		return ingest.Page{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return ingest.Page{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	// サイズ上限+1バイトまで読み、超過を検出する
	htmlBytes, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodySize+1))
	if err != nil {
		return ingest.Page{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(htmlBytes)) > f.config.MaxBodySize {
		return ingest.Page{}, fmt.Errorf("%w: response size %d bytes exceeds limit %d bytes",
			ingest.ErrBodyTooLarge, len(htmlBytes), f.config.MaxBodySize)
	}

	// Use the final URL after redirects to resolve relative links.
	pageURL, _ := url.Parse(urlStr)
	if resp.Request != nil && resp.Request.URL != nil {
		pageURL = resp.Request.URL
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(htmlBytes))
	if err != nil {
		return ingest.Page{}, fmt.Errorf("%w: %v", ingest.ErrReadabilityFailed, err)
	}
	image := leadImage(doc, pageURL)

	article, err := readability.FromReader(bytes.NewReader(htmlBytes), pageURL)
	if err != nil {
		return ingest.Page{}, fmt.Errorf("%w: %v", ingest.ErrReadabilityFailed, err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return ingest.Page{}, fmt.Errorf("%w: no readable content found", ingest.ErrReadabilityFailed)
	}
	if image == "" {
		image = resolveImage(article.Image, pageURL)
	}

	return ingest.Page{Text: text, ImageURL: image}, nil
}

var imageMetaSelectors = []string{
	`meta[property="og:image"]`,
	`meta[name="og:image"]`,
	`meta[name="twitter:image"]`,
	`meta[property="twitter:image"]`,
}

// leadImage returns the absolute URL of the page's social card image, or "".
func leadImage(doc *goquery.Document, base *url.URL) string {
	for _, sel := range imageMetaSelectors {
		content, ok := doc.Find(sel).First().Attr("content")
		if !ok {
			continue
		}
		if img := resolveImage(content, base); img != "" {
			return img
		}
	}
	return ""
}

// resolveImage makes raw absolute against base. Only http(s) URLs are kept.
func resolveImage(raw string, base *url.URL) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}
	return ref.String()
}
