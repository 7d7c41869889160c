package ingest_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-api/internal/domain/entity"
	ingestUC "content-api/internal/usecase/ingest"
	srcUC "content-api/internal/usecase/source"
)

/* ───────── スタブ実装 ───────── */

// stubStore は SourceStore のインメモリ実装
type stubStore struct {
	mu        sync.Mutex
	existing  map[string]bool
	created   []srcUC.CreateInput
	filterErr error
	createErr error
}

func newStore(existing ...string) *stubStore {
	s := &stubStore{existing: map[string]bool{}}
	for _, u := range existing {
		s.existing[u] = true
	}
	return s
}

func (s *stubStore) Create(_ context.Context, in srcUC.CreateInput) (*entity.SourceArticle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	if in.SourceURL == "" {
		return nil, entity.ValidationErrors{{Field: "sourceUrl", Message: "cannot be blank"}}
	}
	s.created = append(s.created, in)
	return &entity.SourceArticle{ID: fmt.Sprintf("%024x", len(s.created)), SourceURL: in.SourceURL}, nil
}

func (s *stubStore) FilterNew(_ context.Context, urls []string) ([]string, error) {
	if s.filterErr != nil {
		return nil, s.filterErr
	}
	var out []string
	seen := map[string]bool{}
	for _, u := range urls {
		if s.existing[u] || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out, nil
}

func (s *stubStore) byURL(u string) (srcUC.CreateInput, bool) {
	for _, c := range s.created {
		if c.SourceURL == u {
			return c, true
		}
	}
	return srcUC.CreateInput{}, false
}

// stubFeedFetcher はフィードURLごとに結果を返す
type stubFeedFetcher struct {
	items map[string][]ingestUC.FeedItem
	errs  map[string]error
}

func (f *stubFeedFetcher) Fetch(_ context.Context, url string) ([]ingestUC.FeedItem, error) {
	if err := f.errs[url]; err != nil {
		return nil, err
	}
	return f.items[url], nil
}

type stubContentFetcher struct {
	mu    sync.Mutex
	pages map[string]ingestUC.Page
	err   error
	calls int
}

func (f *stubContentFetcher) FetchContent(_ context.Context, url string) (ingestUC.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return ingestUC.Page{}, f.err
	}
	return f.pages[url], nil
}

var bbc = ingestUC.Feed{Name: "bbc-news", URL: "https://feeds.bbci.co.uk/news/rss.xml", Source: entity.SourceBBC}

func item(u, content string) ingestUC.FeedItem {
	published := time.Date(2024, 11, 8, 12, 0, 0, 0, time.UTC)
	return ingestUC.FeedItem{Title: "title " + u, URL: u, Content: content, PublishedAt: &published}
}

/* ───────── CrawlAll ───────── */

func TestCrawlAll_InsertsNewItemsAndSkipsDuplicates(t *testing.T) {
	store := newStore("https://www.bbc.co.uk/news/a")
	feeds := &stubFeedFetcher{items: map[string][]ingestUC.FeedItem{
		bbc.URL: {
			item("https://www.bbc.co.uk/news/a", "old"),
			item("https://www.bbc.co.uk/news/b", "new"),
			item("https://www.bbc.co.uk/news/c", "new"),
			item("https://www.bbc.co.uk/news/b", "repeated in feed"),
		},
	}}
	svc := ingestUC.NewService(store, feeds, nil, nil, ingestUC.ContentFetchConfig{Parallelism: 2})

	stats, err := svc.CrawlAll(context.Background(), []ingestUC.Feed{bbc})

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Feeds)
	assert.Equal(t, int64(4), stats.FeedItems)
	assert.Equal(t, int64(2), stats.Inserted)
	assert.Equal(t, int64(2), stats.Duplicated)
	require.Len(t, store.created, 2)

	b, ok := store.byURL("https://www.bbc.co.uk/news/b")
	require.True(t, ok)
	assert.Equal(t, "BBC", b.Source)
	assert.Equal(t, "new", b.Content)
	require.NotNil(t, b.PublishedAt)
}

func TestCrawlAll_FetchFailureSkipsFeed(t *testing.T) {
	other := ingestUC.Feed{Name: "bbc-tech", URL: "https://feeds.bbci.co.uk/news/technology/rss.xml", Source: entity.SourceBBC}
	store := newStore()
	feeds := &stubFeedFetcher{
		items: map[string][]ingestUC.FeedItem{other.URL: {item("https://www.bbc.co.uk/news/t1", "x")}},
		errs:  map[string]error{bbc.URL: errors.New("HTTP 503")},
	}
	svc := ingestUC.NewService(store, feeds, nil, nil, ingestUC.ContentFetchConfig{Parallelism: 1})

	stats, err := svc.CrawlAll(context.Background(), []ingestUC.Feed{bbc, other})

	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Inserted)
}

func TestCrawlAll_InvalidItemsAreCounted(t *testing.T) {
	store := newStore()
	feeds := &stubFeedFetcher{items: map[string][]ingestUC.FeedItem{
		bbc.URL: {item("", "no link"), item("https://www.bbc.co.uk/news/ok", "fine")},
	}}
	svc := ingestUC.NewService(store, feeds, nil, nil, ingestUC.ContentFetchConfig{Parallelism: 2})

	stats, err := svc.CrawlAll(context.Background(), []ingestUC.Feed{bbc})

	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Inserted)
	assert.Equal(t, int64(1), stats.Invalid)
}

func TestCrawlAll_StorageErrorAborts(t *testing.T) {
	store := newStore()
	store.createErr = fmt.Errorf("%w: insert", entity.ErrPersistence)
	feeds := &stubFeedFetcher{items: map[string][]ingestUC.FeedItem{
		bbc.URL: {item("https://www.bbc.co.uk/news/a", "x")},
	}}
	svc := ingestUC.NewService(store, feeds, nil, nil, ingestUC.ContentFetchConfig{Parallelism: 1})

	_, err := svc.CrawlAll(context.Background(), []ingestUC.Feed{bbc})

	assert.ErrorIs(t, err, entity.ErrPersistence)
}

func TestCrawlAll_BatchCheckErrorAborts(t *testing.T) {
	store := newStore()
	store.filterErr = errors.New("db down")
	feeds := &stubFeedFetcher{items: map[string][]ingestUC.FeedItem{
		bbc.URL: {item("https://www.bbc.co.uk/news/a", "x")},
	}}
	svc := ingestUC.NewService(store, feeds, nil, nil, ingestUC.ContentFetchConfig{Parallelism: 1})

	_, err := svc.CrawlAll(context.Background(), []ingestUC.Feed{bbc})

	assert.Error(t, err)
	assert.Empty(t, store.created)
}

func TestCrawlAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	feeds := &stubFeedFetcher{errs: map[string]error{bbc.URL: context.Canceled}}
	svc := ingestUC.NewService(newStore(), feeds, nil, nil, ingestUC.ContentFetchConfig{Parallelism: 1})

	_, err := svc.CrawlAll(ctx, []ingestUC.Feed{bbc})

	assert.ErrorIs(t, err, context.Canceled)
}

/* ───────── コンテンツ補完 ───────── */

func TestCrawlAll_ContentEnhancement(t *testing.T) {
	long := strings.Repeat("Full article text. ", 20)
	tests := []struct {
		name        string
		feedContent string
		page        ingestUC.Page
		fetchErr    error
		wantContent string
		wantImage   string
		wantCalls   int
	}{
		{
			name:        "short content replaced by page text",
			feedContent: "Summary only.",
			page:        ingestUC.Page{Text: long, ImageURL: "https://ichef.bbci.co.uk/a.jpg"},
			wantContent: long,
			wantImage:   "https://ichef.bbci.co.uk/a.jpg",
			wantCalls:   1,
		},
		{
			name:        "long content is kept without fetching",
			feedContent: long,
			wantContent: long,
			wantCalls:   0,
		},
		{
			name:        "fetch failure falls back to feed content",
			feedContent: "Summary only.",
			fetchErr:    ingestUC.ErrTimeout,
			wantContent: "Summary only.",
			wantCalls:   1,
		},
		{
			name:        "shorter page text is ignored but image is used",
			feedContent: "Summary only, but longer than the page.",
			page:        ingestUC.Page{Text: "tiny", ImageURL: "https://ichef.bbci.co.uk/b.jpg"},
			wantContent: "Summary only, but longer than the page.",
			wantImage:   "https://ichef.bbci.co.uk/b.jpg",
			wantCalls:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := "https://www.bbc.co.uk/news/x"
			store := newStore()
			feeds := &stubFeedFetcher{items: map[string][]ingestUC.FeedItem{bbc.URL: {item(u, tt.feedContent)}}}
			content := &stubContentFetcher{pages: map[string]ingestUC.Page{u: tt.page}, err: tt.fetchErr}
			svc := ingestUC.NewService(store, feeds, content, nil, ingestUC.ContentFetchConfig{Parallelism: 1, Threshold: 100})

			_, err := svc.CrawlAll(context.Background(), []ingestUC.Feed{bbc})

			require.NoError(t, err)
			got, ok := store.byURL(u)
			require.True(t, ok)
			assert.Equal(t, tt.wantContent, got.Content)
			assert.Equal(t, tt.wantImage, got.ImageURL)
			assert.Equal(t, tt.wantCalls, content.calls)
		})
	}
}

func TestCrawlAll_FeedImageIsKept(t *testing.T) {
	u := "https://www.bbc.co.uk/news/y"
	it := item(u, "short")
	it.ImageURL = "https://ichef.bbci.co.uk/feed.jpg"
	store := newStore()
	feeds := &stubFeedFetcher{items: map[string][]ingestUC.FeedItem{bbc.URL: {it}}}
	content := &stubContentFetcher{pages: map[string]ingestUC.Page{u: {Text: "x", ImageURL: "https://ichef.bbci.co.uk/page.jpg"}}}
	svc := ingestUC.NewService(store, feeds, content, nil, ingestUC.ContentFetchConfig{Parallelism: 1, Threshold: 100})

	_, err := svc.CrawlAll(context.Background(), []ingestUC.Feed{bbc})

	require.NoError(t, err)
	got, _ := store.byURL(u)
	assert.Equal(t, "https://ichef.bbci.co.uk/feed.jpg", got.ImageURL)
}
