package content

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"content-api/internal/domain/entity"
	artUC "content-api/internal/usecase/article"
	srcUC "content-api/internal/usecase/source"
)

/* ───────── インメモリ リポジトリ ───────── */

type memArticles struct {
	mu     sync.Mutex
	data   map[string]entity.Article
	nextID int
	err    error
	calls  int
}

func newMemArticles() *memArticles {
	return &memArticles{data: map[string]entity.Article{}, nextID: 0x654c609c}
}

func (m *memArticles) Create(_ context.Context, a *entity.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	a.ID = fmt.Sprintf("%024x", m.nextID)
	m.nextID++
	m.data[a.ID] = *a
	return nil
}

func (m *memArticles) Get(_ context.Context, id string) (*entity.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.data[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &a, nil
}

func (m *memArticles) List(_ context.Context, f entity.ArticleFilter) ([]*entity.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var out []*entity.Article
	for _, a := range m.data {
		if (f.Category != "" && a.Category != f.Category) || (f.Level != "" && a.Level != f.Level) {
			continue
		}
		cp := a
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memArticles) Update(_ context.Context, id string, p entity.ArticlePatch) (*entity.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.data[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	updated := p.Apply(a)
	m.data[id] = updated
	return &updated, nil
}

func (m *memArticles) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	if _, ok := m.data[id]; !ok {
		return entity.ErrNotFound
	}
	delete(m.data, id)
	return nil
}

type memLikes map[string]int64

func (l memLikes) CountByArticleID(_ context.Context, id string) (int64, error) {
	return l[id], nil
}

type memSources struct {
	stored []entity.SourceArticle
	err    error
}

func (m *memSources) Create(_ context.Context, s *entity.SourceArticle) error {
	if m.err != nil {
		return m.err
	}
	s.ID = fmt.Sprintf("%024x", 0xabc+len(m.stored))
	m.stored = append(m.stored, *s)
	return nil
}

func (m *memSources) ExistsByURLBatch(_ context.Context, urls []string) (map[string]bool, error) {
	return map[string]bool{}, nil
}

/* ───────── テスト用サーバー ───────── */

type fixture struct {
	mux      *http.ServeMux
	articles *memArticles
	sources  *memSources
	likes    memLikes
}

func newFixture() *fixture {
	f := &fixture{
		mux:      http.NewServeMux(),
		articles: newMemArticles(),
		sources:  &memSources{},
		likes:    memLikes{},
	}
	Register(f.mux,
		artUC.NewService(f.articles, f.likes, entity.DefaultArticleRules()),
		&srcUC.Service{Repo: f.sources, Origin: "api"},
	)
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

// seed stores an article directly in the repository and returns its id.
func (f *fixture) seed(a entity.Article) string {
	_ = f.articles.Create(context.Background(), &a)
	f.articles.calls = 0
	return a.ID
}

var longContent = strings.Repeat("Binary code is a two-symbol system used by computers. ", 2)

func binaryArticle() entity.Article {
	return entity.Article{
		Title:    "The Basics of Binary Code",
		Content:  longContent,
		Category: entity.CategoryTechnology,
		Level:    entity.LevelEasy,
		Author:   "Jane Doe",
	}
}
