package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/storage"
)

// memStorage — хранилище в памяти с той же семантикой, что и mongo-адаптер:
// атомарная привязка с проверкой лимита и порядок выборки по ID.
type memStorage struct {
	mu        sync.Mutex
	seq       int
	interests map[string]*models.Interest
	articles  map[string]models.Article

	linkCalls int
	selectErr error
	getErr    error
	createErr error
	// linkErr возвращается вместо привязки для указанных интересов.
	linkErr map[string]error
}

func newMemStorage(interests ...models.Interest) *memStorage {
	m := &memStorage{
		interests: make(map[string]*models.Interest),
		articles:  make(map[string]models.Article),
		linkErr:   make(map[string]error),
	}

	for i := range interests {
		in := interests[i]
		in.Articles = append([]string(nil), in.Articles...)
		m.interests[in.ID] = &in
	}

	return m
}

func (m *memStorage) InterestsForEnrichment(_ context.Context, maxArticles, limit int) ([]models.Interest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selectErr != nil {
		return nil, m.selectErr
	}

	var out []models.Interest
	for _, in := range m.interests {
		if in.Update && len(in.Articles) < maxArticles {
			cp := *in
			cp.Articles = append([]string(nil), in.Articles...)
			out = append(out, cp)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (m *memStorage) InterestByID(_ context.Context, id string) (*models.Interest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getErr != nil {
		return nil, m.getErr
	}

	in, ok := m.interests[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	cp := *in
	cp.Articles = append([]string(nil), in.Articles...)

	return &cp, nil
}

func (m *memStorage) LinkArticles(_ context.Context, interestID string, ids []string, maxArticles int) (*models.Interest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.linkCalls++

	if err := m.linkErr[interestID]; err != nil {
		return nil, err
	}

	in, ok := m.interests[interestID]
	if !ok {
		return nil, storage.ErrNotFound
	}

	if len(in.Articles)+len(ids) > maxArticles {
		return nil, storage.ErrArticleLimit
	}

	for _, id := range ids {
		if _, ok := m.articles[id]; !ok {
			return nil, fmt.Errorf("link unknown article %s", id)
		}
	}

	in.Articles = append(in.Articles, ids...)
	cp := *in

	return &cp, nil
}

func (m *memStorage) CreateArticles(_ context.Context, articles []models.Article) ([]models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return nil, m.createErr
	}

	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		m.seq++
		a.ID = fmt.Sprintf("art-%03d", m.seq)
		m.articles[a.ID] = a
		out = append(out, a)
	}

	return out, nil
}

func (m *memStorage) DeleteArticle(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.articles[id]; !ok {
		return storage.ErrNotFound
	}

	for _, in := range m.interests {
		kept := in.Articles[:0]
		for _, a := range in.Articles {
			if a != id {
				kept = append(kept, a)
			}
		}
		in.Articles = kept
	}

	delete(m.articles, id)

	return nil
}

func (m *memStorage) DeleteArticles(_ context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		delete(m.articles, id)
	}

	return nil
}

func (m *memStorage) Close(context.Context) error { return nil }

// mutate меняет интерес в обход сервиса (действия пользователя во время прохода).
func (m *memStorage) mutate(id string, fn func(in *models.Interest)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if in, ok := m.interests[id]; ok {
		fn(in)
	}
}

// remove удаляет интерес.
func (m *memStorage) remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.interests, id)
}

func (m *memStorage) interest(id string) models.Interest {
	m.mu.Lock()
	defer m.mu.Unlock()

	return *m.interests[id]
}

func (m *memStorage) article(id string) models.Article {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.articles[id]
}

func (m *memStorage) articleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.articles)
}

// fakeNews отдаёт заранее заданный ответ по имени интереса.
type fakeNews struct {
	mu      sync.Mutex
	results map[string][]models.NewsResult
	errs    map[string]error
	queries []string
	regions []string
	// onSearch вызывается при каждом поиске (вне мьютекса).
	onSearch func(query string)
}

func (f *fakeNews) Search(_ context.Context, query, region string) ([]models.NewsResult, error) {
	if f.onSearch != nil {
		f.onSearch(query)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, query)
	f.regions = append(f.regions, region)

	if err := f.errs[query]; err != nil {
		return nil, err
	}

	return f.results[query], nil
}

func (f *fakeNews) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.queries...)
}

// fakeLLM возвращает batch или err и запоминает переданные ссылки.
type fakeLLM struct {
	mu     sync.Mutex
	batch  *models.ArticleBatch
	err    error
	// errFor — ошибка для пакета, начинающегося с указанной ссылки.
	errFor map[string]error
	links  [][]string
	instr  []string
}

func (f *fakeLLM) Summarize(_ context.Context, links []string, instructions string) (*models.ArticleBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.links = append(f.links, append([]string(nil), links...))
	f.instr = append(f.instr, instructions)

	if len(links) > 0 {
		if err := f.errFor[links[0]]; err != nil {
			return nil, err
		}
	}

	if f.err != nil {
		return nil, f.err
	}

	return f.batch, nil
}

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.links)
}

func newsResults(prefix string, n int) []models.NewsResult {
	out := make([]models.NewsResult, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, models.NewsResult{
			Title:     fmt.Sprintf("%s title %d", prefix, i),
			Link:      fmt.Sprintf("https://%s.example/%d", prefix, i),
			Thumbnail: fmt.Sprintf("https://%s.example/%d.jpg", prefix, i),
		})
	}

	return out
}

func summaries(n int) *models.ArticleBatch {
	b := &models.ArticleBatch{Recommendation: "read", Reasoning: []string{"r"}}
	for i := 1; i <= n; i++ {
		b.Articles = append(b.Articles, models.ArticleSummary{
			Title:     fmt.Sprintf("Summary title %d", i),
			Summary:   fmt.Sprintf("Summary %d", i),
			KeyPoints: []string{"k"},
		})
	}

	return b
}
