// news — клиент поиска новостей у внешнего провайдера (SerpAPI, google news).
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/config"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/pkg/log"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/pkg/redact"
)

// ErrProvider — любая ошибка провайдера: сеть, авторизация, квота, битый ответ.
var ErrProvider = errors.New("news provider error")

// Client реализует service.NewsSearcher поверх HTTP API SerpAPI.
// Один вызов Search — ровно один HTTP-запрос: без ретраев и кеша.
type Client struct {
	client   *http.Client
	endpoint string
	apiKey   string
	engine   string
}

// New создаёт клиента. HTTP-клиент настраивается извне (таймауты, прокси и т.д.).
func New(client *http.Client, cfg config.NewsConfig) *Client {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	engine := cfg.Engine
	if engine == "" {
		engine = "google"
	}

	return &Client{
		client:   client,
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		engine:   engine,
	}
}

// searchResponse — интересующая нас часть ответа SerpAPI.
type searchResponse struct {
	Error       string       `json:"error"`
	NewsResults []newsResult `json:"news_results"`
}

type newsResult struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Thumbnail string `json:"thumbnail"`
}

// Search ищет новости по query в регионе region.
// Порядок результатов провайдера сохраняется; элементы без ссылки отбрасываются.
// Любая ошибка оборачивает ErrProvider.
func (c *Client) Search(ctx context.Context, query, region string) ([]models.NewsResult, error) {
	const op = "news.Search"

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%s: endpoint: %w: %v", op, ErrProvider, err)
	}

	q := u.Query()
	q.Set("engine", c.engine)
	q.Set("api_key", c.apiKey)
	q.Set("q", query)
	q.Set("location", region)
	q.Set("tbm", "nws")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: new_request: %w: %v", op, ErrProvider, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.From(ctx).Warn("http_error",
			slog.String("op", op),
			slog.String("query", query),
			slog.String("err", c.scrub(err.Error())),
		)
		return nil, fmt.Errorf("%s: do: %w: %s", op, ErrProvider, c.scrub(err.Error()))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: status=%d: %w: %s", op, resp.StatusCode, ErrProvider, providerMessage(body))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w: %v", op, ErrProvider, err)
	}

	if out.Error != "" {
		return nil, fmt.Errorf("%s: %w: %s", op, ErrProvider, out.Error)
	}

	results := make([]models.NewsResult, 0, len(out.NewsResults))
	for _, r := range out.NewsResults {
		link := strings.TrimSpace(r.Link)
		if link == "" {
			continue
		}

		results = append(results, models.NewsResult{
			Title:     strings.TrimSpace(r.Title),
			Link:      link,
			Thumbnail: strings.TrimSpace(r.Thumbnail),
		})
	}

	return results, nil
}

// scrub вырезает ключ API из текста ошибки (net/http включает URL в *url.Error).
func (c *Client) scrub(s string) string {
	return redact.Secret(s, c.apiKey)
}

// providerMessage достаёт поле error из JSON-тела ошибки, иначе — обрезанный текст.
func providerMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}

	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}

	return strings.TrimSpace(string(body))
}
