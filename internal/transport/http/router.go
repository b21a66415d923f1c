// http — admin HTTP-интерфейс enrichment-service: health, метрики,
// ручной запуск прохода и удаление статей.
package http

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/transport/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// Ready — флаг готовности для /healthz; nil — всегда готов.
	Ready *atomic.Bool
	// Metrics — обработчик /metrics; nil — promhttp.Handler().
	Metrics http.Handler
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(runs Runs, articles Articles, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний): Recover внутри Logging,
	// чтобы panic попадал в журнал запроса как 500.
	root.Use(
		middleware.RequestID(),
		middleware.Logging(opts.Logger),
		middleware.Recover(),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}

	h := &Handlers{runs: runs, articles: articles, ready: opts.Ready}

	root.Get("/livez", h.Livez)
	root.Get("/healthz", h.Healthz)
	root.Method(http.MethodGet, "/metrics", metrics)

	root.Post("/runs", h.TriggerRun)
	root.Get("/runs/last", h.LastRun)
	root.Delete("/articles/{id}", h.DeleteArticle)

	return root
}
