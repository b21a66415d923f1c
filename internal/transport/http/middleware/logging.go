package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	logctx "github.com/pribylovaa/go-news-aggregator/enrichment-service/pkg/log"
)

// quietRoutes опрашиваются оркестратором и Prometheus; их журнал — на уровне debug.
var quietRoutes = map[string]bool{
	"/livez":   true,
	"/healthz": true,
	"/metrics": true,
}

type annotationsKey struct{}

// annotations — атрибуты, которые обработчик добавляет к записи о запросе.
type annotations struct {
	mu    sync.Mutex
	attrs []slog.Attr
}

// Annotate добавляет атрибуты к итоговой записи о запросе
// (например, run_id запущенного прохода). Вне Logging — no-op.
func Annotate(r *http.Request, attrs ...slog.Attr) {
	a, ok := r.Context().Value(annotationsKey{}).(*annotations)
	if !ok {
		return
	}

	a.mu.Lock()
	a.attrs = append(a.attrs, attrs...)
	a.mu.Unlock()
}

// Logging кладёт в контекст логгер с request_id и после ответа пишет одну
// запись "http_request": маршрут chi, статус, длительность, объём и атрибуты
// из Annotate. Уровень зависит от исхода: 5xx — error, 4xx — warn,
// health/metrics — debug, остальное — info.
func Logging(l *slog.Logger) func(http.Handler) http.Handler {
	if l == nil {
		l = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			reqLogger := l
			if rid := RequestIDFrom(r); rid != "" {
				reqLogger = reqLogger.With(slog.String("request_id", rid))
			}

			ann := &annotations{}
			ctx := context.WithValue(logctx.Into(r.Context(), reqLogger), annotationsKey{}, ann)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			route := routePattern(r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("route", route),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Duration("dur", time.Since(start)),
				slog.Int("bytes", ww.BytesWritten()),
			}

			ann.mu.Lock()
			attrs = append(attrs, ann.attrs...)
			ann.mu.Unlock()

			reqLogger.LogAttrs(r.Context(), requestLevel(route, status), "http_request", attrs...)
		})
	}
}

// routePattern — шаблон маршрута chi (/articles/{id}); "-" для несовпавших путей.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}

	return "-"
}

func requestLevel(route string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case quietRoutes[route]:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
