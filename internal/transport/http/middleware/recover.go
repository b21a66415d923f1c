package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/service"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/transport/http/apierrors"
	logctx "github.com/pribylovaa/go-news-aggregator/enrichment-service/pkg/log"
)

// Recover перехватывает panic обработчика admin-маршрута, пишет "http_panic"
// со стеком (логгером запроса из Logging) и отвечает 500/internal в формате apierrors. Если ответ уже
// начат, статус не переписывается. http.ErrAbortHandler пробрасывается дальше.
func Recover() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				logctx.From(r.Context()).LogAttrs(r.Context(), slog.LevelError, "http_panic",
					slog.String("method", r.Method),
					slog.String("route", routePattern(r)),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)

				if ww.Status() == 0 {
					apierrors.WriteError(ww, r, service.ErrInternal)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
