package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/transport/http/apierrors"
)

// Timeout ограничивает admin-запрос сроком d (более ранний дедлайн родителя
// сохраняется). Если обработчик вернулся по дедлайну, ничего не записав,
// клиент получает 504/deadline_exceeded в формате apierrors.
// d <= 0 — no-op.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			r = r.WithContext(ctx)
			next.ServeHTTP(ww, r)

			if ww.Status() == 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				apierrors.WriteError(ww, r, ctx.Err())
			}
		})
	}
}
