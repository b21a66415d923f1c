// middleware — middleware admin HTTP-сервера enrichment-service поверх
// github.com/go-chi/chi/v5/middleware: id запроса, журнал запросов с
// маршрутом и run_id, ответы об ошибках в формате apierrors.
package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestID — chimw.RequestID, который дополнительно возвращает id клиенту
// в заголовке X-Request-Id: по нему оператор находит запись в журнале.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(chimw.RequestIDHeader, chimw.GetReqID(r.Context()))
			next.ServeHTTP(w, r)
		})

		return chimw.RequestID(echo)
	}
}

// RequestIDFrom возвращает id запроса или пустую строку.
func RequestIDFrom(r *http.Request) string {
	return chimw.GetReqID(r.Context())
}
