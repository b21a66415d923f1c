package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/service"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/transport/http/apierrors"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/transport/http/middleware"
)

// Runs — управление проходами (реализация: *service.Scheduler).
type Runs interface {
	Trigger() (string, error)
	LastRun() (models.RunStats, bool)
}

// Articles — административные операции над статьями (реализация: *service.Service).
type Articles interface {
	DeleteArticle(ctx context.Context, id string) error
}

// Handlers агрегирует зависимости admin-роутов.
type Handlers struct {
	runs     Runs
	articles Articles
	ready    *atomic.Bool
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func (h *Handlers) Livez(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	if h.ready == nil || h.ready.Load() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
		return
	}
	http.Error(w, "not ready", http.StatusServiceUnavailable)
}

// TriggerRun запускает внеочередной проход в фоне: 202 с run_id или 409,
// если проход уже идёт. run_id попадает и в журнал запроса.
func (h *Handlers) TriggerRun(w http.ResponseWriter, r *http.Request) {
	runID, err := h.runs.Trigger()
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	middleware.Annotate(r, slog.String("run_id", runID))
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "started", "run_id": runID})
}

// LastRun отдаёт статистику последнего прохода; 204, если проходов ещё не было.
func (h *Handlers) LastRun(w http.ResponseWriter, _ *http.Request) {
	stats, ok := h.runs.LastRun()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		apierrors.WriteError(w, r, service.ErrInvalidArgument)
		return
	}

	if err := h.articles.DeleteArticle(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
