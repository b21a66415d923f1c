package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/metrics"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/storage"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/validator"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/pkg/log"
)

// Причины пропуска интереса (label reason метрики и поле лога).
const (
	SkipNewsError       = "news_error"
	SkipNoResults       = "no_results"
	SkipSummarizeError  = "summarize_error"
	SkipValidationError = "validation_error"
	SkipNothingNeeded   = "nothing_needed"
	SkipCreateError     = "create_error"
	SkipLinkError       = "link_error"
	SkipInterestGone    = "interest_gone"
	SkipReloadError     = "reload_error"
)

var (
	errNoResults      = errors.New("no news results")
	errNothingNeeded  = errors.New("no articles needed")
	errUpdateDisabled = errors.New("update disabled")
)

// skipError — интерес пропущен в текущем проходе по причине reason.
type skipError struct {
	reason string
	err    error
}

func (e *skipError) Error() string { return e.reason + ": " + e.err.Error() }
func (e *skipError) Unwrap() error { return e.err }

func skip(reason string, err error) error {
	return &skipError{reason: reason, err: err}
}

type runIDKey struct{}

// WithRunID задаёт идентификатор следующего прохода (планировщик выдаёт его
// до старта, чтобы ручной запуск мог вернуть run_id сразу).
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFrom возвращает run_id из контекста или пустую строку.
func RunIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

// RunOnce выполняет один проход обогащения.
//
// Интересы обрабатываются строго последовательно в порядке выборки.
// Сбой на отдельном интересе не прерывает проход: интерес пропускается.
// Ошибка возвращается только если не удалось получить список кандидатов.
//
// Отмена ctx не обрывает текущий интерес (он работает на контексте без отмены
// с таймаутом Timeouts.Interest), но новый интерес после отмены не начинается.
func (s *Service) RunOnce(ctx context.Context) (models.RunStats, error) {
	const op = "service/enrich/RunOnce"

	runID := RunIDFrom(ctx)
	if runID == "" {
		runID = uuid.NewString()
	}

	stats := models.RunStats{
		RunID:     runID,
		StartedAt: time.Now().UTC(),
	}

	ctx, lg := log.With(ctx, "op", op, "run_id", stats.RunID)

	maxArticles := s.cfg.Enrichment.MaxArticles

	interests, err := s.storage.InterestsForEnrichment(ctx, maxArticles, s.cfg.Enrichment.BatchLimit)
	if err != nil {
		stats.FinishedAt = time.Now().UTC()
		s.metrics.ObserveRun(metrics.ResultFailed, stats.FinishedAt.Sub(stats.StartedAt))
		lg.Error("run_select_failed", "err", err)
		return stats, fmt.Errorf("%s: select: %w", op, err)
	}

	stats.Selected = len(interests)
	lg.Info("run_started", "selected", stats.Selected)

	for i, in := range interests {
		if ctx.Err() != nil {
			stats.Interrupted = true
			lg.Warn("run_interrupted", "remaining", len(interests)-i)
			break
		}

		created, err := s.processInterest(ctx, in)
		if err != nil {
			stats.Skipped++
		} else {
			stats.Processed++
			stats.ArticlesCreated += created
		}

		if i < len(interests)-1 && !pause(ctx, s.cfg.Enrichment.Pacing) {
			stats.Interrupted = true
			lg.Warn("run_interrupted", "remaining", len(interests)-i-1)
			break
		}
	}

	stats.FinishedAt = time.Now().UTC()
	s.metrics.ObserveRun(metrics.ResultOK, stats.FinishedAt.Sub(stats.StartedAt))

	lg.Info("run_finished",
		"selected", stats.Selected,
		"processed", stats.Processed,
		"skipped", stats.Skipped,
		"articles_created", stats.ArticlesCreated,
		"interrupted", stats.Interrupted,
		"duration", stats.FinishedAt.Sub(stats.StartedAt).String(),
	)

	return stats, nil
}

// processInterest обрабатывает один интерес, логирует исход и обновляет метрики.
func (s *Service) processInterest(ctx context.Context, in models.Interest) (int, error) {
	ictx, lg := log.With(context.WithoutCancel(ctx), "interest_id", in.ID, "interest", in.Name)
	if d := s.cfg.Timeouts.Interest; d > 0 {
		var cancel context.CancelFunc
		ictx, cancel = context.WithTimeout(ictx, d)
		defer cancel()
	}

	created, err := s.enrichInterest(ictx, in)
	if err != nil {
		reason := SkipCreateError
		var se *skipError
		if errors.As(err, &se) {
			reason = se.reason
		}

		s.metrics.InterestSkipped(reason)
		lg.Warn("interest_skipped", "reason", reason, "err", err)

		return 0, err
	}

	s.metrics.InterestProcessed(created)
	lg.Info("interest_enriched", "articles_created", created)

	return created, nil
}

// enrichInterest: перечитывание → поиск → суммаризация → создание статей → привязка.
// Любая ошибка — *skipError с причиной пропуска.
func (s *Service) enrichInterest(ctx context.Context, selected models.Interest) (int, error) {
	maxArticles := s.cfg.Enrichment.MaxArticles

	// Выборка сделана в начале прохода; к этому моменту интерес могли
	// удалить, выключить или дополнить.
	fresh, err := s.storage.InterestByID(ctx, selected.ID)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return 0, skip(SkipInterestGone, err)
	case err != nil:
		return 0, skip(SkipReloadError, err)
	}
	in := *fresh

	if !in.Update {
		return 0, skip(SkipNothingNeeded, errUpdateDisabled)
	}

	if in.Needed(maxArticles) == 0 {
		return 0, skip(SkipNothingNeeded, errNothingNeeded)
	}

	results, err := s.news.Search(ctx, in.Name, s.cfg.News.Region)
	if err != nil {
		return 0, skip(SkipNewsError, err)
	}

	candidates := results[:min(s.cfg.News.Links, len(results))]
	if len(candidates) == 0 {
		return 0, skip(SkipNoResults, errNoResults)
	}

	links := make([]string, 0, len(candidates))
	for _, c := range candidates {
		links = append(links, c.Link)
	}

	batch, err := s.llm.Summarize(ctx, links, s.cfg.LLM.Instructions)
	if err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			return 0, skip(SkipValidationError, err)
		}

		return 0, skip(SkipSummarizeError, err)
	}

	needed := min(in.Needed(maxArticles), len(batch.Articles), len(candidates))
	if needed <= 0 {
		return 0, skip(SkipNothingNeeded, errNothingNeeded)
	}

	created, err := s.storage.CreateArticles(ctx, buildArticles(in, batch.Articles[:needed], candidates[:needed]))
	if err != nil {
		return 0, skip(SkipCreateError, err)
	}

	ids := make([]string, 0, len(created))
	for _, a := range created {
		ids = append(ids, a.ID)
	}

	if _, err := s.storage.LinkArticles(ctx, in.ID, ids, maxArticles); err != nil {
		if errors.Is(err, storage.ErrArticleLimit) || errors.Is(err, storage.ErrNotFound) {
			// Статьи никто не увидит: убираем сирот сразу.
			if cerr := s.storage.DeleteArticles(ctx, ids); cerr != nil {
				log.From(ctx).Warn("orphan_cleanup_failed", "articles", ids, "err", cerr)
			}
		}

		return 0, skip(SkipLinkError, err)
	}

	return len(ids), nil
}

// buildArticles сопоставляет выжимки и кандидатов строго по позиции.
// Длины summaries и candidates должны совпадать.
func buildArticles(in models.Interest, summaries []models.ArticleSummary, candidates []models.NewsResult) []models.Article {
	out := make([]models.Article, 0, len(summaries))

	for i, sum := range summaries {
		c := candidates[i]

		name := strings.TrimSpace(sum.Title)
		if name == "" {
			name = strings.TrimSpace(c.Title)
		}

		out = append(out, models.Article{
			Name:    name,
			Summary: strings.TrimSpace(sum.Summary),
			Link:    c.Link,
			Tags:    []string{in.Name, string(in.Type)},
			Image:   c.Thumbnail,
		})
	}

	return out
}

// pause ждёт d или отмены ctx. false — ожидание прервано.
func pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
