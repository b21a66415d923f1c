package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/lock"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/pkg/log"
	"github.com/robfig/cron/v3"
)

// Runner — один проход обогащения (реализация: *Service).
type Runner interface {
	RunOnce(ctx context.Context) (models.RunStats, error)
}

// Locker — межпроцессная блокировка прохода (реализация: lock.Redis).
// Acquire возвращает lock.ErrNotAcquired, если проход идёт в другой реплике.
// held отменяется с причиной lock.ErrLockLost, если блокировка потеряна
// до release: проход перестаёт брать новые интересы.
type Locker interface {
	Acquire(ctx context.Context) (held context.Context, release func(), err error)
}

// SchedulerOptions — параметры планировщика.
type SchedulerOptions struct {
	// Interval — период тиков; cron округляет его до секунд.
	Interval   time.Duration
	RunOnStart bool
	Logger     *slog.Logger
	// Locker — nil, если достаточно сериализации внутри процесса.
	Locker Locker
}

// Scheduler запускает проходы по расписанию cron.Every(opts.Interval).
//
// Гарантии:
//   - одновременно выполняется не больше одного прохода: тик, пришедший
//     во время прохода, пропускается, ручной запуск получает ErrRunInProgress;
//   - после Stop новые проходы не стартуют, текущий дорабатывает
//     свой интерес и завершается.
type Scheduler struct {
	runner     Runner
	locker     Locker
	log        *slog.Logger
	cron       *cron.Cron
	runOnStart bool

	// running удерживается на всё время прохода.
	running sync.Mutex

	mu      sync.Mutex
	runCtx  context.Context
	cancel  context.CancelFunc
	stopped bool
	wg      sync.WaitGroup

	last atomic.Pointer[models.RunStats]
}

// NewScheduler создаёт планировщик.
func NewScheduler(runner Runner, opts SchedulerOptions) *Scheduler {
	lg := opts.Logger
	if lg == nil {
		lg = slog.Default()
	}

	lg = lg.With("component", "scheduler")
	cl := cronLogger{l: lg}

	s := &Scheduler{
		runner:     runner,
		locker:     opts.Locker,
		log:        lg,
		runOnStart: opts.RunOnStart,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
	}

	s.cron.Schedule(cron.Every(opts.Interval), cron.FuncJob(s.tick))

	return s
}

// Start запускает расписание. Отмена ctx равносильна сигналу остановки для
// текущего прохода: новые интересы не начинаются.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.runCtx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.cron.Start()
	s.log.Info("scheduler_started")

	if s.runOnStart {
		if _, err := s.trigger("startup"); err != nil {
			s.log.Warn("startup_run_not_started", "err", err)
		}
	}
}

// Stop прекращает запуск новых проходов и ждёт завершения текущего,
// но не дольше, чем живёт ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	const op = "service/scheduler/Stop"

	s.mu.Lock()
	s.stopped = true
	cancel := s.cancel
	s.mu.Unlock()

	cronDone := s.cron.Stop()
	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("scheduler_stopped")
		return nil
	case <-ctx.Done():
		s.log.Warn("scheduler_stop_timeout")
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
}

// Trigger запускает внеочередной проход в фоне и возвращает его run_id.
// Ошибки: ErrRunInProgress, ErrSchedulerStopped.
func (s *Scheduler) Trigger() (string, error) {
	return s.trigger("manual")
}

// LastRun возвращает статистику последнего завершённого прохода.
func (s *Scheduler) LastRun() (models.RunStats, bool) {
	if st := s.last.Load(); st != nil {
		return *st, true
	}

	return models.RunStats{}, false
}

func (s *Scheduler) trigger(source string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.runCtx == nil {
		return "", ErrSchedulerStopped
	}

	if !s.running.TryLock() {
		return "", ErrRunInProgress
	}

	ctx := s.runCtx
	runID := uuid.NewString()
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()
		defer s.running.Unlock()

		s.execute(ctx, source, runID)
	}()

	return runID, nil
}

// tick — задача cron. Занятый планировщик пропускает тик.
func (s *Scheduler) tick() {
	s.mu.Lock()
	ctx := s.runCtx
	s.mu.Unlock()

	if ctx == nil {
		return
	}

	if !s.running.TryLock() {
		s.log.Warn("run_skipped_busy")
		return
	}
	defer s.running.Unlock()

	s.execute(ctx, "cron", uuid.NewString())
}

func (s *Scheduler) execute(ctx context.Context, source, runID string) {
	lg := s.log.With("source", source, "run_id", runID)

	defer func() {
		if r := recover(); r != nil {
			lg.Error("run_panic", "panic", r)
		}
	}()

	if s.locker != nil {
		held, release, err := s.locker.Acquire(ctx)
		if err != nil {
			if errors.Is(err, lock.ErrNotAcquired) {
				lg.Info("run_skipped_locked")
				return
			}

			lg.Error("run_lock_failed", "err", err)
			return
		}
		defer release()

		ctx = held
	}

	// run_id к логгеру прохода добавляет сам RunOnce.
	stats, err := s.runner.RunOnce(log.Into(WithRunID(ctx, runID), s.log.With("source", source)))
	if err != nil {
		lg.Error("run_failed", "err", err)
	}

	if errors.Is(context.Cause(ctx), lock.ErrLockLost) {
		lg.Error("run_lock_lost", "interrupted", stats.Interrupted)
	}

	s.last.Store(&stats)
}

// cronLogger — адаптер cron.Logger поверх slog.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug("cron_"+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("cron_"+msg, append([]any{"err", err}, keysAndValues...)...)
}
