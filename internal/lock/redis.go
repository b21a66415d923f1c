// lock — межпроцессная блокировка прохода обогащения поверх Redis.
//
// Ключ ставится через SET NX PX со случайным токеном и продлевается, пока
// владелец держит блокировку. Снятие и продление выполняются Lua-скриптом,
// который сверяет токен: чужую блокировку снять нельзя.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/config"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotAcquired — блокировку держит другой процесс.
	ErrNotAcquired = errors.New("lock held by another owner")
	// ErrLockLost — причина отмены контекста владельца: ключ истёк или перехвачен.
	ErrLockLost = errors.New("lock lost")
)

var (
	releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

	extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)
)

// Redis реализует service.Locker.
type Redis struct {
	rdb *redis.Client
	key string
	ttl time.Duration
	log *slog.Logger
}

// NewRedis создаёт клиент из URL (например, redis://:pass@host:6379/0) и проверяет соединение.
func NewRedis(ctx context.Context, cfg config.LockConfig, lg *slog.Logger) (*Redis, error) {
	const op = "lock/NewRedis"

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse url: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	if lg == nil {
		lg = slog.Default()
	}

	return &Redis{
		rdb: rdb,
		key: cfg.Key,
		ttl: cfg.TTL,
		log: lg.With("component", "run_lock", "key", cfg.Key),
	}, nil
}

// Acquire пытается взять блокировку. При успехе возвращает контекст владельца
// и функцию снятия; до её вызова ключ продлевается каждые ttl/3.
// Контекст владельца отменяется с причиной ErrLockLost, если ключ перехвачен
// или не удалось продлить его дольше ttl.
func (l *Redis) Acquire(ctx context.Context) (context.Context, func(), error) {
	const op = "lock/Acquire"

	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	if !ok {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrNotAcquired)
	}

	held, cancel := context.WithCancelCause(ctx)
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		l.keepAlive(token, stop, cancel)
	}()

	var once sync.Once
	release := func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
			cancel(context.Canceled)

			rctx, rcancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer rcancel()

			if err := releaseScript.Run(rctx, l.rdb, []string{l.key}, token).Err(); err != nil {
				l.log.Warn("lock_release_failed", "err", err)
			}
		})
	}

	return held, release, nil
}

// keepAlive продлевает ключ, пока не закрыт stop. Ключ с чужим токеном или
// серия неудачных продлений длиннее ttl означают потерю блокировки.
func (l *Redis) keepAlive(token string, stop <-chan struct{}, lost context.CancelCauseFunc) {
	t := time.NewTicker(l.ttl / 3)
	defer t.Stop()

	extended := time.Now()

	for {
		select {
		case <-stop:
			return
		case <-t.C:
			ctx, cancel := context.WithTimeout(context.Background(), l.ttl/3)
			n, err := extendScript.Run(ctx, l.rdb, []string{l.key}, token, l.ttl.Milliseconds()).Int()
			cancel()

			switch {
			case err != nil:
				l.log.Warn("lock_extend_failed", "err", err)
				if time.Since(extended) < l.ttl {
					continue
				}
			case n == 1:
				extended = time.Now()
				continue
			}

			l.log.Error("lock_lost")
			lost(ErrLockLost)
			return
		}
	}
}

// Close закрывает клиент Redis.
func (l *Redis) Close() error {
	return l.rdb.Close()
}
