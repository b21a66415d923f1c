// interceptors — серверные gRPC-интерсепторы enrichment-service.
package interceptors

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/pkg/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// WithTimeout ограничивает unary-вызов сроком d, если клиент не прислал свой
// дедлайн. Голая ошибка контекста, вернувшаяся по этому сроку, отдаётся
// клиенту как codes.DeadlineExceeded, а не Unknown, и пишется "grpc_timeout".
// d <= 0 — интерсептор ничего не меняет.
func WithTimeout(d time.Duration) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if d <= 0 {
			return handler(ctx, req)
		}

		if _, ok := ctx.Deadline(); ok {
			return handler(ctx, req)
		}

		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		resp, err := handler(ctx, req)
		if err == nil || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return resp, err
		}

		if _, isStatus := status.FromError(err); isStatus {
			return resp, err
		}

		log.From(ctx).Warn("grpc_timeout",
			slog.String("method", info.FullMethod),
			slog.Duration("timeout", d),
		)

		return nil, status.FromContextError(ctx.Err()).Err()
	}
}
