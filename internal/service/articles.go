package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/storage"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/pkg/log"
)

// DeleteArticle — удаление статьи вместе со ссылками на неё из интересов.
//
// Поведение/ошибки:
//   - ErrInvalidArgument — пустой id;
//   - ErrNotFound — статья не найдена (включая неверный формат идентификатора);
//   - ErrInternal — иные ошибки стораджа.
func (s *Service) DeleteArticle(ctx context.Context, id string) error {
	const op = "service/articles/DeleteArticle"

	id = strings.TrimSpace(id)
	lg := log.From(ctx).With("op", op, "id", id)

	if id == "" {
		lg.Warn("invalid argument: empty id")
		return fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	if err := s.storage.DeleteArticle(ctx, id); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			lg.Warn("article not found")
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		default:
			lg.Error("storage error on DeleteArticle", "err", err)
			return fmt.Errorf("%s: %w", op, ErrInternal)
		}
	}

	lg.Info("article_deleted")

	return nil
}
