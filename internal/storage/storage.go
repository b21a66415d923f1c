// storage определяет контракты доступа к БД для enrichment-service.
package storage

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/models"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrArticleLimit — привязка превысила бы лимит статей у интереса.
	ErrArticleLimit = errors.New("article limit exceeded")
)

// InterestStorage описывает операции над интересами.
type InterestStorage interface {
	// InterestsForEnrichment возвращает интересы с update == true и числом
	// статей меньше maxArticles, по возрастанию идентификатора.
	// limit <= 0 — без ограничения.
	InterestsForEnrichment(ctx context.Context, maxArticles, limit int) ([]models.Interest, error)

	// InterestByID возвращает интерес по идентификатору.
	// Если запись не найдена — ErrNotFound.
	InterestByID(ctx context.Context, id string) (*models.Interest, error)

	// LinkArticles атомарно дописывает articleIDs в конец списка статей интереса,
	// только если итоговая длина не превысит maxArticles.
	// Возможные ошибки: ErrNotFound, ErrArticleLimit.
	LinkArticles(ctx context.Context, interestID string, articleIDs []string, maxArticles int) (*models.Interest, error)
}

// ArticleStorage описывает операции над статьями.
type ArticleStorage interface {
	// CreateArticles сохраняет пачку статей и возвращает их с выставленными ID
	// в том же порядке.
	CreateArticles(ctx context.Context, articles []models.Article) ([]models.Article, error)

	// DeleteArticle удаляет статью и убирает ссылку на неё из всех интересов.
	// Если запись не найдена — ErrNotFound.
	DeleteArticle(ctx context.Context, id string) error

	// DeleteArticles удаляет ещё не привязанные статьи (очистка сирот).
	DeleteArticles(ctx context.Context, ids []string) error
}

// Storage задаёт контракт доступа к хранилищу для enrichment-сервиса.
type Storage interface {
	InterestStorage
	ArticleStorage
	Close(ctx context.Context) error
}
