// service содержит бизнес-логику enrichment-сервиса: проход обогащения
// интересов, планировщик проходов и административные операции над статьями.
package service

import (
	"context"
	"errors"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/config"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/metrics"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/storage"
)

var (
	// ErrNotFound — сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument — неверные входные параметры запроса к сервису.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInternal — внутренняя ошибка (стораж/БД/контекст/и т.д.).
	ErrInternal = errors.New("internal")
	// ErrRunInProgress — предыдущий проход ещё выполняется.
	ErrRunInProgress = errors.New("enrichment run in progress")
	// ErrSchedulerStopped — планировщик не запущен или уже остановлен.
	ErrSchedulerStopped = errors.New("scheduler stopped")
)

// NewsSearcher — поиск новостей по запросу (реализация: news.Client).
type NewsSearcher interface {
	Search(ctx context.Context, query, region string) ([]models.NewsResult, error)
}

// Summarizer — суммаризация пакета ссылок одним вызовом модели (реализация: llm.Client).
type Summarizer interface {
	Summarize(ctx context.Context, links []string, instructions string) (*models.ArticleBatch, error)
}

// Service — описывает бизнес-логику enrichment-service.
type Service struct {
	storage storage.Storage
	news    NewsSearcher
	llm     Summarizer
	metrics *metrics.Metrics
	cfg     config.Config
}

// New создает новый экземпляр Service. m может быть nil.
func New(storage storage.Storage, news NewsSearcher, llm Summarizer, m *metrics.Metrics, cfg config.Config) *Service {
	return &Service{
		storage: storage,
		news:    news,
		llm:     llm,
		metrics: m,
		cfg:     cfg,
	}
}
