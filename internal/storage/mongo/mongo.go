package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/config"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	interestsCollection = "interests"
	articlesCollection  = "articles"
	defaultDBName       = "enrichment"
)

// Mongo - тонкий адаптер для подключения и коллекций MongoDB.
// Реализует storage.Storage.
type Mongo struct {
	client    *mongodriver.Client
	db        *mongodriver.Database
	interests *mongodriver.Collection
	articles  *mongodriver.Collection
}

// New подключается к MongoDB, проверяет его, подготавливает коллекции и обеспечивает индексацию.
func New(ctx context.Context, cfg config.DBConfig) (*Mongo, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("mongo: empty db url")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(databaseFromURI(cfg.URL))

	m := &Mongo{
		client:    cli,
		db:        db,
		interests: db.Collection(interestsCollection),
		articles:  db.Collection(articlesCollection),
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes создает индексы, необходимые сервису.
// - Выборка кандидатов: update + _id(asc);
// - $pull при удалении статьи: multikey по articles;
// - Поиск статьи по ссылке: link.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	interestIdx := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "update", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("update_id"),
		},
		{
			Keys:    bson.D{{Key: "articles", Value: 1}},
			Options: options.Index().SetName("articles"),
		},
	}

	if _, err := m.interests.Indexes().CreateMany(ctx, interestIdx); err != nil {
		return fmt.Errorf("mongo ensure interest indexes: %w", err)
	}

	articleIdx := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "link", Value: 1}},
			Options: options.Index().SetName("link"),
		},
	}

	if _, err := m.articles.Indexes().CreateMany(ctx, articleIdx); err != nil {
		return fmt.Errorf("mongo ensure article indexes: %w", err)
	}

	return nil
}

// databaseFromURI извлекает имя базы данных из URI-пути mongodb.
// Если оно отсутствует или не поддается расшифровке, возвращает значение по умолчанию.
func databaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err == nil {
		if name := strings.Trim(u.Path, "/"); name != "" {
			return name
		}
	}

	return defaultDBName
}
