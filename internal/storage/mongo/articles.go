package mongo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateArticles вставляет пачку статей одним InsertMany (ordered) и
// возвращает их с выставленными ID в исходном порядке.
func (m *Mongo) CreateArticles(ctx context.Context, articles []models.Article) ([]models.Article, error) {
	const op = "storage/mongo/CreateArticles"

	if len(articles) == 0 {
		return nil, nil
	}

	docs := make([]any, 0, len(articles))
	for _, a := range articles {
		docs = append(docs, articleToDoc(a))
	}

	res, err := m.articles.InsertMany(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("%s: insert: %w", op, err)
	}

	if len(res.InsertedIDs) != len(articles) {
		return nil, fmt.Errorf("%s: inserted %d of %d", op, len(res.InsertedIDs), len(articles))
	}

	out := make([]models.Article, len(articles))
	for i, id := range res.InsertedIDs {
		oid, ok := id.(primitive.ObjectID)
		if !ok {
			// Mongo всегда возвращает ObjectID.
			return nil, fmt.Errorf("%s: inserted id type", op)
		}

		out[i] = articles[i]
		out[i].ID = oid.Hex()
	}

	return out, nil
}

// DeleteArticle сначала убирает ссылку на статью из всех интересов, затем
// удаляет саму статью: при сбое между шагами остаётся безвредная сирота,
// а не висячая ссылка.
// При отсутствии записи — storage.ErrNotFound.
func (m *Mongo) DeleteArticle(ctx context.Context, id string) error {
	const op = "storage/mongo/DeleteArticle"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	_, err = m.interests.UpdateMany(ctx,
		bson.D{{Key: "articles", Value: oid}},
		bson.D{
			{Key: "$pull", Value: bson.D{{Key: "articles", Value: oid}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC().Truncate(time.Millisecond)}}},
		},
	)
	if err != nil {
		return fmt.Errorf("%s: pull: %w", op, err)
	}

	res, err := m.articles.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("%s: delete: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// DeleteArticles удаляет статьи по списку идентификаторов без правки интересов.
// Используется для очистки только что созданных, но не привязанных статей.
func (m *Mongo) DeleteArticles(ctx context.Context, ids []string) error {
	const op = "storage/mongo/DeleteArticles"

	if len(ids) == 0 {
		return nil
	}

	oids, err := parseIDs(ids)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := m.articles.DeleteMany(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
