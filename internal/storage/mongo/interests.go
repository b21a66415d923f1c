package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// arrayShorterThan — условие «длина массива field < n» без $expr:
// элемента с индексом n-1 не существует. Работает и для отсутствующего поля.
func arrayShorterThan(field string, n int) bson.E {
	return bson.E{
		Key:   fmt.Sprintf("%s.%d", field, n-1),
		Value: bson.D{{Key: "$exists", Value: false}},
	}
}

// InterestsForEnrichment возвращает интересы с update=true и числом статей < maxArticles.
// Сортировка: _id ASC — детерминированный порядок обхода в рамках прохода.
func (m *Mongo) InterestsForEnrichment(ctx context.Context, maxArticles, limit int) ([]models.Interest, error) {
	const op = "storage/mongo/InterestsForEnrichment"

	if maxArticles <= 0 {
		return nil, nil
	}

	filter := bson.D{
		{Key: "update", Value: true},
		arrayShorterThan("articles", maxArticles),
	}

	findOpts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		findOpts.SetLimit(int64(limit))
	}

	cur, err := m.interests.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}
	defer cur.Close(ctx)

	var items []models.Interest
	for cur.Next(ctx) {
		var doc interestDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%s: decode: %w", op, err)
		}
		items = append(items, doc.toModel())
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s: cursor: %w", op, err)
	}

	return items, nil
}

// InterestByID возвращает интерес по идентификатору.
// Некорректный формат id трактуется как «нет такой записи».
func (m *Mongo) InterestByID(ctx context.Context, id string) (*models.Interest, error) {
	const op = "storage/mongo/InterestByID"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	var doc interestDoc
	if err := m.interests.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongodriver.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := doc.toModel()
	return &out, nil
}

// LinkArticles дописывает articleIDs в конец interest.articles одним атомарным
// обновлением. Условие в фильтре гарантирует len(articles)+len(articleIDs) <= maxArticles
// на момент записи, даже если список менялся после выборки.
func (m *Mongo) LinkArticles(ctx context.Context, interestID string, articleIDs []string, maxArticles int) (*models.Interest, error) {
	const op = "storage/mongo/LinkArticles"

	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(interestID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	if len(articleIDs) == 0 {
		return m.InterestByID(ctx, interestID)
	}

	if len(articleIDs) > maxArticles {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrArticleLimit)
	}

	oids, err := parseIDs(articleIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	filter := bson.D{
		{Key: "_id", Value: oid},
		arrayShorterThan("articles", maxArticles-len(oids)+1),
	}

	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "articles", Value: bson.D{{Key: "$each", Value: oids}}}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC().Truncate(time.Millisecond)}}},
	}

	var doc interestDoc
	err = m.interests.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)

	if err == nil {
		out := doc.toModel()
		return &out, nil
	}

	if !errors.Is(err, mongodriver.ErrNoDocuments) {
		return nil, fmt.Errorf("%s: update: %w", op, err)
	}

	// Фильтр не сработал: либо интереса нет, либо не хватает места.
	n, cntErr := m.interests.CountDocuments(ctx, bson.D{{Key: "_id", Value: oid}})
	if cntErr != nil {
		return nil, fmt.Errorf("%s: count: %w", op, cntErr)
	}

	if n == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil, fmt.Errorf("%s: %w", op, storage.ErrArticleLimit)
}
