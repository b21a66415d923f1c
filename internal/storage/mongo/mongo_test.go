package mongo

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/config"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/models"
	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/storage"
	"github.com/stretchr/testify/require"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// testTimeout — общий дедлайн на операции с БД в тестах.
const testTimeout = 10 * time.Second

// TestMain поднимает MongoDB в контейнере один раз на пакет.
// Без GO_TEST_INTEGRATION выполняются только unit-тесты.
func TestMain(m *testing.M) {
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		os.Exit(m.Run())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7.0",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(90 * time.Second),
	}

	mongoC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start mongo testcontainer: %v\n", err)
		os.Exit(1)
	}

	host, err := mongoC.Host(ctx)
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get container host: %v\n", err)
		os.Exit(1)
	}

	port, err := mongoC.MappedPort(ctx, "27017/tcp")
	if err != nil {
		_ = mongoC.Terminate(ctx)
		fmt.Fprintf(os.Stderr, "failed to get mapped port: %v\n", err)
		os.Exit(1)
	}

	_ = os.Setenv("DATABASE_URL", fmt.Sprintf("mongodb://%s:%s", host, port.Port()))

	code := m.Run()

	_ = mongoC.Terminate(context.Background())
	os.Exit(code)
}

// mustNewMongo подключается к отдельной БД теста и удаляет её по завершении.
func mustNewMongo(t *testing.T) *Mongo {
	t.Helper()

	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("set GO_TEST_INTEGRATION=1 to run mongo integration tests")
	}

	baseURL := os.Getenv("DATABASE_URL")
	if baseURL == "" {
		baseURL = "mongodb://localhost:27017"
	}

	dbName := "enrichment_test_" + uuid.New().String()
	if baseURL[len(baseURL)-1] != '/' {
		baseURL += "/"
	}

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	m, err := New(ctx, config.DBConfig{URL: baseURL + dbName})
	require.NoError(t, err, "DATABASE_URL=%s", baseURL)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()
		_ = m.db.Drop(ctx)
		_ = m.Close(ctx)
	})

	return m
}

// seedInterest вставляет интерес напрямую: сервис интересы не создаёт.
func seedInterest(t *testing.T, m *Mongo, name string, update bool, articles int) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	ids := make([]primitive.ObjectID, 0, articles)
	for i := 0; i < articles; i++ {
		ids = append(ids, primitive.NewObjectID())
	}

	res, err := m.interests.InsertOne(ctx, interestDoc{
		Name:      name,
		Type:      string(models.InterestInformational),
		Update:    update,
		Articles:  ids,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	return res.InsertedID.(primitive.ObjectID).Hex()
}

func TestDatabaseFromURI(t *testing.T) {
	cases := map[string]string{
		"mongodb://localhost:27017":             defaultDBName,
		"mongodb://localhost:27017/":            defaultDBName,
		"mongodb://localhost:27017/aggregator":  "aggregator",
		"mongodb://u:p@h:1/db?authSource=admin": "db",
		"::not a uri::":                         defaultDBName,
	}

	for in, want := range cases {
		require.Equal(t, want, databaseFromURI(in), in)
	}
}

func TestArrayShorterThan(t *testing.T) {
	e := arrayShorterThan("articles", 5)
	require.Equal(t, "articles.4", e.Key)
	require.Equal(t, bson.D{{Key: "$exists", Value: false}}, e.Value)
}

// TestInterestsForEnrichment_Filter — только update=true и меньше лимита, порядок по _id.
func TestInterestsForEnrichment_Filter(t *testing.T) {
	m := mustNewMongo(t)

	a := seedInterest(t, m, "a", true, 0)
	_ = seedInterest(t, m, "disabled", false, 0)
	b := seedInterest(t, m, "b", true, 4)
	_ = seedInterest(t, m, "full", true, 5)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	got, err := m.InterestsForEnrichment(ctx, 5, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, a, got[0].ID)
	require.Equal(t, b, got[1].ID)
	require.Len(t, got[1].Articles, 4)

	limited, err := m.InterestsForEnrichment(ctx, 5, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, a, limited[0].ID)

	none, err := m.InterestsForEnrichment(ctx, 0, 0)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestInterestByID_NotFound(t *testing.T) {
	m := mustNewMongo(t)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	_, err := m.InterestByID(ctx, primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, storage.ErrNotFound)

	_, err = m.InterestByID(ctx, "not-an-id")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestCreateAndLink — статьи создаются в исходном порядке и дописываются в конец списка.
func TestCreateAndLink(t *testing.T) {
	m := mustNewMongo(t)
	id := seedInterest(t, m, "ev", true, 2)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	before, err := m.InterestByID(ctx, id)
	require.NoError(t, err)

	created, err := m.CreateArticles(ctx, []models.Article{
		{Name: "T1", Summary: "S1", Link: "https://a/1", Tags: []string{"k1"}},
		{Name: "T2", Summary: "S2", Link: "https://a/2"},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	require.Equal(t, "T1", created[0].Name)
	require.Equal(t, "T2", created[1].Name)
	require.NotEmpty(t, created[0].ID)

	got, err := m.LinkArticles(ctx, id, []string{created[0].ID, created[1].ID}, 5)
	require.NoError(t, err)
	require.Len(t, got.Articles, 4)
	require.Equal(t, before.Articles, got.Articles[:2])
	require.Equal(t, created[0].ID, got.Articles[2])
	require.Equal(t, created[1].ID, got.Articles[3])
}

// TestLinkArticles_Limit — привязка сверх лимита отклоняется и ничего не меняет.
func TestLinkArticles_Limit(t *testing.T) {
	m := mustNewMongo(t)
	id := seedInterest(t, m, "almost", true, 4)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	_, err := m.LinkArticles(ctx, id, []string{primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()}, 5)
	require.ErrorIs(t, err, storage.ErrArticleLimit)

	got, err := m.InterestByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Articles, 4)

	_, err = m.LinkArticles(ctx, primitive.NewObjectID().Hex(), []string{primitive.NewObjectID().Hex()}, 5)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

// TestLinkArticles_Concurrent — параллельные привязки не превышают лимит.
func TestLinkArticles_Concurrent(t *testing.T) {
	m := mustNewMongo(t)
	id := seedInterest(t, m, "race", true, 0)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.LinkArticles(ctx, id, []string{primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()}, 5)
		}()
	}
	wg.Wait()

	got, err := m.InterestByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Articles, 4)
}

// TestDeleteArticle — статья удаляется вместе со ссылками на неё.
func TestDeleteArticle(t *testing.T) {
	m := mustNewMongo(t)
	id := seedInterest(t, m, "del", true, 0)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	created, err := m.CreateArticles(ctx, []models.Article{{Name: "T", Link: "https://a/1"}})
	require.NoError(t, err)

	_, err = m.LinkArticles(ctx, id, []string{created[0].ID}, 5)
	require.NoError(t, err)

	require.NoError(t, m.DeleteArticle(ctx, created[0].ID))

	got, err := m.InterestByID(ctx, id)
	require.NoError(t, err)
	require.Empty(t, got.Articles)

	require.ErrorIs(t, m.DeleteArticle(ctx, created[0].ID), storage.ErrNotFound)
	require.ErrorIs(t, m.DeleteArticle(ctx, "bad"), storage.ErrNotFound)
}

func TestDeleteArticles(t *testing.T) {
	m := mustNewMongo(t)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	created, err := m.CreateArticles(ctx, []models.Article{{Name: "A"}, {Name: "B"}})
	require.NoError(t, err)

	require.NoError(t, m.DeleteArticles(ctx, []string{created[0].ID, created[1].ID}))

	n, err := m.articles.CountDocuments(ctx, bson.D{})
	require.NoError(t, err)
	require.Zero(t, n)

	require.NoError(t, m.DeleteArticles(ctx, nil))
}
