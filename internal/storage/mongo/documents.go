// mongo — реализация storage.Storage поверх MongoDB.
// Имена полей документов совпадают со схемой коллекций interests/articles
// основного бэкенда, чтобы сервис работал с теми же данными.
package mongo

import (
	"fmt"
	"strings"
	"time"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type interestDoc struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Name      string               `bson:"name"`
	Type      string               `bson:"type"`
	Update    bool                 `bson:"update"`
	Articles  []primitive.ObjectID `bson:"articles"`
	CreatedAt time.Time            `bson:"createdAt,omitempty"`
	UpdatedAt time.Time            `bson:"updatedAt,omitempty"`
}

type articleDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Name    string             `bson:"name"`
	Summary string             `bson:"summary"`
	Link    string             `bson:"link"`
	Tags    []string           `bson:"tags"`
	Image   string             `bson:"image"`
}

func (d interestDoc) toModel() models.Interest {
	ids := make([]string, 0, len(d.Articles))
	for _, a := range d.Articles {
		ids = append(ids, a.Hex())
	}

	return models.Interest{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Type:      models.InterestType(d.Type),
		Update:    d.Update,
		Articles:  ids,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func articleToDoc(a models.Article) articleDoc {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}

	return articleDoc{
		Name:    a.Name,
		Summary: a.Summary,
		Link:    a.Link,
		Tags:    tags,
		Image:   a.Image,
	}
}

// parseIDs переводит hex-идентификаторы в ObjectID.
func parseIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("bad object id %q: %w", id, err)
		}
		out = append(out, oid)
	}

	return out, nil
}
