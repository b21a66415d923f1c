// models содержит доменные сущности enrichment-сервиса.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import "time"

// InterestType — классификация интереса пользователя.
type InterestType string

const (
	InterestTransactional InterestType = "transactional"
	InterestInformational InterestType = "informational"
)

// Interest — тема, на которую подписан пользователь.
//
// Особенности:
//   - ID — ObjectID MongoDB в hex-представлении;
//   - Articles — упорядоченный список идентификаторов статей, длина не больше
//     лимита (config.EnrichmentConfig.MaxArticles, по умолчанию 5);
//   - Update == false исключает интерес из обогащения.
type Interest struct {
	ID        string
	Name      string
	Type      InterestType
	Update    bool
	Articles  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Needed возвращает, сколько статей не хватает до лимита max.
func (i Interest) Needed(max int) int {
	if n := max - len(i.Articles); n > 0 {
		return n
	}

	return 0
}
