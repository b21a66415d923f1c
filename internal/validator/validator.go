// validator приводит сырой текст ответа языковой модели к models.ArticleBatch.
//
// Пакет чистый: без I/O и логирования. Любая ошибка возвращается как
// *ValidationError и сравнивается через errors.Is с одной из сентинел-ошибок.
package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pribylovaa/go-news-aggregator/enrichment-service/internal/models"
)

var (
	// ErrNoJSONFound — в тексте нет пары '{' ... '}'.
	ErrNoJSONFound = errors.New("no json object found")
	// ErrMalformedJSON — найденный фрагмент не разбирается как JSON.
	ErrMalformedJSON = errors.New("malformed json")
	// ErrSchemaMismatch — JSON разобран, но не соответствует форме ArticleBatch.
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// ValidationError описывает, почему ответ модели не годится.
type ValidationError struct {
	// Kind — одна из ErrNoJSONFound, ErrMalformedJSON, ErrSchemaMismatch.
	Kind error
	// Field — путь до поля для ErrSchemaMismatch (например, "articles[1].keyPoints").
	Field string
	// Err — исходная причина (ошибка json-декодера и т.п.), может быть nil.
	Err error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())

	if e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Field)
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap позволяет errors.Is находить и Kind, и исходную причину.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// Validate вырезает из raw подстроку от первой '{' до последней '}',
// разбирает её и проверяет обязательные поля канонической формы:
//
//	{recommendation: string, reasoning: string[],
//	 articles: [{title: string, summary: string, keyPoints: string[]}]}
//
// Неизвестные поля игнорируются. null в обязательном поле считается отсутствием.
// summary не может быть пустым; пустой title допустим.
func Validate(raw string) (*models.ArticleBatch, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end < start {
		return nil, &ValidationError{Kind: ErrNoJSONFound}
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw[start:end+1]), &root); err != nil {
		return nil, &ValidationError{Kind: ErrMalformedJSON, Err: err}
	}

	var batch models.ArticleBatch
	var err error

	if batch.Recommendation, err = requireString(root, "recommendation", ""); err != nil {
		return nil, err
	}

	if batch.Reasoning, err = requireStrings(root, "reasoning", ""); err != nil {
		return nil, err
	}

	items, err := requireArray(root, "articles", "")
	if err != nil {
		return nil, err
	}

	batch.Articles = make([]models.ArticleSummary, 0, len(items))
	for i, item := range items {
		prefix := fmt.Sprintf("articles[%d].", i)

		var obj map[string]json.RawMessage
		if isNull(item) || json.Unmarshal(item, &obj) != nil {
			return nil, mismatch(fmt.Sprintf("articles[%d]", i), errors.New("expected object"))
		}

		var s models.ArticleSummary
		if s.Title, err = requireString(obj, "title", prefix); err != nil {
			return nil, err
		}
		if s.Summary, err = requireText(obj, "summary", prefix); err != nil {
			return nil, err
		}
		if s.KeyPoints, err = requireStrings(obj, "keyPoints", prefix); err != nil {
			return nil, err
		}

		batch.Articles = append(batch.Articles, s)
	}

	return &batch, nil
}

func mismatch(field string, cause error) *ValidationError {
	return &ValidationError{Kind: ErrSchemaMismatch, Field: field, Err: cause}
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func lookup(obj map[string]json.RawMessage, key, prefix string) (json.RawMessage, error) {
	v, ok := obj[key]
	if !ok || isNull(v) {
		return nil, mismatch(prefix+key, errors.New("required field is missing"))
	}

	return v, nil
}

func requireString(obj map[string]json.RawMessage, key, prefix string) (string, error) {
	v, err := lookup(obj, key, prefix)
	if err != nil {
		return "", err
	}

	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", mismatch(prefix+key, errors.New("expected string"))
	}

	return s, nil
}

// requireText — как requireString, но пустая строка (или одни пробелы) — тоже mismatch.
// Статья без текста выжимки не сохраняется.
func requireText(obj map[string]json.RawMessage, key, prefix string) (string, error) {
	s, err := requireString(obj, key, prefix)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(s) == "" {
		return "", mismatch(prefix+key, errors.New("must not be empty"))
	}

	return s, nil
}

func requireArray(obj map[string]json.RawMessage, key, prefix string) ([]json.RawMessage, error) {
	v, err := lookup(obj, key, prefix)
	if err != nil {
		return nil, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil {
		return nil, mismatch(prefix+key, errors.New("expected array"))
	}

	return items, nil
}

func requireStrings(obj map[string]json.RawMessage, key, prefix string) ([]string, error) {
	items, err := requireArray(obj, key, prefix)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		var s string
		if isNull(item) || json.Unmarshal(item, &s) != nil {
			return nil, mismatch(fmt.Sprintf("%s%s[%d]", prefix, key, i), errors.New("expected string"))
		}
		out = append(out, s)
	}

	return out, nil
}
