// redact предоставляет утилиты безопасного редактирования секретов для логов
// и текстов ошибок: ключи API, пароли в строках подключения.
package redact

import (
	"net/url"
	"strings"
)

// Placeholder — литерал, которым заменяется секрет.
const Placeholder = "[REDACTED]"

// sensitiveParams — query-параметры, значения которых никогда не выводятся.
var sensitiveParams = []string{"api_key", "apikey", "key", "token", "access_token", "password"}

// Secret вырезает из s все вхождения secret, в том числе в URL-экранированном виде
// (net/http включает полный URL запроса в *url.Error).
// Пустой secret — s возвращается без изменений.
func Secret(s, secret string) string {
	if secret == "" {
		return s
	}

	if escaped := url.QueryEscape(secret); escaped != secret {
		s = strings.ReplaceAll(s, escaped, Placeholder)
	}

	return strings.ReplaceAll(s, secret, Placeholder)
}

// URL маскирует пароль в userinfo и значения чувствительных query-параметров.
//
// Примеры:
//
//	"mongodb://user:pass@db:27017/enrichment" -> "mongodb://user:[REDACTED]@db:27017/enrichment"
//	"https://serpapi.com/search.json?api_key=k&q=go" -> "https://serpapi.com/search.json?api_key=[REDACTED]&q=go"
//	"::bad" -> "***"
func URL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "***"
	}

	if u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), Placeholder)
		}
	}

	if u.RawQuery != "" {
		q := u.Query()
		for _, p := range sensitiveParams {
			if q.Has(p) {
				q.Set(p, Placeholder)
			}
		}
		u.RawQuery = q.Encode()
	}

	// Placeholder экранируется при сборке URL; для логов нужен читаемый вид.
	return strings.ReplaceAll(u.String(), url.QueryEscape(Placeholder), Placeholder)
}
