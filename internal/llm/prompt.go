package llm

import (
	"fmt"
	"strings"
)

// BuildPrompt собирает промпт с жёстким форматом ответа для пакета ссылок.
// Лимит слов — рекомендация модели, ответ локально не обрезается.
func BuildPrompt(links []string, wordLimit int) string {
	var b strings.Builder

	b.WriteString("Return a JSON object exactly like:\n")
	b.WriteString(`{
  "recommendation": "...",
  "reasoning": ["...", "..."],
  "articles": [{ "title": "...", "summary": "...", "keyPoints": ["..."] }]
}`)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Use %d words or fewer per summary and per key point. ", wordLimit)
	b.WriteString("Produce one entry in \"articles\" per link, in the same order as the links. ")
	b.WriteString("Respond with JSON only. Links:\n")

	for _, l := range links {
		b.WriteString(l)
		b.WriteString("\n")
	}

	return b.String()
}
