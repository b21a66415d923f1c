package models

import "time"

// ArticleBatch — структурированный ответ одного вызова суммаризации.
// Никогда не сохраняется как есть: поля переносятся в Article.
type ArticleBatch struct {
	Recommendation string           `json:"recommendation"`
	Reasoning      []string         `json:"reasoning"`
	Articles       []ArticleSummary `json:"articles"`
}

// ArticleSummary — выжимка по одной ссылке из пакета.
type ArticleSummary struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
}

// RunStats — агрегированная статистика одного прохода обогащения.
type RunStats struct {
	RunID           string    `json:"run_id"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	Selected        int       `json:"selected"`
	Processed       int       `json:"processed"`
	Skipped         int       `json:"skipped"`
	ArticlesCreated int       `json:"articles_created"`
	Interrupted     bool      `json:"interrupted"`
}
