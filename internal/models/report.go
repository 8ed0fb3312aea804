package models

import "time"

// UsageRecord статистика использования шаблона.
type UsageRecord struct {
	UsageCount int        `json:"usage_count"`
	LastUsed   *time.Time `json:"last_used"`
	AIAnalysis []string   `json:"ai_analysis"`
}

// TemplateReport объединяет статистику использования и содержимое шаблона.
type TemplateReport struct {
	Filename   string     `json:"filename"`
	UsageCount int        `json:"usage_count"`
	LastUsed   *time.Time `json:"last_used"`
	AIAnalysis []string   `json:"ai_analysis"`
	Content    string     `json:"content"`
	// Found false, если нет ни записи в журнале, ни файла шаблона.
	Found bool `json:"-"`
}
