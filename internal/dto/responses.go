package dto

import (
	"time"

	"github.com/ignatzorin/proposal-backend/internal/models"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse ответ с сообщением для пользователя.
type MessageResponse struct {
	Message      string `json:"message"`
	TemplateName string `json:"template_name,omitempty"`
}

// PreviewResponse тело шаблона с подставленными данными клиента.
type PreviewResponse struct {
	Preview string `json:"preview"`
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// ReportPage данные для HTML страницы отчёта.
type ReportPage struct {
	Filename   string
	UsageCount int
	LastUsed   string
	Content    string
	AIAnalysis []string
}

// NewReportPage готовит отчёт к выводу: "Nunca" без даты использования.
func NewReportPage(r models.TemplateReport) ReportPage {
	lastUsed := "Nunca"
	if r.LastUsed != nil {
		lastUsed = r.LastUsed.Format("02/01/2006 15:04:05")
	}
	return ReportPage{
		Filename:   r.Filename,
		UsageCount: r.UsageCount,
		LastUsed:   lastUsed,
		Content:    r.Content,
		AIAnalysis: r.AIAnalysis,
	}
}
