// Package ai содержит генераторы текста: клиент Gemini и детерминированный мок.
package ai

import (
	"context"

	"github.com/ignatzorin/proposal-backend/internal/config"
	"github.com/ignatzorin/proposal-backend/internal/logger"
	"github.com/ignatzorin/proposal-backend/internal/models"
)

// ErrorPrefix начинает текст, которым генератор сообщает об ошибке вместо результата.
const ErrorPrefix = "Erro ao gerar conteúdo: "

// TextGenerator превращает запрос (и необязательные медиа файлы) в текст.
// Ошибки не возвращаются: при сбое текст начинается с ErrorPrefix.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, media []models.MediaAttachment) string
}

// NewGenerator выбирает генератор по конфигурации.
func NewGenerator(cfg *config.Config) TextGenerator {
	log := logger.WithComponent("ai")

	if cfg.UseMockAI {
		log.Info("используется мок генератор")
		return NewMockClient()
	}
	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY не задан, используется мок генератор")
		return NewMockClient()
	}

	log.WithField("model", cfg.GeminiModel).Info("используется Gemini")
	return NewGeminiClient(GeminiOptions{
		BaseURL:     cfg.GeminiBaseURL,
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		Timeout:     cfg.AITimeout,
		MaxAttempts: cfg.AIMaxAttempts,
	})
}
