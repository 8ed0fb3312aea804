package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/ignatzorin/proposal-backend/internal/logger"
	"github.com/ignatzorin/proposal-backend/internal/models"
)

const (
	defaultModel   = "gemini-1.5-pro-latest"
	defaultTimeout = 60 * time.Second
	retryDelay     = time.Second
)

// GeminiOptions параметры клиента Gemini.
type GeminiOptions struct {
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	MaxAttempts uint
	RetryDelay  time.Duration
	// HTTPClient подменяет транспорт (для тестов). Timeout при этом не применяется.
	HTTPClient *http.Client
}

// GeminiClient вызывает REST метод generateContent.
type GeminiClient struct {
	baseURL     string
	apiKey      string
	model       string
	maxAttempts uint
	retryDelay  time.Duration
	httpClient  *http.Client
}

// NewGeminiClient создаёт экземпляр клиента.
func NewGeminiClient(opts GeminiOptions) *GeminiClient {
	if opts.Model == "" {
		opts.Model = defaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = 1
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = retryDelay
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &GeminiClient{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		apiKey:      opts.APIKey,
		model:       opts.Model,
		maxAttempts: opts.MaxAttempts,
		retryDelay:  opts.RetryDelay,
		httpClient:  httpClient,
	}
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Generate отправляет запрос и медиа файлы. Ошибка возвращается текстом с ErrorPrefix.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, media []models.MediaAttachment) string {
	log := logger.WithComponent("gemini")

	parts := []geminiPart{{Text: prompt}}
	for _, m := range prepareMedia(media) {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{MimeType: m.MimeType, Data: m.Data}})
	}

	var text string
	err := retry.Do(
		func() error {
			var err error
			text, err = c.generateContent(ctx, parts)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(c.maxAttempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.WithError(err).WithField("attempt", n+1).Warn("повторяем запрос к Gemini")
		}),
	)
	if err != nil {
		log.WithError(err).Error("ошибка генерации контента")
		return ErrorPrefix + err.Error()
	}
	return text
}

func (c *GeminiClient) generateContent(ctx context.Context, parts []geminiPart) (string, error) {
	if c.baseURL == "" {
		return "", retry.Unrecoverable(fmt.Errorf("ai: baseURL не задан"))
	}

	body, err := json.Marshal(geminiRequest{Contents: []geminiContent{{Role: "user", Parts: parts}}})
	if err != nil {
		return "", retry.Unrecoverable(err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", retry.Unrecoverable(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-goog-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorBody struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errorBody)
		err := fmt.Errorf("ai: код ответа %d: %s", resp.StatusCode, errorBody.Error.Message)
		// 4xx кроме 429 не исправится повтором.
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return "", retry.Unrecoverable(err)
		}
		return "", err
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("ai: не удалось разобрать ответ: %w", err)
	}

	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return "", retry.Unrecoverable(fmt.Errorf("ai: запрос заблокирован: %s", result.PromptFeedback.BlockReason))
	}
	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("ai: пустой ответ")
	}

	var b strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("ai: пустой ответ")
	}
	return b.String(), nil
}
