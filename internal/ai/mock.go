package ai

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/prompt"
)

// MockRule ответ на запрос, содержащий Marker.
type MockRule struct {
	Marker   string
	Response string
}

// mockHybridTemplate шаблон, который мок возвращает на запрос гибрида.
const mockHybridTemplate = `{
    "title": "Proposta Híbrida Mock",
    "subject": "Uma ideia rápida para o seu negócio",
    "ideal_for": "Testes locais sem acesso à IA.",
    "body": "Olá, [NOME_DO_PROFISSIONAL]! Acompanho seu trabalho e admiro. No entanto, notei que [PROBLEMAS]. Nossa solução: um plano direto para resolver isso e aumentar suas conversões.%s"
}`

// MockClient детерминированный генератор для разработки и тестов.
// Правила проверяются по порядку, затем срабатывают ответы по умолчанию.
type MockClient struct {
	mu      sync.Mutex
	rules   []MockRule
	prompts []string
}

// NewMockClient создаёт мок с дополнительными правилами.
func NewMockClient(rules ...MockRule) *MockClient {
	return &MockClient{rules: rules}
}

// Generate возвращает заранее заданный ответ по маркерам в запросе.
func (m *MockClient) Generate(_ context.Context, p string, media []models.MediaAttachment) string {
	m.mu.Lock()
	m.prompts = append(m.prompts, p)
	rules := m.rules
	m.mu.Unlock()

	for _, r := range rules {
		if strings.Contains(p, r.Marker) {
			return r.Response
		}
	}

	mediaInfo := ""
	if len(media) > 0 {
		mediaInfo = fmt.Sprintf(" (com análise de %d arquivos de mídia)", len(media))
	}

	switch {
	case strings.Contains(p, prompt.ReportMarker):
		return "[Relatório Mock] Esta proposta foi gerada para ser eficaz, combinando os modelos de inspiração com o contexto do cliente" + mediaInfo + "."
	case strings.Contains(p, prompt.HybridMarker):
		return fmt.Sprintf(mockHybridTemplate, mediaInfo)
	case strings.Contains(p, prompt.SelectionMarker):
		return "HIGH_TICKET"
	default:
		return "[Proposta Mock] Conteúdo gerado com base no prompt e no template" + mediaInfo + "."
	}
}

// Prompts возвращает копию всех полученных запросов.
func (m *MockClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Calls возвращает число вызовов Generate.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
