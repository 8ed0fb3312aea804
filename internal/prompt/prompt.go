// Package prompt собирает тексты запросов к генеративной модели.
// Функции пакета чистые: без ввода-вывода и побочных эффектов.
package prompt

import (
	"fmt"
	"strings"

	"github.com/ignatzorin/proposal-backend/internal/models"
)

// Маркеры, по которым детерминированный генератор узнаёт тип запроса.
const (
	HybridMarker    = "Modelos de Inspiração:"
	ReportMarker    = "Explique em um relatório conciso"
	SelectionMarker = "Biblioteca de Templates"
)

const notAvailable = "N/A"

// ClientContext формирует блок контекста клиента.
func ClientContext(pc models.ProposalContext) string {
	compliment := strings.TrimSpace(pc.Compliment)
	if compliment == "" {
		compliment = "Nenhum"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Nome do Cliente: %s\n", pc.ClientName)
	fmt.Fprintf(&b, "Nome da Empresa: %s\n", pc.Company)
	fmt.Fprintf(&b, "Nicho de Atuação: %s\n", pc.Niche)
	fmt.Fprintf(&b, "Onde foi encontrado: %s\n", pc.FoundAt)
	fmt.Fprintf(&b, "Ponto Forte (Elogio): %s\n", compliment)
	fmt.Fprintf(&b, "Problemas a resolver: %s", strings.Join(pc.Problems, ", "))
	return b.String()
}

// Hybrid строит запрос на синтез гибридного шаблона из 2-3 шаблонов-образцов.
// Модель должна вернуть JSON объект с ключами title, subject, body, ideal_for.
func Hybrid(clientContext string, inspirations []models.ProposalTemplate, profile *BusinessProfile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contexto do Cliente: \"%s\"\n\n", clientContext)

	if section := profile.Section(); section != "" {
		b.WriteString(section)
		b.WriteString("\n")
	}

	b.WriteString(HybridMarker)
	b.WriteString("\n")
	for i, tpl := range inspirations {
		fmt.Fprintf(&b, "\n--- Modelo de Inspiração %d ---\n", i+1)
		fmt.Fprintf(&b, "Título: %s\n", tpl.Title)
		fmt.Fprintf(&b, "Assunto: %s\n", tpl.Subject)
		fmt.Fprintf(&b, "Corpo: %s\n", tpl.Body)
	}

	b.WriteString(hybridTask)
	return b.String()
}

const hybridTask = `
---
Tarefa: Crie uma nova proposta de mensagem de vendas (template) que seja uma fusão inteligente das ideias dos modelos de inspiração fornecidos. A nova proposta deve ser perfeitamente adaptada ao contexto do cliente.

O resultado deve ser um objeto JSON com as seguintes chaves: "title", "subject", "body", "ideal_for".
- "title": Um título curto e impactante para o novo template.
- "subject": A linha de assunto do e-mail.
- "ideal_for": Descreva o cenário ideal de uso para esta nova proposta.
- "body": O corpo completo da mensagem, em formato de texto simples, usando as melhores técnicas de copywriting dos modelos de inspiração.
Responda apenas com o objeto JSON.
`

// Report строит запрос на отчёт о том, как был собран новый шаблон.
func Report(clientContext string, inspirations []models.ProposalTemplate, created models.ProposalTemplate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contexto do Cliente: \"%s\"\n\n", clientContext)

	b.WriteString("Modelos de Inspiração Usados:\n")
	for _, tpl := range inspirations {
		fmt.Fprintf(&b, "- %s\n", tpl.Title)
	}

	b.WriteString("\nNovo Template Gerado:\n")
	fmt.Fprintf(&b, "- Título: %s\n", orNotAvailable(created.Title))
	fmt.Fprintf(&b, "- Assunto: %s\n", orNotAvailable(created.Subject))

	b.WriteString("\n---\nTarefa: Escreva um relatório conciso e transparente para o usuário final. ")
	b.WriteString(ReportMarker)
	b.WriteString(", em 2-3 parágrafos, por que esses modelos de inspiração foram escolhidos e como as ideias deles foram combinadas para criar a nova proposta, considerando o contexto do cliente. Seja claro sobre a estratégia por trás da fusão.\n")
	return b.String()
}

func orNotAvailable(v string) string {
	if strings.TrimSpace(v) == "" {
		return notAvailable
	}
	return v
}
