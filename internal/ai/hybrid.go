package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ignatzorin/proposal-backend/internal/models"
)

// HybridKind показывает, удалось ли разобрать ответ модели.
type HybridKind int

const (
	HybridParsed HybridKind = iota
	HybridFallback
)

func (k HybridKind) String() string {
	if k == HybridParsed {
		return "parsed"
	}
	return "fallback"
}

// Значения шаблона, собранного из неразобранного ответа.
const (
	FallbackTitle    = "Proposta Híbrida (Fallback)"
	FallbackSubject  = "Uma proposta para você"
	FallbackIdealFor = "Situações onde a IA falhou em gerar um JSON."
)

// HybridResult результат разбора гибридного шаблона.
type HybridResult struct {
	Kind     HybridKind
	Template models.ProposalTemplate
}

const hybridSchemaJSON = `{
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"subject": {"type": "string"},
		"ideal_for": {"type": "string"},
		"body": {"type": "string", "minLength": 1, "pattern": "\\S"}
	},
	"required": ["body"]
}`

var hybridSchema = mustCompileSchema("hybrid.json", hybridSchemaJSON)

func mustCompileSchema(url, schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, strings.NewReader(schema)); err != nil {
		panic(fmt.Sprintf("ai: не удалось загрузить схему %s: %v", url, err))
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("ai: не удалось скомпилировать схему %s: %v", url, err))
	}
	return compiled
}

// ParseHybrid извлекает шаблон из ответа модели. Если JSON не найден
// или не проходит схему, тело шаблона равно исходному тексту.
func ParseHybrid(raw string) HybridResult {
	for _, candidate := range jsonCandidates(raw) {
		var doc any
		if err := json.Unmarshal([]byte(candidate), &doc); err != nil {
			continue
		}
		if err := hybridSchema.Validate(doc); err != nil {
			continue
		}

		var tpl models.ProposalTemplate
		if err := json.Unmarshal([]byte(candidate), &tpl); err != nil {
			continue
		}
		return HybridResult{Kind: HybridParsed, Template: withFallbackDefaults(tpl)}
	}

	return HybridResult{
		Kind: HybridFallback,
		Template: models.ProposalTemplate{
			Title:    FallbackTitle,
			Subject:  FallbackSubject,
			Body:     raw,
			IdealFor: FallbackIdealFor,
		},
	}
}

func withFallbackDefaults(tpl models.ProposalTemplate) models.ProposalTemplate {
	if strings.TrimSpace(tpl.Title) == "" {
		tpl.Title = FallbackTitle
	}
	if strings.TrimSpace(tpl.Subject) == "" {
		tpl.Subject = FallbackSubject
	}
	if strings.TrimSpace(tpl.IdealFor) == "" {
		tpl.IdealFor = FallbackIdealFor
	}
	tpl.Filename = ""
	return tpl
}

// jsonCandidates варианты текста, которые стоит попробовать разобрать как JSON.
func jsonCandidates(content string) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	candidates := []string{content}
	if stripped := stripCodeFences(content); stripped != "" && stripped != content {
		candidates = append(candidates, stripped)
	}
	if extracted := extractJSONObject(content); extracted != "" && extracted != content {
		candidates = append(candidates, extracted)
	}
	return candidates
}

func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}

	// Первая строка: ``` или ```json
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// extractJSONObject вырезает текст от первой { до последней }.
func extractJSONObject(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}
