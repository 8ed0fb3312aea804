package prompt

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ignatzorin/proposal-backend/internal/models"
)

var placeholderPattern = regexp.MustCompile(`\[([^\[\]]+)\]`)

// RenderPlaceholders подставляет данные клиента вместо маркеров вида [NOME_DO_PROFISSIONAL].
// Регистр и пробелы внутри скобок не важны. Неизвестные маркеры остаются как есть.
func RenderPlaceholders(body string, pc models.ProposalContext) string {
	values := map[string]string{
		"NOME_DO_PROFISSIONAL": pc.ClientName,
		"NOME_DO_CLIENTE":      pc.ClientName,
		"NOME_DA_EMPRESA":      pc.Company,
		"NICHO_DA_EMPRESA":     pc.Niche,
		"ONDE_ENCONTREI":       pc.FoundAt,
		"ELOGIO":               pc.Compliment,
		"PROBLEMAS":            strings.Join(pc.Problems, "; "),
	}

	return placeholderPattern.ReplaceAllStringFunc(body, func(match string) string {
		key := placeholderKey(match[1 : len(match)-1])
		value, ok := values[key]
		if !ok || strings.TrimSpace(value) == "" {
			return match
		}
		return value
	})
}

// placeholderKey приводит "Nome do Profissional" и "NOME_DO_PROFISSIONAL" к одному ключу.
func placeholderKey(raw string) string {
	key := strings.ToUpper(foldKey(strings.TrimSpace(raw)))
	return strings.Join(strings.Fields(strings.ReplaceAll(key, "_", " ")), "_")
}

func foldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
