package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ignatzorin/proposal-backend/internal/models"
)

// Константы валидации
const (
	MaxTemplateTitleLength   = 200
	MaxTemplateSubjectLength = 300
	MaxTemplateBodyLength    = 10000
	MaxIdealForLength        = 1000
	MaxContextFieldLength    = 200
	MaxComplimentLength      = 500
	MaxProblemLength         = 500
	MaxProblemsCount         = 20
	MaxMediaCount            = 10
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s deve ter pelo menos %d caracteres", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s deve ter no máximo %d caracteres", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s é obrigatório", fieldName)
	}
	return nil
}

// ValidateTemplate проверяет шаблон перед сохранением.
func ValidateTemplate(tpl models.ProposalTemplate) error {
	if err := ValidateNonEmpty("título", tpl.Title); err != nil {
		return err
	}
	if err := ValidateLength("título", strings.TrimSpace(tpl.Title), 1, MaxTemplateTitleLength); err != nil {
		return err
	}
	if err := ValidateNonEmpty("corpo", tpl.Body); err != nil {
		return err
	}
	if err := ValidateLength("corpo", tpl.Body, 1, MaxTemplateBodyLength); err != nil {
		return err
	}
	if err := ValidateLength("assunto", tpl.Subject, 0, MaxTemplateSubjectLength); err != nil {
		return err
	}
	return ValidateLength("ideal para", tpl.IdealFor, 0, MaxIdealForLength)
}

// ValidateProposalContext проверяет данные клиента для генерации.
func ValidateProposalContext(pc models.ProposalContext) error {
	required := []struct {
		name  string
		value string
	}{
		{"nome", pc.ClientName},
		{"empresa", pc.Company},
		{"nicho", pc.Niche},
		{"onde", pc.FoundAt},
	}
	for _, f := range required {
		if err := ValidateNonEmpty(f.name, f.value); err != nil {
			return err
		}
		if err := ValidateLength(f.name, f.value, 0, MaxContextFieldLength); err != nil {
			return err
		}
	}

	if err := ValidateLength("ponto", pc.Compliment, 0, MaxComplimentLength); err != nil {
		return err
	}
	return ValidateProblems(pc.Problems)
}

// ValidateProblems проверяет список проблем клиента.
func ValidateProblems(problems []string) error {
	if len(problems) > MaxProblemsCount {
		return fmt.Errorf("no máximo %d problemas são permitidos", MaxProblemsCount)
	}
	for _, p := range problems {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("problema não pode ser vazio")
		}
		if utf8.RuneCountInString(p) > MaxProblemLength {
			return fmt.Errorf("problema deve ter no máximo %d caracteres", MaxProblemLength)
		}
	}
	return nil
}
