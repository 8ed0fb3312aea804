package models

// TemplateCategory категория шаблона.
type TemplateCategory string

// Категории шаблонов. Теги совпадают с тем, что ожидает фронтенд.
const (
	CategoryAdmin TemplateCategory = "human_adm"
	CategoryHuman TemplateCategory = "human"
	CategoryAI    TemplateCategory = "ai"
)

// ValidTemplateCategories список валидных категорий.
var ValidTemplateCategories = map[TemplateCategory]struct{}{
	CategoryAdmin: {},
	CategoryHuman: {},
	CategoryAI:    {},
}

// ParseTemplateCategory разбирает тег категории; "admin" принимается как синоним.
func ParseTemplateCategory(tag string) (TemplateCategory, bool) {
	if tag == "admin" {
		return CategoryAdmin, true
	}
	category := TemplateCategory(tag)
	_, ok := ValidTemplateCategories[category]
	return category, ok
}
