package prompt

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// BusinessProfile описывает бизнес оператора; добавляется в запрос на синтез шаблона.
type BusinessProfile struct {
	Name               string   `yaml:"name"`
	WhatYouDo          string   `yaml:"what_you_do"`
	ProductsOrServices []string `yaml:"products_or_services"`
	Strengths          []string `yaml:"strengths"`
}

// LoadBusinessProfile читает профиль из YAML файла. Пустой путь или отсутствующий файл дают nil.
func LoadBusinessProfile(path string) (*BusinessProfile, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("prompt: не удалось прочитать профиль %s: %w", path, err)
	}

	var profile BusinessProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("prompt: неверный формат профиля %s: %w", path, err)
	}
	return &profile, nil
}

// Section возвращает блок запроса с описанием бизнеса. Для nil профиля пустая строка.
func (p *BusinessProfile) Section() string {
	if p == nil || (p.Name == "" && p.WhatYouDo == "" && len(p.ProductsOrServices) == 0 && len(p.Strengths) == 0) {
		return ""
	}

	var b strings.Builder
	b.WriteString("Sobre o Nosso Negócio:\n")
	if p.Name != "" {
		fmt.Fprintf(&b, "Empresa: %s\n", p.Name)
	}
	if p.WhatYouDo != "" {
		fmt.Fprintf(&b, "O que fazemos: %s\n", p.WhatYouDo)
	}
	writeList(&b, "Produtos ou Serviços:", p.ProductsOrServices)
	writeList(&b, "Pontos Fortes:", p.Strengths)
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(title)
	b.WriteString("\n")
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
