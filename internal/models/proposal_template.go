package models

import "encoding/json"

// ProposalTemplate описывает шаблон коммерческого предложения, хранящийся в JSON файле.
type ProposalTemplate struct {
	Title    string `json:"title"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	IdealFor string `json:"ideal_for"`
	// Filename заполняется из имени файла при чтении и в сам файл не пишется.
	Filename string `json:"filename,omitempty"`
}

// UnmarshalJSON принимает и старый формат фронтенда (name/content).
func (t *ProposalTemplate) UnmarshalJSON(data []byte) error {
	type plain ProposalTemplate
	var raw struct {
		plain
		Name    string `json:"name"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = ProposalTemplate(raw.plain)
	if t.Title == "" {
		t.Title = raw.Name
	}
	if t.Body == "" {
		t.Body = raw.Content
	}
	return nil
}

// TemplateListing все шаблоны, разложенные по категориям.
type TemplateListing struct {
	Admin []ProposalTemplate `json:"human_adm"`
	Human []ProposalTemplate `json:"human"`
	AI    []ProposalTemplate `json:"ai"`
}

// Pool склеивает категории в единый список для выбора вдохновения.
func (l TemplateListing) Pool() []ProposalTemplate {
	pool := make([]ProposalTemplate, 0, len(l.Admin)+len(l.Human)+len(l.AI))
	pool = append(pool, l.Admin...)
	pool = append(pool, l.Human...)
	pool = append(pool, l.AI...)
	return pool
}
