package models

// ProposalContext данные клиента, из которых собирается контекст для генерации.
type ProposalContext struct {
	ClientName string   `json:"nome"`
	Company    string   `json:"empresa"`
	Niche      string   `json:"nicho"`
	FoundAt    string   `json:"onde"`
	Compliment string   `json:"ponto,omitempty"`
	Problems   []string `json:"problems"`
}

// GeneratedProposal результат генерации предложения.
type GeneratedProposal struct {
	Proposal     string   `json:"proposal"`
	Report       string   `json:"report"`
	TemplateName string   `json:"template_name,omitempty"`
	Inspirations []string `json:"inspirations,omitempty"`
}
