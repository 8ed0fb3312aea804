package dto

// AnalysisRequest заметка анализа шаблона.
type AnalysisRequest struct {
	Text string `json:"text" binding:"required"`
}

// SeedRequest параметры заполнения библиотеки.
type SeedRequest struct {
	Force bool `json:"force" form:"force"`
}

// GenerateProposalForm поля формы генерации предложения.
// problems приходит строкой с JSON списком.
type GenerateProposalForm struct {
	Nome     string   `form:"nome"`
	Empresa  string   `form:"empresa"`
	Nicho    string   `form:"nicho"`
	Onde     string   `form:"onde"`
	Ponto    string   `form:"ponto"`
	Problems string   `form:"problems"`
	Media    []string `form:"media"`
}
