package handlers

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-backend/internal/dto"
	"github.com/ignatzorin/proposal-backend/internal/http/handlers/common"
	"github.com/ignatzorin/proposal-backend/internal/service"
)

// ReportTemplateName имя HTML шаблона страницы отчёта.
const ReportTemplateName = "report.html"

const reportPageHTML = `<!DOCTYPE html>
<html lang="pt-br">
<head>
    <meta charset="UTF-8">
    <title>Relatório do Template: {{.Filename}}</title>
    <style>
        body { font-family: sans-serif; line-height: 1.6; padding: 20px; }
        pre { background-color: #f4f4f4; padding: 15px; border-radius: 5px; white-space: pre-wrap; }
    </style>
</head>
<body>
    <h1>Relatório do Template</h1>
    <p><strong>Arquivo:</strong> {{.Filename}}</p>
    <p><strong>Contagem de Uso:</strong> {{.UsageCount}}</p>
    <p><strong>Último Uso:</strong> {{.LastUsed}}</p>
    <h2>Conteúdo do Template</h2>
    <pre>{{.Content}}</pre>
    <h2>Análises da IA</h2>
    {{if .AIAnalysis}}{{range $i, $a := .AIAnalysis}}{{if $i}}<br>{{end}}{{$a}}{{end}}{{else}}Nenhuma análise.{{end}}
</body>
</html>
`

// ReportTemplates возвращает HTML шаблоны для gin (r.SetHTMLTemplate).
func ReportTemplates() *template.Template {
	return template.Must(template.New(ReportTemplateName).Parse(reportPageHTML))
}

// ReportHandler отдаёт отчёты об использовании шаблонов.
type ReportHandler struct {
	templates *service.TemplateService
}

// NewReportHandler создаёт handler отчётов.
func NewReportHandler(templates *service.TemplateService) *ReportHandler {
	return &ReportHandler{templates: templates}
}

// Page GET /templates/report/:name
func (h *ReportHandler) Page(c *gin.Context) {
	report, err := h.templates.Report(c.Param("name"))
	if err != nil {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte("<h1>Template não encontrado</h1>"))
		return
	}
	c.HTML(http.StatusOK, ReportTemplateName, dto.NewReportPage(report))
}

// JSON GET /api/templates/report/:name
func (h *ReportHandler) JSON(c *gin.Context) {
	report, err := h.templates.Report(c.Param("name"))
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, report)
}
