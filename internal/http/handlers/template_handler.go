package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-backend/internal/dto"
	"github.com/ignatzorin/proposal-backend/internal/http/handlers/common"
	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/service"
)

// TemplateHandler обрабатывает запросы к библиотеке шаблонов.
type TemplateHandler struct {
	templates *service.TemplateService
}

// NewTemplateHandler создаёт handler шаблонов.
func NewTemplateHandler(templates *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// List GET /templates
func (h *TemplateHandler) List(c *gin.Context) {
	listing, err := h.templates.List()
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, listing)
}

// CreateHuman POST /templates/human
func (h *TemplateHandler) CreateHuman(c *gin.Context) {
	var tpl models.ProposalTemplate
	if err := common.BindAndValidate(c, &tpl); err != nil {
		common.Fail(c, err)
		return
	}

	name, err := h.templates.SaveHuman(tpl)
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondMessage(c, http.StatusOK, "Template criado com sucesso", name)
}

// Delete DELETE /templates/:category/:name
func (h *TemplateHandler) Delete(c *gin.Context) {
	name := c.Param("name")
	if err := h.templates.Delete(c.Param("category"), name); err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondMessage(c, http.StatusOK, fmt.Sprintf("Template '%s' deletado.", name), "")
}

// AppendAnalysis POST /templates/analysis/:name
func (h *TemplateHandler) AppendAnalysis(c *gin.Context) {
	var req dto.AnalysisRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.Fail(c, err)
		return
	}

	if err := h.templates.AppendAnalysis(c.Param("name"), req.Text); err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondMessage(c, http.StatusOK, "Análise adicionada.", "")
}

// Preview POST /templates/preview/:name
func (h *TemplateHandler) Preview(c *gin.Context) {
	var pc models.ProposalContext
	if err := common.BindAndValidate(c, &pc); err != nil {
		common.Fail(c, err)
		return
	}

	preview, err := h.templates.Preview(c.Param("name"), pc)
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, dto.PreviewResponse{Preview: preview})
}
