package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-backend/internal/dto"
	"github.com/ignatzorin/proposal-backend/internal/http/handlers/common"
	"github.com/ignatzorin/proposal-backend/internal/logger"
	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/pkg/apperror"
	"github.com/ignatzorin/proposal-backend/internal/validation"
)

// ProposalGenerator генерирует предложение по данным клиента.
type ProposalGenerator interface {
	Generate(ctx context.Context, pc models.ProposalContext, media []models.MediaAttachment) (models.GeneratedProposal, error)
}

// ProposalHandler обрабатывает генерацию предложений.
type ProposalHandler struct {
	proposals     ProposalGenerator
	maxUploadSize int64
}

// NewProposalHandler создаёт handler. maxUploadMB ограничивает размер тела запроса.
func NewProposalHandler(proposals ProposalGenerator, maxUploadMB int64) *ProposalHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &ProposalHandler{proposals: proposals, maxUploadSize: maxUploadMB << 20}
}

// Generate POST /generate-proposal
func (h *ProposalHandler) Generate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)

	var form dto.GenerateProposalForm
	if err := c.ShouldBind(&form); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			common.RespondError(c, http.StatusRequestEntityTooLarge, "Arquivos excedem o tamanho máximo permitido.")
			return
		}
		common.RespondBadRequest(c, "Formulário inválido: "+err.Error())
		return
	}

	problems, err := parseProblems(form.Problems)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	media, err := collectMedia(c, form.Media)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	pc := models.ProposalContext{
		ClientName: strings.TrimSpace(form.Nome),
		Company:    strings.TrimSpace(form.Empresa),
		Niche:      strings.TrimSpace(form.Nicho),
		FoundAt:    strings.TrimSpace(form.Onde),
		Compliment: strings.TrimSpace(form.Ponto),
		Problems:   problems,
	}
	if err := validation.ValidateProposalContext(pc); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.proposals.Generate(c.Request.Context(), pc, media)
	if err != nil {
		logger.WithComponent("proposal_handler").WithError(err).Error("ошибка генерации предложения")
		common.RespondError(c, apperror.StatusOf(err), "Erro ao gerar proposta: "+apperror.MessageOf(err))
		return
	}

	common.RespondJSON(c, http.StatusOK, result)
}

// parseProblems разбирает поле problems: JSON список строк. Пустое поле даёт пустой список.
func parseProblems(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}

	var problems []string
	if err := json.Unmarshal([]byte(raw), &problems); err != nil {
		return nil, errors.New("problems deve ser uma lista JSON de textos")
	}

	out := make([]string, 0, len(problems))
	for _, p := range problems {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}
