package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-backend/internal/dto"
	"github.com/ignatzorin/proposal-backend/internal/http/handlers/common"
	"github.com/ignatzorin/proposal-backend/internal/pkg/apperror"
	"github.com/ignatzorin/proposal-backend/internal/service"
)

// SeedHandler заполняет библиотеку встроенными шаблонами. Только для разработки.
type SeedHandler struct {
	seeds *service.SeedService
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seeds *service.SeedService) *SeedHandler {
	return &SeedHandler{seeds: seeds}
}

// Seed POST /api/seed
// force передаётся в query или в JSON теле.
func (h *SeedHandler) Seed(c *gin.Context) {
	var req dto.SeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		common.RespondBadRequest(c, "Parâmetro force inválido.")
		return
	}
	if c.Request.ContentLength > 0 {
		if err := common.BindAndValidate(c, &req); err != nil {
			common.Fail(c, err)
			return
		}
	}

	result, err := h.seeds.Seed(req.Force)
	if err != nil {
		common.Fail(c, apperror.Wrap(err, apperror.ErrCodeStorage, "não foi possível criar os templates iniciais"))
		return
	}

	message := "Templates iniciais criados."
	if result.Skipped {
		message = "Templates já existem, nada foi criado."
	}
	common.RespondJSON(c, http.StatusOK, gin.H{
		"message": message,
		"created": result.Created,
		"skipped": result.Skipped,
	})
}
