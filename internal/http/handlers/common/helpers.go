package common

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-backend/internal/dto"
	"github.com/ignatzorin/proposal-backend/internal/pkg/apperror"
)

// BindAndValidate binds JSON request and returns properly formatted error
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, fmt.Sprintf("requisição inválida: %v", err))
	}
	return nil
}

// Fail передаёт ошибку в ErrorHandler и прерывает цепочку.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// RespondError sends a standardized error response
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// RespondMessage sends a message for the user, optionally with a template name
func RespondMessage(c *gin.Context, statusCode int, message, templateName string) {
	c.JSON(statusCode, dto.MessageResponse{Message: message, TemplateName: templateName})
}

// RespondJSON sends a JSON response with the given status code and data
func RespondJSON(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// RespondBadRequest sends a 400 Bad Request response
func RespondBadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "requisição inválida"
	}
	RespondError(c, http.StatusBadRequest, message)
}
