package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/proposal-backend/internal/logger"
	"github.com/ignatzorin/proposal-backend/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки, добавленные через c.Error, централизованно.
// AppError отдаётся со своим статусом и сообщением, прочие ошибки дают 500 с текстом ошибки.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Проверяем, не был ли уже отправлен ответ
		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		statusCode := apperror.StatusOf(err)
		message := apperror.MessageOf(err)
		if message == "" {
			message = http.StatusText(statusCode)
		}

		entry := logger.Log.WithFields(logrus.Fields{
			"error":      err.Error(),
			"code":       apperror.CodeOf(err),
			"status":     statusCode,
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString(ContextRequestIDKey),
		})
		if statusCode >= http.StatusInternalServerError {
			entry.Error("Request error")
		} else {
			entry.Info("Request rejected")
		}

		c.JSON(statusCode, gin.H{"error": message})
	}
}
