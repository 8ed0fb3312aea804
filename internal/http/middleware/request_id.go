package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/proposal-backend/internal/logger"
)

const (
	// RequestIDHeader заголовок с идентификатором запроса.
	RequestIDHeader = "X-Request-ID"
	// ContextRequestIDKey ключ идентификатора запроса в gin.Context.
	ContextRequestIDKey = "requestID"
)

// RequestID присваивает запросу идентификатор (или берёт его из заголовка)
// и пишет в лог итог обработки.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		entry := logger.Log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"client_ip":  c.ClientIP(),
		})
		if c.Writer.Status() >= 500 {
			entry.Warn("запрос завершился ошибкой")
			return
		}
		entry.Debug("запрос обработан")
	}
}
