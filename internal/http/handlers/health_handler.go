package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-backend/internal/dto"
)

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	dirs map[string]string
}

// NewHealthHandler создаёт health handler. dirs: имя проверки -> каталог, который должен читаться.
func NewHealthHandler(dirs map[string]string) *HealthHandler {
	return &HealthHandler{dirs: dirs}
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string, len(h.dirs))
	status := "ok"

	for name, dir := range h.dirs {
		if _, err := os.ReadDir(dir); err != nil {
			checks[name] = "unhealthy: " + err.Error()
			status = "unhealthy"
			continue
		}
		checks[name] = "ok"
	}

	statusCode := http.StatusOK
	if status != "ok" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Checks:    checks,
	})
}
