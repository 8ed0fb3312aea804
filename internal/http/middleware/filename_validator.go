package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TemplateFilename проверяет, что параметр с указанным именем похож на имя файла шаблона.
// Имена с разделителями пути или ".." отклоняются как несуществующие.
// Использование: router.DELETE("/templates/:category/:name", TemplateFilename("name"), handler.Delete)
func TemplateFilename(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param(paramName)
		if strings.TrimSpace(name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "parâmetro " + paramName + " é obrigatório",
			})
			c.Abort()
			return
		}

		if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Template não encontrado.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
