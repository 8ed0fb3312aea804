package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/validation"
)

const mediaField = "media"

// collectMedia собирает вложения из формы: строки base64 и файлы multipart.
// Файлы кодируются в base64, тип определяется позже генератором.
func collectMedia(c *gin.Context, encoded []string) ([]models.MediaAttachment, error) {
	media := make([]models.MediaAttachment, 0, len(encoded))
	for _, content := range encoded {
		if content = strings.TrimSpace(content); content != "" {
			media = append(media, models.MediaAttachment{Content: content})
		}
	}

	form, err := c.MultipartForm()
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, fmt.Errorf("não foi possível ler os arquivos: %w", err)
	}
	if form != nil {
		for _, header := range form.File[mediaField] {
			file, err := header.Open()
			if err != nil {
				return nil, fmt.Errorf("não foi possível abrir o arquivo %s", header.Filename)
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				return nil, fmt.Errorf("não foi possível ler o arquivo %s", header.Filename)
			}
			media = append(media, models.MediaAttachment{Content: base64.StdEncoding.EncodeToString(data)})
		}
	}

	if len(media) > validation.MaxMediaCount {
		return nil, fmt.Errorf("no máximo %d arquivos de mídia são permitidos", validation.MaxMediaCount)
	}
	return media, nil
}
