package ai

import (
	"encoding/base64"
	"strings"

	"github.com/h2non/filetype"

	"github.com/ignatzorin/proposal-backend/internal/logger"
	"github.com/ignatzorin/proposal-backend/internal/models"
)

// inlineMedia медиа файл, готовый к отправке в модель.
type inlineMedia struct {
	MimeType string
	Data     string
}

// prepareMedia декодирует вложения и оставляет только изображения и видео.
// Нераспознанные и битые файлы молча отбрасываются.
func prepareMedia(media []models.MediaAttachment) []inlineMedia {
	log := logger.WithComponent("gemini")
	out := make([]inlineMedia, 0, len(media))

	for i, m := range media {
		raw, err := decodeBase64(m.Content)
		if err != nil || len(raw) == 0 {
			log.WithField("index", i).Debug("вложение не декодируется, пропускаем")
			continue
		}

		// Проверяем магические байты (реальный тип файла)
		kind, err := filetype.Match(raw)
		if err != nil || kind == filetype.Unknown {
			log.WithField("index", i).Debug("тип вложения не определён, пропускаем")
			continue
		}
		if kind.MIME.Type != "image" && kind.MIME.Type != "video" {
			log.WithField("index", i).WithField("mime", kind.MIME.Value).Debug("вложение не изображение и не видео, пропускаем")
			continue
		}

		out = append(out, inlineMedia{
			MimeType: kind.MIME.Value,
			Data:     base64.StdEncoding.EncodeToString(raw),
		})
	}
	return out
}

// decodeBase64 принимает как чистый base64, так и data URL.
func decodeBase64(content string) ([]byte, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "data:") {
		if idx := strings.Index(content, ","); idx >= 0 {
			content = content[idx+1:]
		}
	}

	raw, err := base64.StdEncoding.DecodeString(content)
	if err == nil {
		return raw, nil
	}
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(content, "="))
}
