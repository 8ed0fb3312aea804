package models

// MediaAttachment вложение к запросу генерации, содержимое в base64.
type MediaAttachment struct {
	Content string `json:"content"`
}
