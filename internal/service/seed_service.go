package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/proposal-backend/internal/logger"
	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/storage"
)

// SeedResult итог заполнения библиотеки.
type SeedResult struct {
	Created []string `json:"created"`
	Skipped bool     `json:"skipped"`
}

// SeedService заполняет библиотеку встроенными шаблонами администратора.
type SeedService struct {
	store *storage.TemplateStore
}

// NewSeedService создаёт сервис заполнения.
func NewSeedService(store *storage.TemplateStore) *SeedService {
	return &SeedService{store: store}
}

// Seed записывает встроенные шаблоны, если в каталоге human ещё нет шаблонов.
// С force шаблоны перезаписываются всегда.
func (s *SeedService) Seed(force bool) (SeedResult, error) {
	log := logger.WithComponent("seed_service")

	listing, err := s.store.ListAll()
	if err != nil {
		return SeedResult{}, fmt.Errorf("seed service: не удалось прочитать шаблоны: %w", err)
	}
	if !force && len(listing.Admin)+len(listing.Human) > 0 {
		log.Info("библиотека уже заполнена, пропускаем")
		return SeedResult{Skipped: true, Created: []string{}}, nil
	}

	created := make([]string, 0, len(builtinTemplates))
	for i, tpl := range builtinTemplates {
		filename := SeedFilename(i, tpl.Title)
		if err := s.store.Put(models.CategoryAdmin, filename, tpl); err != nil {
			return SeedResult{Created: created}, fmt.Errorf("seed service: не удалось записать %s: %w", filename, err)
		}
		created = append(created, filename)
	}

	log.WithFields(logrus.Fields{"count": len(created), "force": force}).Info("встроенные шаблоны записаны")
	return SeedResult{Created: created}, nil
}

// SeedFilename имя файла встроенного шаблона: порядковый префикс сохраняет порядок сортировки.
func SeedFilename(index int, title string) string {
	return fmt.Sprintf("%02d_%s", index, storage.SanitizeFilename(title))
}

// BuiltinTemplates возвращает копию встроенных шаблонов.
func BuiltinTemplates() []models.ProposalTemplate {
	return append([]models.ProposalTemplate(nil), builtinTemplates...)
}
