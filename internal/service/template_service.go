package service

import (
	"errors"
	"strings"

	"github.com/ignatzorin/proposal-backend/internal/logger"
	"github.com/ignatzorin/proposal-backend/internal/metrics"
	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/pkg/apperror"
	"github.com/ignatzorin/proposal-backend/internal/prompt"
	"github.com/ignatzorin/proposal-backend/internal/storage"
	"github.com/ignatzorin/proposal-backend/internal/validation"
)

// TemplateService операции с библиотекой шаблонов для HTTP и CLI.
type TemplateService struct {
	store   *storage.TemplateStore
	metrics *metrics.Metrics
}

// NewTemplateService создаёт сервис. m может быть nil.
func NewTemplateService(store *storage.TemplateStore, m *metrics.Metrics) *TemplateService {
	return &TemplateService{store: store, metrics: m}
}

// List возвращает все шаблоны, разбитые по категориям.
func (s *TemplateService) List() (models.TemplateListing, error) {
	listing, err := s.store.ListAll()
	if err != nil {
		return models.TemplateListing{}, apperror.Wrap(err, apperror.ErrCodeStorage, "não foi possível ler os templates")
	}
	return listing, nil
}

// SaveHuman проверяет и сохраняет шаблон, написанный человеком.
func (s *TemplateService) SaveHuman(tpl models.ProposalTemplate) (string, error) {
	tpl.Title = strings.TrimSpace(tpl.Title)
	if err := validation.ValidateTemplate(tpl); err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	filename, err := s.store.Save(models.CategoryHuman, tpl)
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeStorage, "não foi possível salvar o template")
	}
	s.count("save", models.CategoryHuman)
	return filename, nil
}

// Delete удаляет шаблон. tag принимает human_adm, admin, human и ai.
func (s *TemplateService) Delete(tag, filename string) error {
	category, ok := models.ParseTemplateCategory(tag)
	if !ok {
		return apperror.New(apperror.ErrCodeBadRequest, "Tipo de template inválido.")
	}

	err := s.store.Delete(category, filename)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrTemplateNotFound):
		return apperror.Wrap(err, apperror.ErrCodeNotFound, "Template não encontrado.")
	case errors.Is(err, storage.ErrAdminTemplateProtected):
		return apperror.Wrap(err, apperror.ErrCodeForbidden, "Templates do administrador não podem ser deletados.")
	case errors.Is(err, storage.ErrInvalidCategory):
		return apperror.Wrap(err, apperror.ErrCodeBadRequest, "Tipo de template inválido.")
	default:
		return apperror.Wrap(err, apperror.ErrCodeStorage, "não foi possível deletar o template")
	}

	logger.WithComponent("template_service").WithField("filename", filename).Info("шаблон удалён")
	s.count("delete", category)
	return nil
}

// Report возвращает статистику и содержимое шаблона.
// Если нет ни файла, ни записи в журнале, возвращается NotFound.
func (s *TemplateService) Report(filename string) (models.TemplateReport, error) {
	report := s.store.Report(filename)
	if !report.Found {
		return report, apperror.New(apperror.ErrCodeNotFound, "Template não encontrado")
	}
	return report, nil
}

// AppendAnalysis добавляет заметку анализа к шаблону.
func (s *TemplateService) AppendAnalysis(filename, text string) error {
	if err := validation.ValidateNonEmpty("texto", text); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := s.store.AppendAnalysis(filename, strings.TrimSpace(text)); err != nil {
		return apperror.Wrap(err, apperror.ErrCodeStorage, "não foi possível salvar a análise")
	}
	return nil
}

// Preview подставляет данные клиента в тело шаблона.
func (s *TemplateService) Preview(filename string, pc models.ProposalContext) (string, error) {
	tpl, err := s.store.Load(filename)
	if errors.Is(err, storage.ErrTemplateNotFound) {
		return "", apperror.Wrap(err, apperror.ErrCodeNotFound, "Template não encontrado.")
	}
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeStorage, "não foi possível ler o template")
	}
	return prompt.RenderPlaceholders(tpl.Body, pc), nil
}

func (s *TemplateService) count(op string, category models.TemplateCategory) {
	if s.metrics != nil {
		s.metrics.TemplateOperations.WithLabelValues(op, string(category)).Inc()
	}
}
