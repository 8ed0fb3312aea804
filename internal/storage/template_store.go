package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/proposal-backend/internal/logger"
	"github.com/ignatzorin/proposal-backend/internal/models"
)

// AdminTemplatesCount первые N шаблонов каталога human (по имени файла) считаются шаблонами администратора.
const AdminTemplatesCount = 10

// ContentNotFound подставляется в отчёт, когда файла шаблона нет.
const ContentNotFound = "Conteúdo não disponível."

// TemplateStore файловое хранилище шаблонов: один JSON файл на шаблон.
type TemplateStore struct {
	humanDir         string
	aiDir            string
	ledger           UsageLedger
	adminCount       int
	allowAdminDelete bool
	now              func() time.Time
}

// Option настраивает TemplateStore.
type Option func(*TemplateStore)

// WithAdminDelete разрешает удаление шаблонов администратора.
func WithAdminDelete(allow bool) Option {
	return func(s *TemplateStore) {
		s.allowAdminDelete = allow
	}
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(s *TemplateStore) {
		s.now = now
	}
}

// WithAdminCount меняет число шаблонов администратора.
func WithAdminCount(n int) Option {
	return func(s *TemplateStore) {
		if n >= 0 {
			s.adminCount = n
		}
	}
}

// NewTemplateStore создаёт хранилище и каталоги для шаблонов.
func NewTemplateStore(humanDir, aiDir string, ledger UsageLedger, opts ...Option) (*TemplateStore, error) {
	for _, dir := range []string{humanDir, aiDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", dir, err)
		}
	}
	if ledger == nil {
		ledger = NewMemoryLedger()
	}

	s := &TemplateStore{
		humanDir:   humanDir,
		aiDir:      aiDir,
		ledger:     ledger,
		adminCount: AdminTemplatesCount,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Ledger возвращает журнал использования.
func (s *TemplateStore) Ledger() UsageLedger {
	return s.ledger
}

// ListAll читает оба каталога. Файлы, которые не удалось разобрать, пропускаются.
func (s *TemplateStore) ListAll() (models.TemplateListing, error) {
	human, err := s.readDir(s.humanDir)
	if err != nil {
		return models.TemplateListing{}, err
	}
	ai, err := s.readDir(s.aiDir)
	if err != nil {
		return models.TemplateListing{}, err
	}

	split := s.adminCount
	if split > len(human) {
		split = len(human)
	}

	return models.TemplateListing{
		Admin: human[:split],
		Human: human[split:],
		AI:    ai,
	}, nil
}

// Save сохраняет шаблон и возвращает итоговое имя файла.
// При совпадении имён добавляется суффикс _1, _2 и т.д.
func (s *TemplateStore) Save(category models.TemplateCategory, tpl models.ProposalTemplate) (string, error) {
	dir, err := s.dirFor(category)
	if err != nil {
		return "", err
	}

	base := SanitizeFilename(tpl.Title)
	stem := strings.TrimSuffix(base, templateExt)
	filename := base
	for counter := 1; fileExists(filepath.Join(dir, filename)); counter++ {
		filename = fmt.Sprintf("%s_%d%s", stem, counter, templateExt)
	}

	tpl.Filename = ""
	data, err := encodeTemplate(tpl)
	if err != nil {
		return "", fmt.Errorf("storage: не удалось сериализовать шаблон: %w", err)
	}

	if err := writeFileAtomic(filepath.Join(dir, filename), data); err != nil {
		return "", err
	}

	logger.WithComponent("template_store").WithFields(logrus.Fields{
		"category": category,
		"filename": filename,
	}).Info("шаблон сохранён")
	return filename, nil
}

// Put записывает шаблон под заданным именем файла, перезаписывая существующий.
// Используется для встроенных шаблонов с фиксированными именами.
func (s *TemplateStore) Put(category models.TemplateCategory, filename string, tpl models.ProposalTemplate) error {
	dir, err := s.dirFor(category)
	if err != nil {
		return err
	}
	if !validFilename(filename) || filepath.Ext(filename) != templateExt {
		return fmt.Errorf("storage: недопустимое имя файла %q", filename)
	}

	tpl.Filename = ""
	data, err := encodeTemplate(tpl)
	if err != nil {
		return fmt.Errorf("storage: не удалось сериализовать шаблон: %w", err)
	}
	return writeFileAtomic(filepath.Join(dir, filename), data)
}

// Delete удаляет файл шаблона и его запись в журнале использования.
func (s *TemplateStore) Delete(category models.TemplateCategory, filename string) error {
	dir, err := s.dirFor(category)
	if err != nil {
		return err
	}

	if !s.allowAdminDelete {
		if category == models.CategoryAdmin {
			return ErrAdminTemplateProtected
		}
		// Шаблон администратора нельзя удалить и через категорию human.
		if category == models.CategoryHuman && s.isAdminFilename(filename) {
			return ErrAdminTemplateProtected
		}
	}

	if !validFilename(filename) {
		return ErrTemplateNotFound
	}

	path := filepath.Join(dir, filename)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}

	if s.ledger.Remove(filename) {
		if err := s.ledger.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// Load ищет шаблон по имени файла сначала в каталоге human, затем в ai.
func (s *TemplateStore) Load(filename string) (models.ProposalTemplate, error) {
	if !validFilename(filename) {
		return models.ProposalTemplate{}, ErrTemplateNotFound
	}

	for _, dir := range []string{s.humanDir, s.aiDir} {
		tpl, err := readTemplate(filepath.Join(dir, filename))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return models.ProposalTemplate{}, fmt.Errorf("storage: шаблон %s повреждён: %w", filename, err)
		}
		tpl.Filename = filename
		return tpl, nil
	}
	return models.ProposalTemplate{}, ErrTemplateNotFound
}

// RecordUsage увеличивает счётчик использования и сохраняет журнал.
func (s *TemplateStore) RecordUsage(filename string) error {
	s.ledger.RecordUsage(filename, s.now())
	return s.ledger.Flush()
}

// AppendAnalysis добавляет заметку анализа и сохраняет журнал.
func (s *TemplateStore) AppendAnalysis(filename, text string) error {
	s.ledger.AppendAnalysis(filename, text)
	return s.ledger.Flush()
}

// Report объединяет данные журнала с содержимым шаблона.
func (s *TemplateStore) Report(filename string) models.TemplateReport {
	rec, hasRecord := s.ledger.Get(filename)

	report := models.TemplateReport{
		Filename:   filename,
		UsageCount: rec.UsageCount,
		LastUsed:   rec.LastUsed,
		AIAnalysis: rec.AIAnalysis,
		Content:    ContentNotFound,
		Found:      hasRecord,
	}

	tpl, err := s.Load(filename)
	if err == nil {
		report.Content = tpl.Body
		report.Found = true
	} else if !errors.Is(err, ErrTemplateNotFound) {
		logger.WithComponent("template_store").WithError(err).Warn("не удалось прочитать шаблон для отчёта")
	}
	return report
}

func (s *TemplateStore) dirFor(category models.TemplateCategory) (string, error) {
	switch category {
	case models.CategoryAdmin, models.CategoryHuman:
		return s.humanDir, nil
	case models.CategoryAI:
		return s.aiDir, nil
	default:
		return "", ErrInvalidCategory
	}
}

func (s *TemplateStore) isAdminFilename(filename string) bool {
	listing, err := s.ListAll()
	if err != nil {
		return false
	}
	for _, tpl := range listing.Admin {
		if tpl.Filename == filename {
			return true
		}
	}
	return false
}

// readDir читает все шаблоны каталога в порядке имён файлов.
func (s *TemplateStore) readDir(dir string) ([]models.ProposalTemplate, error) {
	names, err := jsonFilenames(dir)
	if err != nil {
		return nil, err
	}

	log := logger.WithComponent("template_store")
	templates := make([]models.ProposalTemplate, 0, len(names))
	for _, name := range names {
		tpl, err := readTemplate(filepath.Join(dir, name))
		if err != nil {
			log.WithError(err).WithField("filename", name).Warn("не удалось прочитать шаблон, пропускаем")
			continue
		}
		tpl.Filename = name
		templates = append(templates, tpl)
	}
	return templates, nil
}

// jsonFilenames возвращает отсортированные имена *.json файлов. Нет каталога - нет файлов.
func jsonFilenames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: не удалось прочитать каталог %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != templateExt {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func readTemplate(path string) (models.ProposalTemplate, error) {
	var tpl models.ProposalTemplate

	data, err := os.ReadFile(path)
	if err != nil {
		return tpl, err
	}
	if err := json.Unmarshal(data, &tpl); err != nil {
		return tpl, err
	}
	return tpl, nil
}

// encodeTemplate пишет JSON с отступами, не экранируя HTML и не-ASCII символы.
func encodeTemplate(tpl models.ProposalTemplate) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(tpl); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
