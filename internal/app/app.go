// Package app собирает зависимости сервиса из конфигурации.
// Используется HTTP сервером и CLI.
package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/proposal-backend/internal/ai"
	"github.com/ignatzorin/proposal-backend/internal/config"
	"github.com/ignatzorin/proposal-backend/internal/logger"
	"github.com/ignatzorin/proposal-backend/internal/metrics"
	"github.com/ignatzorin/proposal-backend/internal/prompt"
	"github.com/ignatzorin/proposal-backend/internal/service"
	"github.com/ignatzorin/proposal-backend/internal/storage"
)

// App готовые сервисы поверх файлового хранилища.
type App struct {
	Config    *config.Config
	Ledger    *storage.FileLedger
	Store     *storage.TemplateStore
	Generator ai.TextGenerator
	Metrics   *metrics.Metrics
	Templates *service.TemplateService
	Proposals *service.ProposalService
	Seeds     *service.SeedService
}

// New создаёт журнал, хранилище, генератор и сервисы.
func New(cfg *config.Config) (*App, error) {
	ledger, err := storage.NewFileLedger(cfg.UsageFile)
	if err != nil {
		return nil, fmt.Errorf("app: журнал использования: %w", err)
	}

	store, err := storage.NewTemplateStore(cfg.HumanTemplatesDir, cfg.AITemplatesDir, ledger,
		storage.WithAdminDelete(cfg.AllowAdminDelete))
	if err != nil {
		return nil, fmt.Errorf("app: хранилище шаблонов: %w", err)
	}

	profile, err := prompt.LoadBusinessProfile(cfg.BusinessProfilePath)
	if err != nil {
		return nil, fmt.Errorf("app: профиль бизнеса: %w", err)
	}

	m := metrics.New()
	generator := ai.NewGenerator(cfg)

	logger.WithComponent("app").WithFields(logrus.Fields{
		"human_dir":  cfg.HumanTemplatesDir,
		"ai_dir":     cfg.AITemplatesDir,
		"usage_file": ledger.Path(),
		"profile":    profile != nil,
	}).Info("зависимости собраны")

	return &App{
		Config:    cfg,
		Ledger:    ledger,
		Store:     store,
		Generator: generator,
		Metrics:   m,
		Templates: service.NewTemplateService(store, m),
		Proposals: service.NewProposalService(store, generator,
			service.WithBusinessProfile(profile),
			service.WithMetrics(m),
		),
		Seeds: service.NewSeedService(store),
	}, nil
}

// TemplateDirs каталоги, которые проверяет /health.
func (a *App) TemplateDirs() map[string]string {
	return map[string]string{
		"human_templates": a.Config.HumanTemplatesDir,
		"ai_templates":    a.Config.AITemplatesDir,
	}
}
