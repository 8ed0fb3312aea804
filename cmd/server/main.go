package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignatzorin/proposal-backend/internal/app"
	"github.com/ignatzorin/proposal-backend/internal/config"
	"github.com/ignatzorin/proposal-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/proposal-backend/internal/http/handlers"
	httpRouter "github.com/ignatzorin/proposal-backend/internal/http/router"
	"github.com/ignatzorin/proposal-backend/internal/logger"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.IsProduction() {
		logger.Init("info")
	} else {
		logger.Init("debug")
		logger.SetTextFormatter()
	}
	mainLog := logger.WithComponent("main")

	application, err := app.New(cfg)
	if err != nil {
		mainLog.WithError(err).Fatal("не удалось собрать зависимости")
	}

	// В разработке пустая библиотека заполняется встроенными шаблонами.
	if !cfg.IsProduction() {
		if _, err := application.Seeds.Seed(false); err != nil {
			mainLog.WithError(err).Warn("не удалось заполнить библиотеку шаблонов")
		}
	}

	// HTTP хэндлеры.
	templateHandler := httpHandlers.NewTemplateHandler(application.Templates)
	reportHandler := httpHandlers.NewReportHandler(application.Templates)
	proposalHandler := httpHandlers.NewProposalHandler(application.Proposals, cfg.MaxUploadSizeMB)
	healthHandler := httpHandlers.NewHealthHandler(application.TemplateDirs())
	seedHandler := httpHandlers.NewSeedHandler(application.Seeds)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, templateHandler, reportHandler, proposalHandler, healthHandler, seedHandler, application.Metrics)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	runner := goroutine.NewRunner(logger.Log)

	// Завершаем сервер при получении сигнала.
	runner.GoWithContext(ctx, "shutdown", func(ctx context.Context) {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			mainLog.WithError(err).Error("ошибка остановки http сервера")
		}
	})

	mainLog.WithField("port", cfg.HTTPPort).Info("HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		mainLog.WithError(err).Fatal("сервер завершился с ошибкой")
	}

	runner.Wait()
	if err := application.Ledger.Flush(); err != nil {
		mainLog.WithError(err).Error("не удалось сохранить журнал использования")
	}
	mainLog.Info("сервер остановлен")
}
