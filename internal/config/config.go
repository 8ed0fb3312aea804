package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ignatzorin/proposal-backend/internal/logger"
)

const (
	defaultGeminiModel   = "gemini-1.5-pro-latest"
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// Config хранит все параметры запуска приложения.
type Config struct {
	Env      string
	HTTPPort string

	UseMockAI     bool
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	AITimeout     time.Duration
	AIMaxAttempts uint

	HumanTemplatesDir   string
	AITemplatesDir      string
	UsageFile           string
	FrontendDir         string
	BusinessProfilePath string
	AllowAdminDelete    bool

	AllowedOrigins  []string
	RateLimitLimit  int64
	RateLimitPeriod time.Duration
	MaxUploadSizeMB int64
}

// IsProduction сообщает, запущен ли сервис в production окружении.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load читает переменные окружения и возвращает готовую конфигурацию.
func Load() (*Config, error) {
	// Загружаем .env только если он существует, иначе используем системные переменные.
	if err := godotenv.Load(".env"); err != nil {
		logger.Log.Debugf("config: .env не найден, используем переменные окружения: %v", err)
	}
	return FromEnv()
}

// FromEnv собирает конфигурацию только из переменных окружения.
func FromEnv() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Env:                 env,
		HTTPPort:            getEnv("HTTP_PORT", "8000"),
		GeminiAPIKey:        getEnv("GEMINI_API_KEY", ""),
		GeminiModel:         getEnv("GEMINI_MODEL", defaultGeminiModel),
		GeminiBaseURL:       strings.TrimRight(getEnv("GEMINI_BASE_URL", defaultGeminiBaseURL), "/"),
		HumanTemplatesDir:   getEnv("HUMAN_TEMPLATES_DIR", "data/human_templates"),
		AITemplatesDir:      getEnv("AI_TEMPLATES_DIR", "data/ai_templates"),
		UsageFile:           getEnv("USAGE_FILE", "data/template_usage.json"),
		FrontendDir:         getEnv("FRONTEND_DIR", "frontend"),
		BusinessProfilePath: getEnv("BUSINESS_PROFILE_PATH", ""),
	}

	var err error
	if cfg.UseMockAI, err = parseBool("USE_MOCK_AI", "true"); err != nil {
		return nil, err
	}
	if cfg.AllowAdminDelete, err = parseBool("ALLOW_ADMIN_DELETE", "false"); err != nil {
		return nil, err
	}
	if cfg.AITimeout, err = parseDuration("AI_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	attempts, err := parseInt64("AI_MAX_ATTEMPTS", "1")
	if err != nil {
		return nil, err
	}
	if attempts < 1 {
		return nil, fmt.Errorf("config: AI_MAX_ATTEMPTS должен быть не меньше 1")
	}
	cfg.AIMaxAttempts = uint(attempts)

	// CORS allowed origins
	originsStr := getEnv("CORS_ALLOWED_ORIGINS", "")
	if originsStr == "" {
		if env == "production" {
			return nil, fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
		cfg.AllowedOrigins = []string{"*"}
	} else {
		for _, origin := range strings.Split(originsStr, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if cfg.MaxUploadSizeMB, err = parseInt64("MAX_UPLOAD_MB", "10"); err != nil {
		return nil, err
	}

	// Rate limiting для генерации предложений
	if cfg.RateLimitLimit, err = parseInt64("RATE_LIMIT_LIMIT", "10"); err != nil {
		return nil, err
	}
	if cfg.RateLimitPeriod, err = parseDuration("RATE_LIMIT_PERIOD", "1m"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv возвращает значение переменной окружения или дефолт.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	v := getEnv(key, fallback)
	dur, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить длительность %s=%q: %w", key, v, err)
	}
	return dur, nil
}

func parseInt64(key, fallback string) (int64, error) {
	v := getEnv(key, fallback)
	num, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: не удалось распарсить число %s=%q: %w", key, v, err)
	}
	return num, nil
}

func parseBool(key, fallback string) (bool, error) {
	v := getEnv(key, fallback)
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, fmt.Errorf("config: не удалось распарсить флаг %s=%q: %w", key, v, err)
	}
	return b, nil
}
