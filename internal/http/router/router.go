package router

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/proposal-backend/internal/config"
	"github.com/ignatzorin/proposal-backend/internal/dto"
	"github.com/ignatzorin/proposal-backend/internal/http/handlers"
	"github.com/ignatzorin/proposal-backend/internal/http/middleware"
	"github.com/ignatzorin/proposal-backend/internal/metrics"
)

const generatePrefix = "generate-proposal"

func SetupRouter(
	cfg *config.Config,
	templateHandler *handlers.TemplateHandler,
	reportHandler *handlers.ReportHandler,
	proposalHandler *handlers.ProposalHandler,
	healthHandler *handlers.HealthHandler,
	seedHandler *handlers.SeedHandler,
	m *metrics.Metrics,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20
	r.SetHTMLTemplate(handlers.ReportTemplates())

	r.GET("/health", healthHandler.Health)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	templates := r.Group("/templates")
	{
		templates.GET("", templateHandler.List)
		templates.POST("/human", templateHandler.CreateHuman)
		templates.DELETE("/:category/:name", middleware.TemplateFilename("name"), templateHandler.Delete)
		templates.GET("/report/:name", middleware.TemplateFilename("name"), reportHandler.Page)
		templates.POST("/analysis/:name", middleware.TemplateFilename("name"), templateHandler.AppendAnalysis)
		templates.POST("/preview/:name", middleware.TemplateFilename("name"), templateHandler.Preview)
	}

	generateRateLimit := middleware.RateLimitMiddleware(generatePrefix, cfg.RateLimitLimit, cfg.RateLimitPeriod)
	r.POST("/generate-proposal", generateRateLimit, proposalHandler.Generate)

	api := r.Group("/api")
	api.GET("/templates/report/:name", middleware.TemplateFilename("name"), reportHandler.JSON)

	if seedHandler != nil && !cfg.IsProduction() {
		api.POST("/seed", seedHandler.Seed)
	}

	r.NoRoute(frontend(cfg.FrontendDir))

	return r
}

// frontend отдаёт статические файлы интерфейса. "/" отдаёт index.html.
func frontend(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Rota não encontrada."})
			return
		}

		rel := strings.TrimPrefix(path.Clean("/"+c.Request.URL.Path), "/")
		if rel == "" {
			rel = "index.html"
		}

		file := filepath.Join(dir, filepath.FromSlash(rel))
		info, err := os.Stat(file)
		if err == nil && info.IsDir() {
			file = filepath.Join(file, "index.html")
			info, err = os.Stat(file)
		}
		if err != nil || info.IsDir() {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Rota não encontrada."})
			return
		}
		c.File(file)
	}
}
