package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/proposal-backend/internal/ai"
	"github.com/ignatzorin/proposal-backend/internal/config"
	"github.com/ignatzorin/proposal-backend/internal/http/handlers"
	"github.com/ignatzorin/proposal-backend/internal/metrics"
	"github.com/ignatzorin/proposal-backend/internal/service"
	"github.com/ignatzorin/proposal-backend/internal/storage"
)

func setupTestRouter(t *testing.T, rateLimit int64) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	frontendDir := filepath.Join(root, "frontend")
	require.NoError(t, os.MkdirAll(filepath.Join(frontendDir, "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(frontendDir, "index.html"), []byte("<html>proposer</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(frontendDir, "js", "app.js"), []byte("console.log(1)"), 0o644))

	cfg := &config.Config{
		Env:             "development",
		AllowedOrigins:  []string{"*"},
		RateLimitLimit:  rateLimit,
		RateLimitPeriod: time.Minute,
		MaxUploadSizeMB: 10,
		FrontendDir:     frontendDir,
	}

	humanDir := filepath.Join(root, "human")
	aiDir := filepath.Join(root, "ai")
	store, err := storage.NewTemplateStore(humanDir, aiDir, storage.NewMemoryLedger())
	require.NoError(t, err)

	m := metrics.New()
	templates := service.NewTemplateService(store, m)
	proposals := service.NewProposalService(store, ai.NewMockClient(), service.WithMetrics(m))

	r := SetupRouter(
		cfg,
		handlers.NewTemplateHandler(templates),
		handlers.NewReportHandler(templates),
		handlers.NewProposalHandler(proposals, cfg.MaxUploadSizeMB),
		handlers.NewHealthHandler(map[string]string{"human_templates": humanDir, "ai_templates": aiDir}),
		handlers.NewSeedHandler(service.NewSeedService(store)),
		m,
	)
	return r, root
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	r, _ := setupTestRouter(t, 10)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "proposer_proposals_generated_total")
}

func TestRouter_SeedThenGenerate(t *testing.T) {
	r, _ := setupTestRouter(t, 10)

	w := serve(r, httptest.NewRequest(http.MethodPost, "/api/seed", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/templates", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Auditoria Visual")

	form := url.Values{
		"nome":     {"Ana"},
		"empresa":  {"Agência Y"},
		"nicho":    {"Serviços Premium"},
		"onde":     {"anúncio"},
		"problems": {`["site amador"]`},
	}
	req := httptest.NewRequest(http.MethodPost, "/generate-proposal", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = serve(r, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"template_name":"Proposta_Hibrida_Mock.json"`)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/templates/report/Proposta_Hibrida_Mock.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<strong>Contagem de Uso:</strong> 1")
}

func TestRouter_GenerateRateLimited(t *testing.T) {
	r, _ := setupTestRouter(t, 1)

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/generate-proposal", strings.NewReader("nome=Ana"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return serve(r, req).Code
	}

	assert.Equal(t, http.StatusBadRequest, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestRouter_Frontend(t *testing.T) {
	r, _ := setupTestRouter(t, 10)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "proposer")

	w = serve(r, httptest.NewRequest(http.MethodGet, "/js/app.js", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/nada.css", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/../../etc/passwd", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	r, _ := setupTestRouter(t, 10)

	req := httptest.NewRequest(http.MethodOptions, "/generate-proposal", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := serve(r, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
