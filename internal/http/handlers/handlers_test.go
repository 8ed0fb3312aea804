package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/proposal-backend/internal/ai"
	"github.com/ignatzorin/proposal-backend/internal/http/middleware"
	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/service"
	"github.com/ignatzorin/proposal-backend/internal/storage"
)

type testServer struct {
	engine *gin.Engine
	store  *storage.TemplateStore
	mockAI *ai.MockClient
	root   string
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	store, err := storage.NewTemplateStore(filepath.Join(root, "human"), filepath.Join(root, "ai"), storage.NewMemoryLedger(), storage.WithAdminCount(1))
	require.NoError(t, err)

	mockAI := ai.NewMockClient()
	templates := service.NewTemplateService(store, nil)
	proposals := service.NewProposalService(store, mockAI)

	templateHandler := NewTemplateHandler(templates)
	reportHandler := NewReportHandler(templates)
	proposalHandler := NewProposalHandler(proposals, 1)
	seedHandler := NewSeedHandler(service.NewSeedService(store))

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.SetHTMLTemplate(ReportTemplates())
	r.GET("/templates", templateHandler.List)
	r.POST("/templates/human", templateHandler.CreateHuman)
	r.DELETE("/templates/:category/:name", middleware.TemplateFilename("name"), templateHandler.Delete)
	r.GET("/templates/report/:name", reportHandler.Page)
	r.GET("/api/templates/report/:name", reportHandler.JSON)
	r.POST("/templates/analysis/:name", templateHandler.AppendAnalysis)
	r.POST("/templates/preview/:name", templateHandler.Preview)
	r.POST("/generate-proposal", proposalHandler.Generate)
	r.POST("/api/seed", seedHandler.Seed)

	return testServer{engine: r, store: store, mockAI: mockAI, root: root}
}

func (s testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestTemplateHandler_CreateAndList(t *testing.T) {
	s := newTestServer(t)

	w := s.do(jsonRequest(t, http.MethodPost, "/templates/human", map[string]string{"title": "Admin", "body": "a"}))
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(jsonRequest(t, http.MethodPost, "/templates/human", map[string]string{"title": "Proposta: Ótima Oferta!", "body": "corpo"}))
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Template criado com sucesso", body["message"])
	assert.Equal(t, "Proposta_Otima_Oferta.json", body["template_name"])

	w = s.do(httptest.NewRequest(http.MethodGet, "/templates", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var listing models.TemplateListing
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listing))
	require.Len(t, listing.Admin, 1)
	require.Len(t, listing.Human, 1)
	assert.Equal(t, "Admin.json", listing.Admin[0].Filename)
	assert.Equal(t, "Proposta: Ótima Oferta!", listing.Human[0].Title)
	assert.Empty(t, listing.AI)
}

func TestTemplateHandler_CreateLegacyFormat(t *testing.T) {
	s := newTestServer(t)

	w := s.do(jsonRequest(t, http.MethodPost, "/templates/human", map[string]string{"name": "Antigo", "content": "texto"}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Antigo.json", decode(t, w)["template_name"])
}

func TestTemplateHandler_CreateValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(jsonRequest(t, http.MethodPost, "/templates/human", map[string]string{"title": "Sem corpo"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode(t, w)["error"])

	req := httptest.NewRequest(http.MethodPost, "/templates/human", strings.NewReader("{quebrado"))
	req.Header.Set("Content-Type", "application/json")
	assert.Equal(t, http.StatusBadRequest, s.do(req).Code)
}

func TestTemplateHandler_Delete(t *testing.T) {
	s := newTestServer(t)
	admin, err := s.store.Save(models.CategoryHuman, models.ProposalTemplate{Title: "Admin", Body: "a"})
	require.NoError(t, err)
	human, err := s.store.Save(models.CategoryHuman, models.ProposalTemplate{Title: "Humano", Body: "b"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		target   string
		wantCode int
		wantMsg  string
	}{
		{"invalid category", "/templates/outro/" + human, http.StatusBadRequest, "Tipo de template inválido."},
		{"admin protected", "/templates/human_adm/" + admin, http.StatusForbidden, "Templates do administrador não podem ser deletados."},
		{"missing", "/templates/ai/nada.json", http.StatusNotFound, "Template não encontrado."},
		{"traversal", "/templates/human/..%5Csecret.json", http.StatusNotFound, "Template não encontrado."},
		{"deleted", "/templates/human/" + human, http.StatusOK, "Template '" + human + "' deletado."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(httptest.NewRequest(http.MethodDelete, tt.target, nil))
			assert.Equal(t, tt.wantCode, w.Code)
			body := decode(t, w)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantMsg, body["message"])
			} else {
				assert.Equal(t, tt.wantMsg, body["error"])
			}
		})
	}
}

func TestReportHandler_PageAndJSON(t *testing.T) {
	s := newTestServer(t)
	name, err := s.store.Save(models.CategoryAI, models.ProposalTemplate{Title: "Gerado", Body: "corpo <b>gerado</b>"})
	require.NoError(t, err)
	require.NoError(t, s.store.RecordUsage(name))

	w := s.do(httptest.NewRequest(http.MethodGet, "/templates/report/"+name, nil))
	require.Equal(t, http.StatusOK, w.Code)
	page := w.Body.String()
	assert.Contains(t, page, "Relatório do Template")
	assert.Contains(t, page, "<strong>Contagem de Uso:</strong> 1")
	assert.Contains(t, page, "corpo &lt;b&gt;gerado&lt;/b&gt;")
	assert.Contains(t, page, "Nenhuma análise.")

	w = s.do(jsonRequest(t, http.MethodPost, "/templates/analysis/"+name, map[string]string{"text": "converte bem"}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Análise adicionada.", decode(t, w)["message"])

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/templates/report/"+name, nil))
	require.Equal(t, http.StatusOK, w.Code)
	var report models.TemplateReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 1, report.UsageCount)
	assert.Equal(t, []string{"converte bem"}, report.AIAnalysis)
	assert.Equal(t, "corpo <b>gerado</b>", report.Content)
}

func TestReportHandler_NotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest(http.MethodGet, "/templates/report/nada.json", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Template não encontrado</h1>")

	w = s.do(httptest.NewRequest(http.MethodGet, "/api/templates/report/nada.json", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTemplateHandler_AnalysisRequiresText(t *testing.T) {
	s := newTestServer(t)
	name, err := s.store.Save(models.CategoryAI, models.ProposalTemplate{Title: "G", Body: "g"})
	require.NoError(t, err)

	w := s.do(jsonRequest(t, http.MethodPost, "/templates/analysis/"+name, map[string]string{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTemplateHandler_Preview(t *testing.T) {
	s := newTestServer(t)
	name, err := s.store.Save(models.CategoryHuman, models.ProposalTemplate{Title: "P", Body: "Olá, [NOME_DO_PROFISSIONAL]!"})
	require.NoError(t, err)

	w := s.do(jsonRequest(t, http.MethodPost, "/templates/preview/"+name, map[string]interface{}{"nome": "Ana", "problems": []string{}}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Olá, Ana!", decode(t, w)["preview"])

	w = s.do(jsonRequest(t, http.MethodPost, "/templates/preview/nada.json", map[string]string{"nome": "Ana"}))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func proposalForm() url.Values {
	return url.Values{
		"nome":     {"Ana"},
		"empresa":  {"Agência Y"},
		"nicho":    {"Serviços Premium"},
		"onde":     {"anúncio"},
		"problems": {`["site amador","abandono no mobile"]`},
	}
}

func formRequest(form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/generate-proposal", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestProposalHandler_Generate(t *testing.T) {
	s := newTestServer(t)
	for _, title := range []string{"Auditoria Visual", "High Ticket", "ROI"} {
		_, err := s.store.Save(models.CategoryHuman, models.ProposalTemplate{Title: title, Body: "Corpo " + title})
		require.NoError(t, err)
	}

	w := s.do(formRequest(proposalForm()))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out models.GeneratedProposal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Contains(t, out.Proposal, "[NOME_DO_PROFISSIONAL]")
	assert.Contains(t, out.Report, "[Relatório Mock]")
	assert.Equal(t, "Proposta_Hibrida_Mock.json", out.TemplateName)
	assert.NotEmpty(t, out.Inspirations)

	prompts := s.mockAI.Prompts()
	require.Len(t, prompts, 2)
	assert.Contains(t, prompts[0], "site amador")
}

func TestProposalHandler_GenerateEmptyPool(t *testing.T) {
	s := newTestServer(t)

	w := s.do(formRequest(proposalForm()))
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, service.NoTemplatesProposal, body["proposal"])
	assert.Equal(t, service.NoTemplatesReport, body["report"])
	assert.Zero(t, s.mockAI.Calls())
}

func TestProposalHandler_GenerateWithMedia(t *testing.T) {
	s := newTestServer(t)
	_, err := s.store.Save(models.CategoryHuman, models.ProposalTemplate{Title: "A", Body: "a"})
	require.NoError(t, err)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, values := range proposalForm() {
		require.NoError(t, mw.WriteField(key, values[0]))
	}
	require.NoError(t, mw.WriteField("media", "aW1hZ2Vt"))
	part, err := mw.CreateFormFile("media", "print.png")
	require.NoError(t, err)
	_, err = part.Write([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a})
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/generate-proposal", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := s.do(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Contains(t, decode(t, w)["proposal"], "(com análise de 2 arquivos de mídia)")
}

func TestProposalHandler_GenerateBadInput(t *testing.T) {
	s := newTestServer(t)

	invalidProblems := proposalForm()
	invalidProblems.Set("problems", "não é json")
	w := s.do(formRequest(invalidProblems))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	missingName := proposalForm()
	missingName.Del("nome")
	w = s.do(formRequest(missingName))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], "nome")

	assert.Zero(t, s.mockAI.Calls())
}

func TestProposalHandler_GenerateTooLarge(t *testing.T) {
	s := newTestServer(t)

	form := proposalForm()
	form.Set("ponto", strings.Repeat("x", 2<<20))
	w := s.do(formRequest(form))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestParseProblems(t *testing.T) {
	problems, err := parseProblems("")
	require.NoError(t, err)
	assert.Empty(t, problems)

	problems, err = parseProblems(`[" lento ", "", "caro"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"lento", "caro"}, problems)

	_, err = parseProblems(`{"a":1}`)
	assert.Error(t, err)
}

func TestSeedHandler_Seed(t *testing.T) {
	s := newTestServer(t)

	w := s.do(httptest.NewRequest(http.MethodPost, "/api/seed", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["skipped"])
	assert.Len(t, body["created"], 10)

	w = s.do(httptest.NewRequest(http.MethodPost, "/api/seed", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["skipped"])

	w = s.do(httptest.NewRequest(http.MethodPost, "/api/seed?force=true", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["skipped"])
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	r := gin.New()
	r.GET("/ok", NewHealthHandler(map[string]string{"templates": dir}).Health)
	r.GET("/broken", NewHealthHandler(map[string]string{"templates": filepath.Join(dir, "nada")}).Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/broken", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
