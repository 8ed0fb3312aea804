package service

import (
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/proposal-backend/internal/models"
	"github.com/ignatzorin/proposal-backend/internal/pkg/apperror"
	"github.com/ignatzorin/proposal-backend/internal/storage"
)

func newTemplateService(t *testing.T, opts ...storage.Option) (*TemplateService, *storage.TemplateStore) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewTemplateStore(filepath.Join(root, "human"), filepath.Join(root, "ai"), storage.NewMemoryLedger(), opts...)
	require.NoError(t, err)
	return NewTemplateService(store, nil), store
}

func TestTemplateService_SaveHuman(t *testing.T) {
	svc, _ := newTemplateService(t, storage.WithAdminCount(0))

	name, err := svc.SaveHuman(models.ProposalTemplate{Title: "  Proposta: Ótima Oferta! ", Body: "Corpo"})
	require.NoError(t, err)
	assert.Equal(t, "Proposta_Otima_Oferta.json", name)

	listing, err := svc.List()
	require.NoError(t, err)
	require.Len(t, listing.Human, 1)
	assert.Equal(t, "Proposta: Ótima Oferta!", listing.Human[0].Title)
}

func TestTemplateService_SaveHumanValidation(t *testing.T) {
	svc, _ := newTemplateService(t)

	_, err := svc.SaveHuman(models.ProposalTemplate{Title: "", Body: "Corpo"})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.SaveHuman(models.ProposalTemplate{Title: "T", Body: strings.Repeat("x", 10001)})
	assert.True(t, apperror.IsValidation(err))
}

func TestTemplateService_DeleteMapsErrors(t *testing.T) {
	svc, store := newTemplateService(t, storage.WithAdminCount(1))
	admin, err := store.Save(models.CategoryHuman, models.ProposalTemplate{Title: "A", Body: "a"})
	require.NoError(t, err)
	human, err := store.Save(models.CategoryHuman, models.ProposalTemplate{Title: "B", Body: "b"})
	require.NoError(t, err)

	err = svc.Delete("outro", human)
	assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
	assert.Equal(t, "Tipo de template inválido.", apperror.MessageOf(err))

	err = svc.Delete("human_adm", admin)
	assert.True(t, apperror.IsForbidden(err))
	err = svc.Delete("admin", admin)
	assert.True(t, apperror.IsForbidden(err))

	err = svc.Delete("ai", "nada.json")
	assert.True(t, apperror.IsNotFound(err))

	assert.NoError(t, svc.Delete("human", human))
}

func TestTemplateService_ReportAndAnalysis(t *testing.T) {
	svc, store := newTemplateService(t)
	name, err := store.Save(models.CategoryAI, models.ProposalTemplate{Title: "Gerado", Body: "corpo gerado"})
	require.NoError(t, err)

	require.NoError(t, svc.AppendAnalysis(name, "  boa taxa de resposta "))
	assert.True(t, apperror.IsValidation(svc.AppendAnalysis(name, " ")))

	report, err := svc.Report(name)
	require.NoError(t, err)
	assert.Equal(t, "corpo gerado", report.Content)
	assert.Equal(t, []string{"boa taxa de resposta"}, report.AIAnalysis)

	_, err = svc.Report("inexistente.json")
	assert.True(t, apperror.IsNotFound(err))
}

func TestTemplateService_Preview(t *testing.T) {
	svc, store := newTemplateService(t)
	name, err := store.Save(models.CategoryHuman, models.ProposalTemplate{Title: "P", Body: "Olá, [NOME_DO_PROFISSIONAL]! Notei: [PROBLEMAS]."})
	require.NoError(t, err)

	out, err := svc.Preview(name, testProposalContext())
	require.NoError(t, err)
	assert.Equal(t, "Olá, Ana! Notei: site amador; abandono no mobile.", out)

	_, err = svc.Preview("nada.json", testProposalContext())
	assert.True(t, apperror.IsNotFound(err))
}

func TestSeedService_Seed(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewTemplateStore(filepath.Join(root, "human"), filepath.Join(root, "ai"), nil)
	require.NoError(t, err)
	seed := NewSeedService(store)

	res, err := seed.Seed(false)
	require.NoError(t, err)
	require.Len(t, res.Created, 10)
	assert.Equal(t, "00_Otimizacao_de_Trafego.json", res.Created[0])
	assert.Equal(t, "09_Escassez_de_Portfolio.json", res.Created[9])

	listing, err := store.ListAll()
	require.NoError(t, err)
	assert.Len(t, listing.Admin, 10)
	assert.Empty(t, listing.Human)
	assert.Equal(t, "Auditoria Visual", listing.Admin[1].Title)

	again, err := seed.Seed(false)
	require.NoError(t, err)
	assert.True(t, again.Skipped)

	forced, err := seed.Seed(true)
	require.NoError(t, err)
	assert.Len(t, forced.Created, 10)

	listing, err = store.ListAll()
	require.NoError(t, err)
	assert.Len(t, listing.Admin, 10)
}
