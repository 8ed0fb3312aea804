package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/proposal-backend/internal/config"
	"github.com/ignatzorin/proposal-backend/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	return &config.Config{
		Env:               "development",
		UseMockAI:         true,
		HumanTemplatesDir: filepath.Join(root, "human"),
		AITemplatesDir:    filepath.Join(root, "ai"),
		UsageFile:         filepath.Join(root, "usage", "template_usage.json"),
	}
}

func TestNew_WiresFileLedger(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(cfg)
	require.NoError(t, err)

	_, err = a.Seeds.Seed(false)
	require.NoError(t, err)

	out, err := a.Proposals.Generate(context.Background(), models.ProposalContext{
		ClientName: "Ana", Company: "Y", Niche: "Z", FoundAt: "W",
	}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, out.TemplateName)

	data, err := os.ReadFile(cfg.UsageFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), out.TemplateName)

	reopened, err := New(cfg)
	require.NoError(t, err)
	report, err := reopened.Templates.Report(out.TemplateName)
	require.NoError(t, err)
	assert.Equal(t, 1, report.UsageCount)
}

func TestNew_BusinessProfile(t *testing.T) {
	cfg := testConfig(t)
	cfg.BusinessProfilePath = filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(cfg.BusinessProfilePath, []byte("name: [quebrado"), 0o644))

	_, err := New(cfg)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(cfg.BusinessProfilePath, []byte("name: Estúdio Z\n"), 0o644))
	_, err = New(cfg)
	assert.NoError(t, err)
}

func TestTemplateDirs(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(cfg)
	require.NoError(t, err)

	assert.Equal(t, cfg.HumanTemplatesDir, a.TemplateDirs()["human_templates"])
	assert.Equal(t, cfg.AITemplatesDir, a.TemplateDirs()["ai_templates"])
}
