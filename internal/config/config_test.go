package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Projection.Horizon)
	assert.Equal(t, 0.03, cfg.Projection.EstimateRate)
	assert.Equal(t, 0.05, cfg.Projection.PlaceholderRate)
	assert.Equal(t, 1000.0, cfg.Projection.PlaceholderBase)
	assert.Equal(t, "compound", cfg.Projection.Growth)
	assert.Equal(t, "PLN", cfg.Report.Currency)
	assert.Equal(t, "00-001", cfg.Report.DefaultPostalCode)
	assert.Equal(t, 10*time.Second, cfg.Predict.Timeout)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `projection:
  horizon: 10
  growth: additive
report:
  currency: EUR
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("PORT", "9090")
	t.Setenv("PENSION_PREDICT_URL", "http://predict.local/api/predict")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Projection.Horizon)
	assert.Equal(t, "additive", cfg.Projection.Growth)
	assert.Equal(t, "EUR", cfg.Report.Currency)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://predict.local/api/predict", cfg.Predict.URL)
}

func TestLoad_RejectsUnknownGrowth(t *testing.T) {
	t.Setenv("PENSION_PROJECTION_GROWTH", "linear")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
