package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/quota-data-transformer/internal/csvparser"
	"github.com/ginjaninja78/quota-data-transformer/internal/export"
	"github.com/ginjaninja78/quota-data-transformer/internal/labels"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "robust", cfg.HeaderDetection)
	assert.True(t, *cfg.HeaderFallback)
	assert.True(t, *cfg.StripTitlePrefix)
	assert.Equal(t, []string{"project:", "server:", "query:"}, cfg.BannerSignatures)
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, int64(32<<20), cfg.MaxUploadBytes())
	assert.Equal(t, export.FormatTSV, cfg.ExportFormat())
	assert.Equal(t, labels.English, cfg.DisplayLocale())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
header_detection: legacy
header_fallback: false
strip_title_prefix: false
banner_signatures: []
output_format: xlsx
locale: pt-BR
max_upload_mb: 4
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	opts := cfg.PipelineOptions(nil)
	assert.Equal(t, csvparser.StrategyLegacy, opts.HeaderStrategy)
	assert.True(t, opts.DisableFallback)
	assert.False(t, opts.StripTitlePrefix)
	assert.Empty(t, opts.BannerSignatures)
	assert.Equal(t, export.FormatXLSX, cfg.ExportFormat())
	assert.Equal(t, labels.Portuguese, cfg.DisplayLocale())
	assert.Equal(t, int64(4<<20), cfg.MaxUploadBytes())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QDT_HEADER_FALLBACK", "false")
	t.Setenv("QDT_BANNER_SIGNATURES", "project:, query: ,")
	t.Setenv("QDT_SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("QDT_MAX_UPLOAD_MB", "8")

	cfg, err := Load(writeConfig(t, "server_addr: \":7000\"\n"))
	require.NoError(t, err)
	assert.False(t, *cfg.HeaderFallback)
	assert.Equal(t, []string{"project:", "query:"}, cfg.BannerSignatures)
	assert.Equal(t, "127.0.0.1:9000", cfg.ServerAddr)
	assert.Equal(t, 8, cfg.MaxUploadMB)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"strategy":  "header_detection: fuzzy\n",
		"format":    "output_format: pdf\n",
		"locale":    "locale: fr-FR\n",
		"log level": "log_level: loud\n",
		"yaml":      "header_detection: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	t.Setenv("QDT_MAX_UPLOAD_MB", "lots")
	_, err := Load(writeConfig(t, ""))
	assert.Error(t, err)
}

func TestDefault_PipelineOptions(t *testing.T) {
	opts := Default().PipelineOptions(nil)
	assert.Equal(t, csvparser.StrategyRobust, opts.HeaderStrategy)
	assert.False(t, opts.DisableFallback)
	assert.True(t, opts.StripTitlePrefix)
	assert.Equal(t, csvparser.DefaultBannerSignatures, opts.BannerSignatures)
}
