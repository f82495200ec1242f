package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("{category}_{timestamp}_{uuid}", map[string]string{"category": "Quota Increase"}, ".xlsx")
	pattern := regexp.MustCompile(`^Quota_Increase_\d{8}_\d{6}_[0-9a-f-]{36}\.xlsx$`)
	assert.Regexp(t, pattern, name)

	assert.Equal(t, "report.csv", GenerateOutputFileName("report.csv", nil, ".csv"))
	assert.Equal(t, "a_b.tsv", GenerateOutputFileName("{x}", map[string]string{"x": "a / b"}, ".tsv"))
}

func TestSanitizeFileComponent(t *testing.T) {
	assert.Equal(t, "Region_Enablement_&_Quota_Increase", SanitizeFileComponent("Region Enablement & Quota Increase"))
	assert.Equal(t, "ab", SanitizeFileComponent(`a:*?"<>|b`))
}

func TestDiscoverInputFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.XLSX", "notes.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755))

	files, err := DiscoverInputFiles(dir, []string{".csv", ".xlsx"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.XLSX"), filepath.Join(dir, "b.csv")}, files)

	_, err = DiscoverInputFiles(filepath.Join(dir, "missing"), nil)
	assert.Error(t, err)
}

func TestFileManagerWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	fm := NewFileManager(dir, "{category}_export")

	path, err := fm.Write(map[string]string{"category": "Zonal Enablement"}, ".tsv", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Zonal_Enablement_export.tsv"), path)
	assert.FileExists(t, path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}
