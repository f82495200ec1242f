package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const tabExport = "RDQuota\tSubscription ID\tRegion\tUTC Ticket\tReason\tSKU\tEvent ID\n" +
	"Q1\tSub1\tEast US (EUS)\tQuota Increase\tVerification Successful\tStandard_D4 (XIO)\t64\n" +
	"Q2\tSub2\tWest US\tAZ Enablement/Whitelisting\tAbandoned\tStandard_E8\t12\n"

// run executes the CLI with a config path that does not exist, so only the
// built-in defaults apply.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yaml")))
	err := root.Execute()
	return out.String(), err
}

func TestTransform_Stdin(t *testing.T) {
	out, err := run(t, tabExport, "transform")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Subscription ID\tRequest Type\tVM Type\tRegion\tZone\tCores\tStatus", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Sub1\tQuota Increase\tStandard_D4\tEast US\t"))
}

func TestTransform_FileByIDInPortuguese(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.tsv")
	require.NoError(t, os.WriteFile(path, []byte(tabExport), 0o644))

	out, err := run(t, "", "transform", path, "--view", "id", "--locale", "pt-BR", "--format", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "RDQuota,ID da Assinatura,"))
	assert.Contains(t, out, "Q2,Sub2,Habilitação Zonal,")
}

func TestTransform_CategoryFilesToDirectory(t *testing.T) {
	outDir := t.TempDir()
	out, err := run(t, tabExport, "transform", "-", "--view", "category", "--out", outDir)
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	printed := strings.Fields(out)
	require.Len(t, printed, 2)
	assert.Contains(t, filepath.Base(printed[0]), "Quota_Increase_")
	assert.Contains(t, filepath.Base(printed[1]), "Zonal_Enablement_")
}

func TestTransform_WorkbookToSingleFile(t *testing.T) {
	outDir := t.TempDir()
	out, err := run(t, tabExport, "transform", "--view", "category", "--format", "xlsx", "--out", outDir)
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Quota Increase", "Zonal Enablement"}, f.GetSheetList())
}

func TestTransform_Directory(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "good.tsv"), []byte(tabExport), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "bad.csv"), []byte("Name,Region\nfoo,East US\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "notes.md"), []byte("ignored"), 0o644))

	out, err := run(t, "", "transform", inDir, "--out", outDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 file(s) failed")
	assert.Contains(t, out, "✗ bad.csv")
	assert.Contains(t, out, "✓ good.tsv")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTransform_Errors(t *testing.T) {
	_, err := run(t, "ID\tSubscription ID\tRegion\n", "transform")
	assert.ErrorContains(t, err, "at least one data row")

	_, err = run(t, tabExport, "transform", "--format", "pdf")
	assert.ErrorContains(t, err, "unsupported export format")

	_, err = run(t, tabExport, "transform", "--view", "pivot")
	assert.Error(t, err)

	_, err = run(t, "", "transform", filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestTransform_LegacyHeaders(t *testing.T) {
	input := "Open quota requests\n" + tabExport

	_, err := run(t, input, "transform")
	require.NoError(t, err)

	_, err = run(t, input, "transform", "--legacy-headers")
	assert.Error(t, err)
}

func TestSheets(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Open"))
	_, err := f.NewSheet("Closed")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "tickets.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	out, err := run(t, "", "sheets", path)
	require.NoError(t, err)
	assert.Equal(t, "Open\nClosed\n", out)

	_, err = run(t, "", "sheets", "export.csv")
	assert.ErrorContains(t, err, "not a workbook")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Quota Data Transformer")
	assert.Contains(t, out, "Version:    "+Version)
}
