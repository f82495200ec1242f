package converter

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/quota-data-transformer/internal/docparser"
)

func workbookBytes(t *testing.T, sheets ...string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		require.NoError(t, f.SetSheetRow(name, "A1", &[]any{"ID", "Subscription ID", "Region", "UTC Ticket"}))
		require.NoError(t, f.SetSheetRow(name, "A2", &[]any{"Q-" + name, "Sub1", "East US", "Quota Increase"}))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestSupportedExtensions(t *testing.T) {
	assert.Equal(t, []string{".csv", ".docx", ".htm", ".html", ".tsv", ".txt", ".xlsm", ".xlsx"}, SupportedExtensions())
}

func TestDetectKind(t *testing.T) {
	kind, err := DetectKind("export.TSV")
	require.NoError(t, err)
	assert.Equal(t, SourceText, kind)

	kind, err = DetectKind("/tmp/q.xlsx")
	require.NoError(t, err)
	assert.Equal(t, SourceSpreadsheet, kind)

	_, err = DetectKind("report.pdf")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestDecodeText(t *testing.T) {
	got, err := DecodeText([]byte("\xEF\xBB\xBFID,Região"))
	require.NoError(t, err)
	assert.Equal(t, "ID,Região", got)

	// UTF-16LE with BOM: "ID"
	got, err = DecodeText([]byte{0xFF, 0xFE, 'I', 0, 'D', 0})
	require.NoError(t, err)
	assert.Equal(t, "ID", got)

	// Windows-1252: "Região" with 0xE3 for ã
	got, err = DecodeText([]byte("Regi\xE3o"))
	require.NoError(t, err)
	assert.Equal(t, "Região", got)
}

func TestLoadSourceBytes_SingleSheetWorkbook(t *testing.T) {
	text, err := LoadSourceBytes("quotas.xlsx", workbookBytes(t, "Data"), "")
	require.NoError(t, err)
	assert.Equal(t, "ID\tSubscription ID\tRegion\tUTC Ticket\nQ-Data\tSub1\tEast US\tQuota Increase", text)

	res, err := Transform(text, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "Q-Data", res.Records[0].OriginalID)
}

func TestLoadSourceBytes_MultiSheetWorkbook(t *testing.T) {
	data := workbookBytes(t, "North", "South")

	_, err := LoadSourceBytes("quotas.xlsx", data, "")
	require.True(t, errors.Is(err, ErrSheetSelectionRequired))
	var sel *SheetSelectionError
	require.True(t, errors.As(err, &sel))
	assert.Equal(t, []string{"North", "South"}, sel.Sheets)

	text, err := LoadSourceBytes("quotas.xlsx", data, "South")
	require.NoError(t, err)
	assert.Contains(t, text, "Q-South")

	sheets, err := ListSheets(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "South"}, sheets)
}

func TestLoadSourceBytes_HTML(t *testing.T) {
	html := []byte(`<table><tr><th>ID</th><th>Subscription ID</th><th>Region</th></tr><tr><td>Q1</td><td>S1</td><td>East US</td></tr></table>`)
	text, err := LoadSourceBytes("page.html", html, "")
	require.NoError(t, err)
	assert.Equal(t, "ID\tSubscription ID\tRegion\nQ1\tS1\tEast US", text)

	_, err = LoadSourceBytes("page.htm", []byte("<p>none</p>"), "")
	assert.True(t, errors.Is(err, docparser.ErrNoTable))
}

func TestLoadSourceBytes_Docx(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body><w:tbl>` +
		`<w:tr><w:tc><w:p><w:r><w:t>ID</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Region</w:t></w:r></w:p></w:tc></w:tr>` +
		`<w:tr><w:tc><w:p><w:r><w:t>Q1</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>East US</w:t></w:r></w:p></w:tc></w:tr>` +
		`</w:tbl></w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	text, err := LoadSourceBytes("tickets.docx", buf.Bytes(), "")
	require.NoError(t, err)
	assert.Equal(t, "ID\tRegion\nQ1\tEast US", text)
}

func TestLoadSource_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(path, []byte("ID,Subscription ID,Region\r\nQ1,S1,East US\r\n"), 0o644))

	text, err := LoadSource(path, "")
	require.NoError(t, err)
	assert.Equal(t, "ID,Subscription ID,Region\r\nQ1,S1,East US\r\n", text)

	_, err = LoadSource(filepath.Join(dir, "export.xls"), "")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = LoadSource(filepath.Join(dir, "missing.csv"), "")
	assert.Error(t, err)
}
