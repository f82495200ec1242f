package converter

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/quota-data-transformer/internal/docparser"
	"github.com/ginjaninja78/quota-data-transformer/internal/xlsxparser"
)

// =============================================================================
// SOURCE KINDS
// =============================================================================

// SourceKind is the family of an input file.
type SourceKind string

const (
	SourceText        SourceKind = "text"
	SourceSpreadsheet SourceKind = "spreadsheet"
	SourceWord        SourceKind = "word"
	SourceHTML        SourceKind = "html"
)

var (
	// ErrUnsupportedFormat is returned for file extensions with no adapter.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrSheetSelectionRequired is matched by *SheetSelectionError.
	ErrSheetSelectionRequired = errors.New("workbook has several sheets, select one")
)

// SheetSelectionError lists the sheets of a multi-sheet workbook opened
// without a sheet choice.
type SheetSelectionError struct {
	Sheets []string
}

func (e *SheetSelectionError) Error() string {
	return fmt.Sprintf("%v: %s", ErrSheetSelectionRequired, strings.Join(e.Sheets, ", "))
}

// Is reports whether target is ErrSheetSelectionRequired.
func (e *SheetSelectionError) Is(target error) bool {
	return target == ErrSheetSelectionRequired
}

var extensionKinds = map[string]SourceKind{
	".csv":  SourceText,
	".tsv":  SourceText,
	".txt":  SourceText,
	".xlsx": SourceSpreadsheet,
	".xlsm": SourceSpreadsheet,
	".docx": SourceWord,
	".html": SourceHTML,
	".htm":  SourceHTML,
}

// SupportedExtensions lists the file extensions with an adapter, sorted.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionKinds))
	for ext := range extensionKinds {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// DetectKind maps a file name to its source kind by extension.
func DetectKind(name string) (SourceKind, error) {
	ext := strings.ToLower(filepath.Ext(name))
	kind, ok := extensionKinds[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return kind, nil
}

// =============================================================================
// LOADING
// =============================================================================

// LoadSource reads the file at path and converts it to pipeline input text.
// sheet selects the worksheet of a multi-sheet workbook and is ignored for
// other formats.
func LoadSource(path, sheet string) (string, error) {
	if _, err := DetectKind(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return LoadSourceBytes(filepath.Base(path), data, sheet)
}

// LoadSourceBytes converts file content to pipeline input text, choosing the
// adapter from name's extension.
func LoadSourceBytes(name string, data []byte, sheet string) (string, error) {
	kind, err := DetectKind(name)
	if err != nil {
		return "", err
	}

	switch kind {
	case SourceSpreadsheet:
		return loadSpreadsheet(data, sheet)
	case SourceWord:
		return docparser.ExtractDocxTable(data)
	case SourceHTML:
		text, err := DecodeText(data)
		if err != nil {
			return "", err
		}
		return docparser.ExtractHTMLTable(strings.NewReader(text))
	default:
		return DecodeText(data)
	}
}

// ListSheets returns the worksheet names of a workbook.
func ListSheets(data []byte) ([]string, error) {
	wb, err := xlsxparser.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return wb.SheetNames(), nil
}

func loadSpreadsheet(data []byte, sheet string) (string, error) {
	wb, err := xlsxparser.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer wb.Close()

	if sheet == "" {
		only, ok := wb.OnlySheet()
		if !ok {
			names := wb.SheetNames()
			if len(names) == 0 {
				return "", xlsxparser.ErrNoSheets
			}
			return "", &SheetSelectionError{Sheets: names}
		}
		sheet = only
	}
	return wb.SheetToText(sheet)
}

// =============================================================================
// TEXT DECODING
// =============================================================================

var (
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// DecodeText converts file bytes to a string. UTF-8 and BOM-marked UTF-16
// are decoded as such (the BOM is dropped); anything else is read as
// Windows-1252, the encoding of spreadsheet tools' legacy text exports.
func DecodeText(data []byte) (string, error) {
	var dec transform.Transformer
	if bytes.HasPrefix(data, utf16LEBOM) || bytes.HasPrefix(data, utf16BEBOM) || utf8.Valid(data) {
		dec = unicode.BOMOverride(unicode.UTF8.NewDecoder())
	} else {
		dec = charmap.Windows1252.NewDecoder()
	}

	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", fmt.Errorf("failed to decode text: %w", err)
	}
	return string(out), nil
}
