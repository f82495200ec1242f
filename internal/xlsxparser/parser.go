// =============================================================================
// Quota Data Transformer - XLSX Source Adapter
// =============================================================================
//
// This module reads spreadsheet exports and hands one sheet to the pipeline as
// tab-separated text.
//
// WORKBOOK HANDLING:
//   - A workbook with a single sheet converts directly.
//   - A workbook with several sheets needs the caller to choose one; the
//     sheet list is available through SheetNames.
//
// Cell text containing tabs or line breaks is flattened to single spaces so
// every spreadsheet row stays one line with one cell per column.
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrNoSheets is returned for a workbook without worksheets.
	ErrNoSheets = errors.New("workbook contains no sheets")

	// ErrSheetNotFound is returned when the requested sheet does not exist.
	ErrSheetNotFound = errors.New("sheet not found in workbook")
)

// =============================================================================
// WORKBOOK
// =============================================================================

// Workbook is an opened spreadsheet.
type Workbook struct {
	file *excelize.File
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &Workbook{file: f}, nil
}

// OpenReader opens a workbook from r.
func OpenReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	return &Workbook{file: f}, nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// SheetNames lists the worksheets in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// SheetToText returns the named sheet as tab-separated lines. Trailing empty
// rows are dropped by excelize; interior empty rows become empty lines.
func (w *Workbook) SheetToText(sheet string) (string, error) {
	names := w.SheetNames()
	if len(names) == 0 {
		return "", ErrNoSheets
	}
	if !contains(names, sheet) {
		return "", fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
	}

	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return "", fmt.Errorf("failed to read rows from sheet %q: %w", sheet, err)
	}

	var sb strings.Builder
	for i, row := range rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				sb.WriteByte('\t')
			}
			sb.WriteString(flattenCell(cell))
		}
	}
	return sb.String(), nil
}

// OnlySheet returns the name of the single sheet, or false when the workbook
// has zero or several sheets.
func (w *Workbook) OnlySheet() (string, bool) {
	names := w.SheetNames()
	if len(names) != 1 {
		return "", false
	}
	return names[0], true
}

// =============================================================================
// HELPERS
// =============================================================================

var cellFlattener = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ")

func flattenCell(s string) string {
	return cellFlattener.Replace(s)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
