package export

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	maxSheetNameLen = 31
	maxColumnWidth  = 50
)

var sheetNameReplacer = strings.NewReplacer(
	"[", "", "]", "", ":", "", "*", "", "?", "", "/", "-", "\\", "-",
)

// writeXLSX writes one worksheet per table. A single table lands on a sheet
// named DefaultTitle.
func writeXLSX(w io.Writer, tables []Rendered) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	used := make(map[string]bool)
	for i, t := range tables {
		name := DefaultTitle
		if len(tables) > 1 {
			name = uniqueSheetName(t.Title, used)
		}
		used[name] = true

		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return fmt.Errorf("failed to name sheet %q: %w", name, err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to add sheet %q: %w", name, err)
		}

		if err := fillSheet(f, name, t, headerStyle); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func fillSheet(f *excelize.File, sheet string, t Rendered, headerStyle int) error {
	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for r, row := range t.Rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		addr, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	if len(t.Headers) == 0 {
		return nil
	}

	last, err := excelize.CoordinatesToCellName(len(t.Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	for i, width := range columnWidths(t) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(width)); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", col, err)
		}
	}
	return nil
}

// columnWidths is the longest cell of each column plus two, capped at
// maxColumnWidth.
func columnWidths(t Rendered) []int {
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.Rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], utf8.RuneCountInString(row[i]))
		}
	}
	for i := range widths {
		widths[i] = min(widths[i]+2, maxColumnWidth)
	}
	return widths
}

func uniqueSheetName(title string, used map[string]bool) string {
	base := strings.TrimSpace(sheetNameReplacer.Replace(title))
	if base == "" {
		base = "Sheet"
	}
	base = truncateRunes(base, maxSheetNameLen)

	name := base
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncateRunes(base, maxSheetNameLen-len(suffix)) + suffix
	}
	return name
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
