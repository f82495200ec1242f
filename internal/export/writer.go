package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/ginjaninja78/quota-data-transformer/internal/labels"
)

// Format is an export serialization.
type Format string

const (
	FormatTSV  Format = "tsv"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
	FormatXLSX Format = "xlsx"
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
)

// ParseFormat converts a flag or query value into a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")))
	switch f {
	case FormatTSV, FormatCSV, FormatHTML, FormatXLSX, FormatXML, FormatJSON:
		return f, nil
	case "":
		return FormatTSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// Extension returns the file extension, dot included.
func (f Format) Extension() string {
	return "." + string(f)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatXML:
		return "application/xml; charset=utf-8"
	case FormatJSON:
		return "application/json; charset=utf-8"
	default:
		return "text/tab-separated-values; charset=utf-8"
	}
}

// Write serializes tables in format. Text formats separate several tables
// with a blank line; XLSX writes one sheet per table.
func Write(w io.Writer, format Format, tables []Table, locale labels.Locale) error {
	rendered := RenderAll(tables, locale)

	switch format {
	case FormatTSV:
		return writeDelimited(w, rendered, writeTSV)
	case FormatCSV:
		return writeDelimited(w, rendered, writeCSV)
	case FormatHTML:
		return writeDelimited(w, rendered, writeHTML)
	case FormatXLSX:
		return writeXLSX(w, rendered)
	case FormatXML:
		return writeXML(w, tables, locale)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rendered); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func writeDelimited(w io.Writer, tables []Rendered, fn func(io.Writer, Rendered) error) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := fn(w, t); err != nil {
			return err
		}
	}
	return nil
}

// writeTSV writes the clipboard layout: header line, then one line per row.
func writeTSV(w io.Writer, t Rendered) error {
	var sb strings.Builder
	sb.WriteString(strings.Join(t.Headers, "\t"))
	for _, row := range t.Rows {
		sb.WriteByte('\n')
		sb.WriteString(strings.Join(row, "\t"))
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeCSV(w io.Writer, t Rendered) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

func writeHTML(w io.Writer, t Rendered) error {
	var sb strings.Builder
	sb.WriteString("<table>\n  <thead>\n    <tr>")
	for _, h := range t.Headers {
		sb.WriteString("<th>" + html.EscapeString(h) + "</th>")
	}
	sb.WriteString("</tr>\n  </thead>\n  <tbody>\n")
	for _, row := range t.Rows {
		sb.WriteString("    <tr>")
		for _, cell := range row {
			sb.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("  </tbody>\n</table>\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

// FileName builds the export file name for a table title, e.g.
// "Quota_Increase_Quota_Data_en-US.xlsx". DefaultTitle yields the bare
// locale suffix, "Quota_Data_en-US.xlsx".
func FileName(title string, locale labels.Locale, format Format) string {
	if title == DefaultTitle {
		return labels.FileSuffix(locale) + format.Extension()
	}
	name := strings.Join(strings.Fields(title), "_")
	if name == "" {
		name = "Unknown"
	}
	return name + "_" + labels.FileSuffix(locale) + format.Extension()
}
