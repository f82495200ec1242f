// =============================================================================
// Quota Data Transformer - Document Table Adapter
// =============================================================================
//
// This module extracts the first table of an HTML page or a Word (.docx)
// document and renders it as tab-separated lines: one line per table row,
// header cells and body cells treated alike.
//
// A document without any table fails with ErrNoTable before any text reaches
// the parsing pipeline.
//
// =============================================================================

package docparser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoTable is returned when a document holds no table element.
var ErrNoTable = errors.New("no table found in document")

// documentPart is the main body part of a .docx package.
const documentPart = "word/document.xml"

// =============================================================================
// HTML
// =============================================================================

// ExtractHTMLTable renders the first <table> of an HTML document.
func ExtractHTMLTable(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return "", ErrNoTable
	}

	var lines []string
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, normalizeSpaces(cell.Text()))
		})
		lines = append(lines, strings.Join(cells, "\t"))
	})

	return strings.Join(lines, "\n"), nil
}

// =============================================================================
// DOCX
// =============================================================================

// ExtractDocxTable renders the first top-level table of a .docx document.
// Paragraphs inside one cell are joined with a space; the text of nested
// tables folds into the enclosing cell.
func ExtractDocxTable(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx package: %w", err)
	}

	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", fmt.Errorf("failed to open docx package: missing %s", documentPart)
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", documentPart, err)
	}
	defer rc.Close()

	return extractFirstTable(xml.NewDecoder(rc))
}

func extractFirstTable(dec *xml.Decoder) (string, error) {
	var (
		depth  int
		found  bool
		inText bool
		lines  []string
		cells  []string
		cell   strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", documentPart, err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "tbl":
				depth++
				found = true
			case "tr":
				if depth == 1 {
					cells = cells[:0]
				}
			case "tc":
				if depth == 1 {
					cell.Reset()
				}
			case "p":
				if depth >= 1 && cell.Len() > 0 {
					cell.WriteByte(' ')
				}
			case "t":
				inText = depth >= 1
			case "tab", "br":
				if depth >= 1 {
					cell.WriteByte(' ')
				}
			}
		case xml.EndElement:
			switch el.Name.Local {
			case "tbl":
				depth--
				if depth == 0 {
					return strings.Join(lines, "\n"), nil
				}
			case "tr":
				if depth == 1 {
					lines = append(lines, strings.Join(cells, "\t"))
				}
			case "tc":
				if depth == 1 {
					cells = append(cells, normalizeSpaces(cell.String()))
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				cell.Write(el)
			}
		}
	}

	if !found {
		return "", ErrNoTable
	}
	return strings.Join(lines, "\n"), nil
}

func normalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
