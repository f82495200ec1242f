// =============================================================================
// Quota Data Transformer - Delimited Text Parser Module
// =============================================================================
//
// This module turns raw pasted or decoded export text into rows of cells and
// locates the header row. It handles:
//   - Boilerplate removal (query banner line, "Title:" prefixes)
//   - Line ending and BOM normalization
//   - Separator detection (tab, comma, or whitespace runs)
//   - Tokenizing every line with the detected separator
//   - Header row discovery with a robust and a legacy strategy
//
// The whole input is materialized; there is no streaming mode.
//
// =============================================================================

package csvparser

import (
	"strings"
	"unicode"

	"github.com/ginjaninja78/quota-data-transformer/internal/types"
)

// =============================================================================
// PREPROCESSING
// =============================================================================

// DefaultBannerSignatures are the substrings that identify the query banner
// line written at the top of ticketing-system exports.
var DefaultBannerSignatures = []string{"project:", "server:", "query:"}

// PreprocessOptions controls boilerplate removal.
type PreprocessOptions struct {
	// BannerSignatures must all appear (case-insensitive) in the first line
	// for it to be dropped. An empty list disables banner stripping.
	BannerSignatures []string

	// StripTitlePrefix removes a leading "Title:" from every line.
	StripTitlePrefix bool
}

// Document is raw input reduced to its non-blank lines.
type Document struct {
	// Lines holds the non-blank lines in source order.
	Lines []string

	// BannerStripped is true when the first line was a query banner.
	BannerStripped bool
}

// Preprocess normalizes raw input and splits it into non-blank lines.
//
// RETURNS:
//   - *types.EmptyInputError when nothing but whitespace remains after
//     boilerplate stripping.
//   - *types.InsufficientRowsError when fewer than two non-blank lines remain.
func Preprocess(raw string, opts PreprocessOptions) (*Document, error) {
	text := strings.TrimPrefix(raw, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	doc := &Document{}

	if first := firstNonBlank(lines); first >= 0 && isBanner(lines[first], opts.BannerSignatures) {
		lines = lines[first+1:]
		doc.BannerStripped = true
	}

	if opts.StripTitlePrefix {
		for i, line := range lines {
			lines[i] = stripTitlePrefix(line)
		}
	}

	if strings.TrimSpace(strings.Join(lines, "\n")) == "" {
		return nil, &types.EmptyInputError{}
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		doc.Lines = append(doc.Lines, strings.TrimRightFunc(line, unicode.IsSpace))
	}

	if len(doc.Lines) < 2 {
		return nil, &types.InsufficientRowsError{Lines: len(doc.Lines)}
	}

	return doc, nil
}

func firstNonBlank(lines []string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			return i
		}
	}
	return -1
}

// isBanner reports whether line carries every signature.
func isBanner(line string, signatures []string) bool {
	if len(signatures) == 0 {
		return false
	}
	lower := strings.ToLower(line)
	for _, sig := range signatures {
		if !strings.Contains(lower, strings.ToLower(sig)) {
			return false
		}
	}
	return true
}

func stripTitlePrefix(line string) string {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if len(trimmed) < len("title:") || !strings.EqualFold(trimmed[:len("title:")], "title:") {
		return line
	}
	return strings.TrimLeftFunc(trimmed[len("title:"):], unicode.IsSpace)
}

// =============================================================================
// ROWS
// =============================================================================

// Table is the tokenized form of a document.
type Table struct {
	Separator Separator
	Rows      [][]string
}

// Tokenize detects the separator over the document's lines and splits every
// line with it.
func Tokenize(doc *Document) *Table {
	sep := DetectSeparator(doc.Lines)
	return &Table{
		Separator: sep,
		Rows:      SplitLines(doc.Lines, sep),
	}
}

// SplitLines splits each line with sep.
func SplitLines(lines []string, sep Separator) [][]string {
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, SplitLine(line, sep))
	}
	return rows
}
