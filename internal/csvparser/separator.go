package csvparser

import (
	"regexp"
	"strings"
)

// Separator is the cell delimiter chosen for one input.
type Separator int

const (
	// Comma splits on ','.
	Comma Separator = iota
	// Tab splits on '\t'.
	Tab
	// Whitespace splits on runs of whitespace.
	Whitespace
)

// SeparatorScanLimit is the number of leading lines inspected by
// DetectSeparator.
const SeparatorScanLimit = 20

var whitespaceRun = regexp.MustCompile(`\s+`)

func (s Separator) String() string {
	switch s {
	case Comma:
		return "comma"
	case Tab:
		return "tab"
	case Whitespace:
		return "whitespace"
	default:
		return "unknown"
	}
}

// DetectSeparator picks the delimiter from the per-line maximum count of
// commas and tabs over the first SeparatorScanLimit lines. Tab must strictly
// exceed comma to win; when neither appears the input splits on whitespace.
func DetectSeparator(lines []string) Separator {
	maxCommas, maxTabs := 0, 0
	for i, line := range lines {
		if i >= SeparatorScanLimit {
			break
		}
		maxCommas = max(maxCommas, strings.Count(line, ","))
		maxTabs = max(maxTabs, strings.Count(line, "\t"))
	}

	switch {
	case maxCommas == 0 && maxTabs == 0:
		return Whitespace
	case maxTabs > maxCommas:
		return Tab
	default:
		return Comma
	}
}

// SplitLine splits one line with sep and normalizes every cell: surrounding
// whitespace is trimmed, then every double quote is removed. Whitespace-split
// lines are trimmed first so indentation does not yield an empty first cell.
func SplitLine(line string, sep Separator) []string {
	var parts []string
	switch sep {
	case Tab:
		parts = strings.Split(line, "\t")
	case Whitespace:
		parts = whitespaceRun.Split(strings.TrimSpace(line), -1)
	default:
		parts = strings.Split(line, ",")
	}

	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.ReplaceAll(strings.TrimSpace(p), `"`, "")
	}
	return cells
}
