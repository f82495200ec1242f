package csvparser

import "strings"

// ColumnIndex maps lower-cased header names to column positions. When a name
// repeats, the last occurrence wins.
type ColumnIndex struct {
	positions map[string]int
}

// NewColumnIndex builds the index for a header row.
func NewColumnIndex(header []string) *ColumnIndex {
	idx := &ColumnIndex{
		positions: make(map[string]int, len(header)),
	}
	for i, name := range header {
		idx.positions[normalizeName(name)] = i
	}
	return idx
}

// Resolve returns the position of the first alias present in the header.
// Matching is case-insensitive and exact.
func (c *ColumnIndex) Resolve(aliases ...string) (int, bool) {
	for _, alias := range aliases {
		if pos, ok := c.positions[normalizeName(alias)]; ok {
			return pos, true
		}
	}
	return -1, false
}

// Has reports whether name is a header of this index.
func (c *ColumnIndex) Has(name string) bool {
	_, ok := c.Resolve(name)
	return ok
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Cell returns the trimmed value at pos, or "" when pos is negative or the
// row is short.
func Cell(row []string, pos int) string {
	if pos < 0 || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}
