// Package cleaners holds the stateless string normalizers applied to
// individual field values.
package cleaners

import (
	"regexp"
	"strings"
)

var (
	regionTagPattern = regexp.MustCompile(`\s*\([A-Z]+\)$`)
	xioMarkerPattern = regexp.MustCompile(`(?i)\(XIO\)`)
)

// CleanRegion drops a trailing parenthesized uppercase tag and trims the
// result: "West US (ABC)" becomes "West US".
func CleanRegion(s string) string {
	if s == "" {
		return ""
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(regionTagPattern.ReplaceAllString(s, ""))
}

// CleanVMType removes every "(XIO)" marker, case-insensitively, and trims.
func CleanVMType(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(xioMarkerPattern.ReplaceAllString(s, ""))
}

// CleanValue prepares a value for display or export. Nil becomes the empty
// string, strings are trimmed, anything else passes through.
func CleanValue(v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	default:
		return v
	}
}

// CleanCell is CleanValue for string cells.
func CleanCell(s string) string {
	return CleanValue(s).(string)
}
