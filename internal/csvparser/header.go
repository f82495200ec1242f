package csvparser

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/quota-data-transformer/internal/types"
)

// =============================================================================
// HEADER LOCATION
// =============================================================================

// IdentifierAliases are the lower-cased header names that mark the record
// identifier column.
var IdentifierAliases = []string{"id", "rdquota", "quotaid"}

// HeaderStrategy selects how the header row is found.
type HeaderStrategy string

const (
	// StrategyRobust scans every row for an identifier cell.
	StrategyRobust HeaderStrategy = "robust"

	// StrategyLegacy takes row 0 and only checks that it has an identifier.
	StrategyLegacy HeaderStrategy = "legacy"
)

// ParseHeaderStrategy converts a configuration value into a HeaderStrategy.
// The empty string selects StrategyRobust.
func ParseHeaderStrategy(s string) (HeaderStrategy, error) {
	switch HeaderStrategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyRobust:
		return StrategyRobust, nil
	case StrategyLegacy:
		return StrategyLegacy, nil
	default:
		return "", fmt.Errorf("unknown header detection strategy %q (want robust or legacy)", s)
	}
}

// HeaderInfo is the located header row.
type HeaderInfo struct {
	// RowIndex is the zero-based index of the header within the rows.
	RowIndex int

	// Cells holds the header names in column order.
	Cells []string

	// Fallback is true when the legacy strategy produced this header after
	// the robust strategy failed.
	Fallback bool
}

// Locator finds the header row within tokenized rows.
type Locator func(rows [][]string) (HeaderInfo, error)

// LocateRobust returns the first row holding an identifier cell.
func LocateRobust(rows [][]string) (HeaderInfo, error) {
	for i, row := range rows {
		if hasIdentifier(row) {
			return HeaderInfo{RowIndex: i, Cells: row}, nil
		}
	}
	return HeaderInfo{}, &types.MissingHeaderError{}
}

// LocateLegacy treats row 0 as the header and requires an identifier cell in
// it.
func LocateLegacy(rows [][]string) (HeaderInfo, error) {
	if len(rows) == 0 {
		return HeaderInfo{}, &types.EmptyInputError{}
	}
	if !hasIdentifier(rows[0]) {
		return HeaderInfo{}, &types.MissingHeaderError{}
	}
	return HeaderInfo{RowIndex: 0, Cells: rows[0]}, nil
}

// LocateHeader runs the chosen strategy. With StrategyRobust and fallback
// enabled a robust failure is retried once with the legacy strategy; the
// legacy error is the one returned when both fail.
//
// onRetry, when not nil, receives the robust error right before the legacy
// attempt.
func LocateHeader(rows [][]string, strategy HeaderStrategy, fallback bool, onRetry func(error)) (HeaderInfo, error) {
	if strategy == StrategyLegacy {
		return LocateLegacy(rows)
	}
	if !fallback {
		return LocateRobust(rows)
	}
	return locateWithFallback(rows, LocateRobust, LocateLegacy, onRetry)
}

func locateWithFallback(rows [][]string, primary, secondary Locator, onRetry func(error)) (HeaderInfo, error) {
	info, err := primary(rows)
	if err == nil {
		return info, nil
	}
	if onRetry != nil {
		onRetry(err)
	}
	info, err = secondary(rows)
	if err != nil {
		return HeaderInfo{}, err
	}
	info.Fallback = true
	return info, nil
}

func hasIdentifier(row []string) bool {
	for _, cell := range row {
		val := strings.ToLower(strings.TrimSpace(cell))
		for _, alias := range IdentifierAliases {
			if val == alias {
				return true
			}
		}
	}
	return false
}
