// =============================================================================
// Quota Data Transformer - Export Tables
// =============================================================================
//
// This module arranges parse results into display tables. Three views exist:
//   - unified: every record under the seven final headers
//   - id: the unified view with an RDQuota column in front
//   - category: one table per request type, sorted by label
//
// A Table references canonical records; rendering (translation and cell
// cleaning) happens on a copy and never touches the records.
//
// =============================================================================

package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ginjaninja78/quota-data-transformer/internal/cleaners"
	"github.com/ginjaninja78/quota-data-transformer/internal/labels"
	"github.com/ginjaninja78/quota-data-transformer/internal/types"
)

// DefaultTitle names the table of the unified and id views.
const DefaultTitle = "Quota Data"

// =============================================================================
// VIEWS
// =============================================================================

// View selects how records are arranged into tables.
type View string

const (
	ViewUnified  View = "unified"
	ViewCategory View = "category"
	ViewByID     View = "id"
)

// ParseView converts a flag value into a View. The empty string is
// ViewUnified.
func ParseView(s string) (View, error) {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case "", ViewUnified:
		return ViewUnified, nil
	case ViewCategory:
		return ViewCategory, nil
	case ViewByID, "rdquota":
		return ViewByID, nil
	default:
		return "", fmt.Errorf("unknown view %q (want unified, category or id)", s)
	}
}

// =============================================================================
// TABLE
// =============================================================================

// Table is a titled set of records with the headers to display.
type Table struct {
	// Title is the table caption; for category tables it is the request type.
	Title string

	// Headers are canonical English header names.
	Headers []string

	// Records are displayed in order.
	Records []types.CanonicalRecord
}

// Rendered is a table converted to display strings.
type Rendered struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// BuildTables arranges a result according to view.
func BuildTables(res *types.Result, view View) []Table {
	switch view {
	case ViewCategory:
		return CategoryTables(res)
	case ViewByID:
		return []Table{ByIDTable(res.Records)}
	default:
		return []Table{UnifiedTable(res.Records)}
	}
}

// UnifiedTable shows every record under the final headers.
func UnifiedTable(records []types.CanonicalRecord) Table {
	return Table{
		Title:   DefaultTitle,
		Headers: append([]string(nil), types.FinalHeaders...),
		Records: records,
	}
}

// ByIDTable is UnifiedTable with an RDQuota column first.
func ByIDTable(records []types.CanonicalRecord) Table {
	headers := make([]string, 0, len(types.FinalHeaders)+1)
	headers = append(headers, types.HeaderRDQuota)
	headers = append(headers, types.FinalHeaders...)
	return Table{Title: DefaultTitle, Headers: headers, Records: records}
}

// CategoryTables returns one table per request type, sorted by label.
func CategoryTables(res *types.Result) []Table {
	names := make([]string, 0, len(res.Groups))
	for name := range res.Groups {
		names = append(names, name)
	}
	sort.Strings(names)

	tables := make([]Table, 0, len(names))
	for _, name := range names {
		records := res.Groups[name]
		tables = append(tables, Table{
			Title:   name,
			Headers: CategoryHeaders(records),
			Records: records,
		})
	}
	return tables
}

// CategoryHeaders decides the visible columns of a category from its first
// record: zonal enablement shows Zone and hides Cores, every other category
// shows Cores and hides Zone.
func CategoryHeaders(records []types.CanonicalRecord) []string {
	if len(records) == 0 {
		return append([]string(nil), types.FinalHeaders...)
	}
	zonal := records[0].RequestTypeCode == types.CodeZonalEnablement

	headers := make([]string, 0, len(types.FinalHeaders)-1)
	for _, h := range types.FinalHeaders {
		if h == types.HeaderCores && zonal {
			continue
		}
		if h == types.HeaderZone && !zonal {
			continue
		}
		headers = append(headers, h)
	}
	return headers
}

// Render converts the table to display strings in locale.
func (t Table) Render(locale labels.Locale) Rendered {
	out := Rendered{
		Title:   labels.Translate(t.Title, locale),
		Headers: labels.TranslateAll(t.Headers, locale),
		Rows:    make([][]string, 0, len(t.Records)),
	}
	for _, rec := range t.Records {
		row := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			row[i] = labels.Translate(cleaners.CleanCell(rec.Field(h)), locale)
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// RenderAll renders every table.
func RenderAll(tables []Table, locale labels.Locale) []Rendered {
	out := make([]Rendered, 0, len(tables))
	for _, t := range tables {
		out = append(out, t.Render(locale))
	}
	return out
}
