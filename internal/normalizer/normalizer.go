package normalizer

import (
	"fmt"

	"github.com/ginjaninja78/quota-data-transformer/internal/cleaners"
	"github.com/ginjaninja78/quota-data-transformer/internal/csvparser"
	"github.com/ginjaninja78/quota-data-transformer/internal/types"
)

// PlaceholderIDPrefix prefixes the synthesized identifier of records read
// from already-canonical input.
const PlaceholderIDPrefix = "pre-transformed-"

// Normalizer converts data rows into canonical records. It is built from one
// header row and is read-only afterwards.
type Normalizer struct {
	mode types.InputMode
	cols columnMap
}

// columnMap holds resolved positions; -1 means the column is absent.
type columnMap struct {
	id, subscriptionID, region, requestType int
	zone, cores, status, vmType             int
}

// New resolves the columns of header and decides the input mode.
//
// In raw mode the id, subscription and region columns are required; a
// missing one yields *types.MissingColumnError.
func New(header *csvparser.ColumnIndex) (*Normalizer, error) {
	if isCanonical(header) {
		return &Normalizer{
			mode: types.ModeCanonical,
			cols: columnMap{
				id:             -1,
				subscriptionID: position(header, types.HeaderSubscriptionID),
				requestType:    position(header, types.HeaderRequestType),
				vmType:         position(header, types.HeaderVMType),
				region:         position(header, types.HeaderRegion),
				zone:           position(header, types.HeaderZone),
				cores:          position(header, types.HeaderCores),
				status:         position(header, types.HeaderStatus),
			},
		}, nil
	}

	cols := columnMap{
		id:             position(header, IDAliases...),
		subscriptionID: position(header, SubscriptionIDAliases...),
		region:         position(header, RegionAliases...),
		requestType:    position(header, RequestTypeAliases...),
		zone:           position(header, ZoneAliases...),
		cores:          position(header, CoresAliases...),
		status:         position(header, StatusAliases...),
		vmType:         position(header, VMTypeAliases...),
	}

	switch {
	case cols.id < 0:
		return nil, &types.MissingHeaderError{}
	case cols.subscriptionID < 0:
		return nil, &types.MissingColumnError{Field: types.HeaderSubscriptionID}
	case cols.region < 0:
		return nil, &types.MissingColumnError{Field: types.HeaderRegion}
	}

	return &Normalizer{mode: types.ModeRaw, cols: cols}, nil
}

// Mode returns the detected input mode.
func (n *Normalizer) Mode() types.InputMode { return n.mode }

// Normalize converts rows in order. It never fails; short rows yield empty
// fields.
func (n *Normalizer) Normalize(rows [][]string) []types.CanonicalRecord {
	records := make([]types.CanonicalRecord, 0, len(rows))
	for i, row := range rows {
		records = append(records, n.NormalizeRow(i, row))
	}
	return records
}

// NormalizeRow converts one data row. ordinal is the row's zero-based
// position among the data rows.
func (n *Normalizer) NormalizeRow(ordinal int, row []string) types.CanonicalRecord {
	if n.mode == types.ModeCanonical {
		return n.canonicalRecord(ordinal, row)
	}
	return n.rawRecord(row)
}

func (n *Normalizer) canonicalRecord(ordinal int, row []string) types.CanonicalRecord {
	get := func(pos int) string { return csvparser.Cell(row, pos) }

	return types.CanonicalRecord{
		SubscriptionID: get(n.cols.subscriptionID),
		RequestType:    get(n.cols.requestType),
		VMType:         get(n.cols.vmType),
		Region:         cleaners.CleanRegion(get(n.cols.region)),
		Zone:           get(n.cols.zone),
		Cores:          get(n.cols.cores),
		Status:         RemapStatus(get(n.cols.status)),
		OriginalID:     fmt.Sprintf("%s%d", PlaceholderIDPrefix, ordinal),
	}
}

func (n *Normalizer) rawRecord(row []string) types.CanonicalRecord {
	get := func(pos int) string { return csvparser.Cell(row, pos) }

	rawType := get(n.cols.requestType)
	cores := get(n.cols.cores)
	zone := get(n.cols.zone)

	if rawType == RawAZEnablement {
		cores = types.NotApplicable
	} else if cores == "-1" {
		cores = ""
	}

	if zone == "" {
		zone = types.NotApplicable
	}

	label, code := RemapRequestType(rawType)

	return types.CanonicalRecord{
		SubscriptionID:  get(n.cols.subscriptionID),
		RequestType:     label,
		VMType:          cleaners.CleanVMType(get(n.cols.vmType)),
		Region:          cleaners.CleanRegion(get(n.cols.region)),
		Zone:            zone,
		Cores:           cores,
		Status:          RemapStatus(get(n.cols.status)),
		OriginalID:      get(n.cols.id),
		RequestTypeCode: code,
	}
}

func isCanonical(header *csvparser.ColumnIndex) bool {
	for _, name := range canonicalMarkers {
		if !header.Has(name) {
			return false
		}
	}
	return true
}

func position(header *csvparser.ColumnIndex, aliases ...string) int {
	pos, _ := header.Resolve(aliases...)
	return pos
}
