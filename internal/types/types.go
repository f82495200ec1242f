// =============================================================================
// Quota Data Transformer - Shared Types
// =============================================================================
//
// This package contains the types shared by the parsing pipeline, the export
// adapters, and the presentation layers (CLI and HTTP). Keeping them here
// avoids import cycles between:
//   - csvparser
//   - normalizer
//   - converter
//   - export
//   - server
//
// =============================================================================

package types

// =============================================================================
// REQUEST TYPE CODES
// =============================================================================

// RequestTypeCode is a stable machine-readable tag for a request category.
// It does not change when display labels are translated.
type RequestTypeCode string

const (
	CodeZonalEnablement               RequestTypeCode = "ZONAL_ENABLEMENT"
	CodeRegionalEnablement            RequestTypeCode = "REGIONAL_ENABLEMENT"
	CodeRegionEnablementQuotaIncrease RequestTypeCode = "REGION_ENABLEMENT_QUOTA_INCREASE"
	CodeQuotaIncrease                 RequestTypeCode = "QUOTA_INCREASE"
	CodeRegionLimitIncrease           RequestTypeCode = "REGION_LIMIT_INCREASE"
	CodeReservedInstances             RequestTypeCode = "RESERVED_INSTANCES"
	CodeUnknown                       RequestTypeCode = "UNKNOWN"
)

// =============================================================================
// INPUT MODE
// =============================================================================

// InputMode tells which producer path built the records of a parse run.
type InputMode string

const (
	// ModeRaw is input with ticketing-system column names that need aliasing
	// and value remapping.
	ModeRaw InputMode = "raw"

	// ModeCanonical is input whose columns already carry the final names.
	ModeCanonical InputMode = "canonical"
)

// =============================================================================
// DISPLAY HEADERS
// =============================================================================

// Display header names of the canonical record.
const (
	HeaderSubscriptionID = "Subscription ID"
	HeaderRequestType    = "Request Type"
	HeaderVMType         = "VM Type"
	HeaderRegion         = "Region"
	HeaderZone           = "Zone"
	HeaderCores          = "Cores"
	HeaderStatus         = "Status"
	HeaderRDQuota        = "RDQuota"
	HeaderOriginalID     = "Original ID"
)

// NotApplicable is the literal used when zone or cores do not apply.
const NotApplicable = "N/A"

// FinalHeaders lists the seven display fields in output order.
var FinalHeaders = []string{
	HeaderSubscriptionID,
	HeaderRequestType,
	HeaderVMType,
	HeaderRegion,
	HeaderZone,
	HeaderCores,
	HeaderStatus,
}

// =============================================================================
// CANONICAL RECORD
// =============================================================================

// CanonicalRecord is one normalized quota request.
//
// Every field defaults to the empty string. Zone and Cores may carry
// NotApplicable in raw mode. RequestTypeCode is only set for records built
// from raw-format input.
type CanonicalRecord struct {
	SubscriptionID  string          `json:"subscriptionId"`
	RequestType     string          `json:"requestType"`
	VMType          string          `json:"vmType"`
	Region          string          `json:"region"`
	Zone            string          `json:"zone"`
	Cores           string          `json:"cores"`
	Status          string          `json:"status"`
	OriginalID      string          `json:"originalId"`
	RequestTypeCode RequestTypeCode `json:"requestTypeCode,omitempty"`
}

// HasCode reports whether the record carries a request-type code.
func (r CanonicalRecord) HasCode() bool {
	return r.RequestTypeCode != ""
}

// Field returns the value displayed under the given header name.
// Unknown headers yield the empty string.
func (r CanonicalRecord) Field(header string) string {
	switch header {
	case HeaderSubscriptionID:
		return r.SubscriptionID
	case HeaderRequestType:
		return r.RequestType
	case HeaderVMType:
		return r.VMType
	case HeaderRegion:
		return r.Region
	case HeaderZone:
		return r.Zone
	case HeaderCores:
		return r.Cores
	case HeaderStatus:
		return r.Status
	case HeaderRDQuota, HeaderOriginalID:
		return r.OriginalID
	default:
		return ""
	}
}

// =============================================================================
// PARSE RESULT
// =============================================================================

// Result is the output of one pipeline invocation. It is owned by the caller.
type Result struct {
	// Records is the flat list of records in source row order.
	Records []CanonicalRecord `json:"records"`

	// Groups maps a request-type label to its records, in source row order.
	Groups map[string][]CanonicalRecord `json:"groups"`

	// Categories holds the group labels in first-seen order.
	Categories []string `json:"categories"`

	// Mode is the producer path that built the records.
	Mode InputMode `json:"mode"`

	// Stats contains parse statistics.
	Stats ParseStats `json:"stats"`
}

// ParseStats describes how the input was read.
type ParseStats struct {
	// Lines is the number of non-blank lines after preprocessing.
	Lines int `json:"lines"`

	// Separator is the name of the detected separator.
	Separator string `json:"separator"`

	// HeaderRowIndex is the zero-based index of the header among the lines.
	HeaderRowIndex int `json:"headerRowIndex"`

	// HeaderFallback is true when the legacy header strategy located the header
	// after the robust strategy failed.
	HeaderFallback bool `json:"headerFallback"`

	// BannerStripped is true when a boilerplate first line was removed.
	BannerStripped bool `json:"bannerStripped"`

	// DataRows is the number of rows after the header.
	DataRows int `json:"dataRows"`

	// Dropped is the number of degenerate rows filtered out.
	Dropped int `json:"dropped"`
}
