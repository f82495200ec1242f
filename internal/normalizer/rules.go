// =============================================================================
// Quota Data Transformer - Normalization Tables
// =============================================================================
//
// Static, ordered lookup tables used by the record normalizer:
//   - column alias lists per canonical field
//   - request type remapping (raw ticket value -> label and code)
//   - status remapping
//
// Every lookup is "first match wins" over an ordered slice. Tables are never
// mutated at runtime.
//
// =============================================================================

package normalizer

import (
	"github.com/ginjaninja78/quota-data-transformer/internal/types"
)

// =============================================================================
// COLUMN ALIASES
// =============================================================================

// Alias lists in priority order.
var (
	IDAliases             = []string{"ID", "RDQuota", "id", "rdquota", "QuotaId"}
	SubscriptionIDAliases = []string{"Subscription ID", "SubscriptionId", "subscription id"}
	RegionAliases         = []string{"Region", "Location", "region"}
	RequestTypeAliases    = []string{"UTC Ticket", "Ticket", "Request Type", "Type"}
	ZoneAliases           = []string{"Deployment Constraints", "Zone", "Zones"}
	CoresAliases          = []string{"Event ID", "Cores", "Core Count"}
	StatusAliases         = []string{"Reason", "Status", "State"}
	VMTypeAliases         = []string{"SKU", "VM Type", "VmSize"}
)

// canonicalMarkers must all resolve by their exact display name for input to
// be treated as already canonical.
var canonicalMarkers = []string{
	types.HeaderSubscriptionID,
	types.HeaderRequestType,
	types.HeaderVMType,
	types.HeaderRegion,
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// RawAZEnablement is the raw request type that forces cores to N/A.
const RawAZEnablement = "AZ Enablement/Whitelisting"

// UnknownLabel is the request type label of rows without a request type.
const UnknownLabel = "Unknown"

// RequestTypeRule maps one raw ticket value to its label and code.
type RequestTypeRule struct {
	Raw   string
	Label string
	Code  types.RequestTypeCode
}

// RequestTypeRules is the request type remap table.
var RequestTypeRules = []RequestTypeRule{
	{RawAZEnablement, "Zonal Enablement", types.CodeZonalEnablement},
	{"Region Enablement/Whitelisting", "Region Enablement", types.CodeRegionalEnablement},
	{"Whitelisting/Quota Increase", "Region Enablement & Quota Increase", types.CodeRegionEnablementQuotaIncrease},
	{"Quota Increase", "Quota Increase", types.CodeQuotaIncrease},
	{"Region Limit Increase", "Region Limit Increase", types.CodeRegionLimitIncrease},
	{"RI Enablement/Whitelisting", "Reserved Instances", types.CodeReservedInstances},
}

// RemapRequestType returns the label and code for a raw request type.
// Matching is exact and case-sensitive. Unmatched values keep their text with
// CodeUnknown; the empty value becomes UnknownLabel.
func RemapRequestType(raw string) (string, types.RequestTypeCode) {
	if raw == "" {
		return UnknownLabel, types.CodeUnknown
	}
	for _, rule := range RequestTypeRules {
		if rule.Raw == raw {
			return rule.Label, rule.Code
		}
	}
	return raw, types.CodeUnknown
}

// =============================================================================
// STATUS
// =============================================================================

type statusRule struct {
	raw   string
	label string
}

var statusRules = []statusRule{
	{"Fulfillment Actions Completed", "Fulfilled"},
	{"Verification Successful", "Approved"},
	{"Abandoned", "Backlogged"},
	{"-", "Pending Customer Response"},
}

// RemapStatus maps ticketing-system status values to display statuses.
// Unlisted values pass through unchanged.
func RemapStatus(raw string) string {
	for _, rule := range statusRules {
		if rule.raw == raw {
			return rule.label
		}
	}
	return raw
}
