package normalizer

import (
	"github.com/ginjaninja78/quota-data-transformer/internal/types"
)

// IsDegenerate reports whether a raw-mode record carries nothing but a
// defaulted zone. The UnknownLabel placeholder counts as an empty request type.
func IsDegenerate(r types.CanonicalRecord) bool {
	if r.Zone != types.NotApplicable {
		return false
	}
	requestTypeEmpty := r.RequestType == "" ||
		(r.RequestType == UnknownLabel && r.RequestTypeCode == types.CodeUnknown)
	return r.SubscriptionID == "" && r.VMType == "" && r.Region == "" && requestTypeEmpty
}

// FilterDegenerate returns the records that are not degenerate and the number
// dropped. The input slice is not modified.
func FilterDegenerate(records []types.CanonicalRecord) ([]types.CanonicalRecord, int) {
	kept := make([]types.CanonicalRecord, 0, len(records))
	for _, r := range records {
		if IsDegenerate(r) {
			continue
		}
		kept = append(kept, r)
	}
	return kept, len(records) - len(kept)
}

// Group buckets records by request type label. Records keep their source
// order inside a group; categories are listed in first-seen order.
func Group(records []types.CanonicalRecord) (map[string][]types.CanonicalRecord, []string) {
	groups := make(map[string][]types.CanonicalRecord)
	var order []string
	for _, r := range records {
		if _, seen := groups[r.RequestType]; !seen {
			order = append(order, r.RequestType)
		}
		groups[r.RequestType] = append(groups[r.RequestType], r)
	}
	return groups, order
}
