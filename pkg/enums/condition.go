package enums

import "strings"

// Condition normalizes the free-form condition field on comparable sales.
type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionUsed        Condition = "used"
	ConditionRefurbished Condition = "refurbished"
	ConditionForParts    Condition = "for_parts"
	ConditionUnknown     Condition = "unknown"
)

// NormalizeCondition maps marketplace condition strings onto the fixed set.
// Anything unrecognized comes back as ConditionUnknown; the filter treats
// unknown as passable since the field is untrusted.
func NormalizeCondition(raw string) Condition {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "new", "open box", "open-box":
		return ConditionNew
	case "used", "pre-owned", "preowned":
		return ConditionUsed
	case "refurbished", "seller refurbished", "manufacturer refurbished", "renewed":
		return ConditionRefurbished
	case "for parts", "for parts or not working", "parts only", "broken":
		return ConditionForParts
	default:
		return ConditionUnknown
	}
}
