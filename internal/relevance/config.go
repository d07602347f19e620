package relevance

import (
	"regexp"

	"github.com/SyN415/local-marketplace-lister-sub000/pkg/enums"
)

// KindConfig carries the per-component-kind filter tuning: acceptable price
// band, hard exclusions, the minimum composite relevance, and the condition
// allow-list.
type KindConfig struct {
	MinPrice          float64
	MaxPrice          float64
	ExcludeKeywords   []string
	ExcludePatterns   []*regexp.Regexp
	MinRelevance      float64
	AllowedConditions []enums.Condition
}

// Exclusions shared by every kind: parts-only and not-working listings, lots
// and bundles, and wanted ads masquerading as sales.
var baseExcludeKeywords = []string{
	"for parts",
	"parts only",
	"not working",
	"broken",
	"faulty",
	"as-is",
	"repair",
	"bundle",
	"combo",
	"bulk",
	"wholesale",
	"wanted",
	"wtb",
	"looking for",
	"iso ",
}

var baseExcludePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\blot\s+of\s+\d+`),
	regexp.MustCompile(`(?i)\bx\s?\d+\s+(?:units|pieces|pcs)\b`),
	regexp.MustCompile(`(?i)\bjob\s?lot\b`),
}

var resellableConditions = []enums.Condition{
	enums.ConditionNew,
	enums.ConditionUsed,
	enums.ConditionRefurbished,
}

var kindConfigs = map[enums.ComponentKind]KindConfig{
	enums.ComponentCPU: {
		MinPrice:          20,
		MaxPrice:          1500,
		ExcludeKeywords:   appendKeywords("bent pins", "delidded", "cooler only", "fan only"),
		ExcludePatterns:   baseExcludePatterns,
		MinRelevance:      0.45,
		AllowedConditions: resellableConditions,
	},
	enums.ComponentGPU: {
		MinPrice:        50,
		MaxPrice:        3000,
		ExcludeKeywords: appendKeywords("mining rig", "box only", "backplate only", "shroud only", "no video output", "artifacting"),
		ExcludePatterns: append([]*regexp.Regexp{
			regexp.MustCompile(`(?i)\bwater\s?block\s+only\b`),
		}, baseExcludePatterns...),
		MinRelevance:      0.50,
		AllowedConditions: resellableConditions,
	},
	enums.ComponentRAM: {
		MinPrice:          10,
		MaxPrice:          600,
		ExcludeKeywords:   appendKeywords("single stick from kit", "heatsink only"),
		ExcludePatterns:   baseExcludePatterns,
		MinRelevance:      0.40,
		AllowedConditions: resellableConditions,
	},
	enums.ComponentStorage: {
		MinPrice:          10,
		MaxPrice:          800,
		ExcludeKeywords:   appendKeywords("enclosure only", "caddy only", "bad sectors"),
		ExcludePatterns:   baseExcludePatterns,
		MinRelevance:      0.40,
		AllowedConditions: resellableConditions,
	},
	enums.ComponentPSU: {
		MinPrice:          15,
		MaxPrice:          500,
		ExcludeKeywords:   appendKeywords("cables only", "no cables", "sleeved cables"),
		ExcludePatterns:   baseExcludePatterns,
		MinRelevance:      0.40,
		AllowedConditions: resellableConditions,
	},
	enums.ComponentMotherboard: {
		MinPrice:          25,
		MaxPrice:          1000,
		ExcludeKeywords:   appendKeywords("bent socket", "io shield only", "no io shield"),
		ExcludePatterns:   baseExcludePatterns,
		MinRelevance:      0.45,
		AllowedConditions: resellableConditions,
	},
	enums.ComponentCase: {
		MinPrice:          15,
		MaxPrice:          500,
		ExcludeKeywords:   appendKeywords("panel only", "glass only", "feet only"),
		ExcludePatterns:   baseExcludePatterns,
		MinRelevance:      0.35,
		AllowedConditions: resellableConditions,
	},
	enums.ComponentCooling: {
		MinPrice:          10,
		MaxPrice:          400,
		ExcludeKeywords:   appendKeywords("bracket only", "mounting kit only", "leaking"),
		ExcludePatterns:   baseExcludePatterns,
		MinRelevance:      0.35,
		AllowedConditions: resellableConditions,
	},
}

func appendKeywords(extra ...string) []string {
	merged := make([]string, 0, len(baseExcludeKeywords)+len(extra))
	merged = append(merged, baseExcludeKeywords...)
	merged = append(merged, extra...)
	return merged
}

// ConfigFor looks up the filter tuning for a component kind. Unrecognized
// kinds fall back to a conservative default rather than panicking.
func ConfigFor(kind enums.ComponentKind) KindConfig {
	if cfg, ok := kindConfigs[kind]; ok {
		return cfg
	}
	return KindConfig{
		MinPrice:          10,
		MaxPrice:          2000,
		ExcludeKeywords:   baseExcludeKeywords,
		ExcludePatterns:   baseExcludePatterns,
		MinRelevance:      0.45,
		AllowedConditions: resellableConditions,
	}
}
