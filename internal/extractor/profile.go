package extractor

import (
	"strings"

	"github.com/SyN415/local-marketplace-lister-sub000/pkg/enums"
)

// Profile summarizes a listing's extracted components once per analysis.
type Profile struct {
	RawComponents Components            `json:"raw_components"`
	EstimatedTier enums.QualityTier     `json:"estimated_tier"`
	MissingSpecs  []enums.ComponentKind `json:"missing_specs"`
	FullBuild     bool                  `json:"full_build"`
}

// Tier lists are checked in order: high-end first, then mid-range, else
// budget. Substring matching lets "rtx 3080 ti" hit the "rtx 3080" entry.
var highEndGPUModels = []string{
	"rtx 5090", "rtx 5080",
	"rtx 4090", "rtx 4080",
	"rtx 3090", "rtx 3080",
	"rx 7900", "rx 6950", "rx 6900", "rx 6800",
}

var midRangeGPUModels = []string{
	"rtx 5070", "rtx 5060",
	"rtx 4070", "rtx 4060",
	"rtx 3070", "rtx 3060",
	"rtx 2080", "rtx 2070", "rtx 2060",
	"gtx 1080", "gtx 1070",
	"rx 7800", "rx 7700", "rx 6700", "rx 6600", "rx 5700",
}

// BuildProfile extracts components and derives the tier estimate and the set
// of kinds the listing never mentions.
func BuildProfile(title, description string) Profile {
	components := Extract(title, description)

	var missing []enums.ComponentKind
	for _, kind := range enums.AllComponentKinds {
		if len(components[kind]) == 0 {
			missing = append(missing, kind)
		}
	}

	return Profile{
		RawComponents: components,
		EstimatedTier: EstimateTier(components[enums.ComponentGPU]),
		MissingSpecs:  missing,
		FullBuild:     IsPCBuildListing(title, description),
	}
}

// EstimateTier grades the listing off its GPU matches alone; the GPU is the
// dominant value driver in a parted-out build. No GPU means no estimate.
func EstimateTier(gpuMatches []string) enums.QualityTier {
	if len(gpuMatches) == 0 {
		return enums.TierUnknown
	}
	for _, match := range gpuMatches {
		normalized := strings.ToLower(match)
		for _, model := range highEndGPUModels {
			if strings.Contains(normalized, model) {
				return enums.TierHighEnd
			}
		}
	}
	for _, match := range gpuMatches {
		normalized := strings.ToLower(match)
		for _, model := range midRangeGPUModels {
			if strings.Contains(normalized, model) {
				return enums.TierMidRange
			}
		}
	}
	return enums.TierBudget
}
