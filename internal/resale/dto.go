package resale

import (
	"github.com/google/uuid"

	"github.com/SyN415/local-marketplace-lister-sub000/internal/extractor"
	"github.com/SyN415/local-marketplace-lister-sub000/internal/pricestats"
	"github.com/SyN415/local-marketplace-lister-sub000/internal/profit"
	"github.com/SyN415/local-marketplace-lister-sub000/pkg/enums"
)

// ListingInput is the raw listing as supplied by the caller.
type ListingInput struct {
	Platform    string   `json:"platform"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ImageURLs   []string `json:"image_urls,omitempty"`
}

// ComponentDetail is the per-kind valuation outcome inside one analysis.
type ComponentDetail struct {
	Kind       enums.ComponentKind       `json:"kind"`
	Query      string                    `json:"query"`
	BestPrice  float64                   `json:"best_price"`
	Method     pricestats.EstimateMethod `json:"method"`
	Confidence float64                   `json:"confidence"`
	Level      enums.ConfidenceLevel     `json:"level"`
	SampleSize int                       `json:"sample_size"`
	CacheHit   bool                      `json:"cache_hit"`
	Stale      bool                      `json:"stale,omitempty"`
}

// ComponentValuation aggregates the priced kinds of one listing.
type ComponentValuation struct {
	TotalAggregatedValue float64                         `json:"total_aggregated_value"`
	PerComponentPrice    map[enums.ComponentKind]float64 `json:"per_component_price"`
	Confidence           float64                         `json:"confidence"`
	ComponentsPriced     int                             `json:"components_priced"`
}

// Analysis is the full pipeline output returned to callers.
type Analysis struct {
	ID         uuid.UUID          `json:"id,omitempty"`
	Input      ListingInput       `json:"input"`
	Profile    extractor.Profile  `json:"profile"`
	Components []ComponentDetail  `json:"components"`
	Valuation  ComponentValuation `json:"valuation"`
	Profit     profit.Analysis    `json:"profit"`
}
