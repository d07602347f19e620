package enums

// Recommendation is the terminal verdict of a resale analysis.
type Recommendation string

const (
	// RecommendationBuy indicates the listing clears the ROI policy.
	RecommendationBuy Recommendation = "BUY"
	// RecommendationSkip indicates the listing fails the ROI policy.
	RecommendationSkip Recommendation = "SKIP"
)

// String implements fmt.Stringer.
func (r Recommendation) String() string {
	return string(r)
}
