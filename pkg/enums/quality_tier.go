package enums

// QualityTier is the coarse quality estimate derived from a listing's GPU.
type QualityTier string

const (
	TierBudget   QualityTier = "budget"
	TierMidRange QualityTier = "mid-range"
	TierHighEnd  QualityTier = "high-end"
	TierUnknown  QualityTier = "unknown"
)

// String implements fmt.Stringer.
func (q QualityTier) String() string {
	return string(q)
}
