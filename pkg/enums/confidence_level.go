package enums

// ConfidenceLevel grades how trustworthy a price estimate is.
type ConfidenceLevel string

const (
	ConfidenceHigh         ConfidenceLevel = "HIGH"
	ConfidenceMedium       ConfidenceLevel = "MEDIUM"
	ConfidenceLow          ConfidenceLevel = "LOW"
	ConfidenceInsufficient ConfidenceLevel = "INSUFFICIENT"
)

// String implements fmt.Stringer.
func (c ConfidenceLevel) String() string {
	return string(c)
}
