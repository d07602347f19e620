package types

// CandidateItem is one raw row from the comparable-sales search. Every field
// is untrusted; price may be zero and title may be empty or adversarial.
type CandidateItem struct {
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Condition string  `json:"condition,omitempty"`
	URL       string  `json:"url,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// FilteredItem is a candidate that survived hard exclusion, annotated with
// its relevance to the search phrase.
type FilteredItem struct {
	CandidateItem
	RelevanceScore float64  `json:"relevance_score"`
	SoftWarnings   []string `json:"soft_warnings,omitempty"`
}
