package types

// Keyword is a ranked term extracted from a document
type Keyword struct {
	Term     string   `json:"keyword"`
	Score    float64  `json:"score"`    // term frequency / total tokens
	Category Category `json:"category"`
}

// MatchType describes how a requirement keyword was found in the candidate text
type MatchType string

const (
	// MatchExact means the term occurs verbatim in the candidate text or token set
	MatchExact MatchType = "exact"
	// MatchPartial means the term shares a substring relation with a candidate token
	MatchPartial MatchType = "partial"
)

// MatchRecord is a requirement keyword annotated with its match outcome.
// Present and partial records carry MatchType; missing records carry Priority.
type MatchRecord struct {
	Keyword
	MatchType MatchType `json:"matchType,omitempty"`
	Priority  *float64  `json:"priority,omitempty"`
}

// IsMissing reports whether the record describes an unmatched keyword
func (r MatchRecord) IsMissing() bool {
	return r.MatchType == "" && r.Priority != nil
}
