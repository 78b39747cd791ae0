package model

import "time"

// UnknownCompany is the sentinel used when no organization name can be
// derived from the sender.
const UnknownCompany = "Unknown"

// Classification represents one email after processing. Immutable once
// produced; EmailID is a back-reference only, the Email is not owned.
type Classification struct {
	ClassifiedAt     time.Time
	EmailID          string
	Status           Status
	Company          string
	Notes            string // Diagnostics, e.g. degraded-classification reason
	Confidence       float64
	MatchedRuleCount int
	IsJobRelated     bool
}

// HighConfidence reports whether the result clears the given
// threshold. The analytics accuracy metric counts exactly these.
func (c Classification) HighConfidence(threshold float64) bool {
	return c.Confidence > threshold
}
