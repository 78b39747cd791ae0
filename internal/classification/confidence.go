package classification

// DefaultConfidenceThreshold separates high-confidence from
// low-confidence classifications. The analytics accuracy metric is the
// fraction of results above it.
const DefaultConfidenceThreshold = 0.5

// Scorer converts match evidence into a normalized [0, 1] confidence.
// More matched weight never lowers the score, and it saturates at 1.0.
type Scorer struct {
	Base         float64 // Score for any matched evidence
	PerMatch     float64 // Added per unit of matched rule weight
	SubjectBoost float64 // Added when any rule hit the subject
	Threshold    float64 // High/low confidence cutoff
}

// NewScorer returns the default scoring model: 0.3 base plus 0.2 per
// unit of matched rule weight, 0.2 subject boost, 0.5 threshold. The
// default tables weigh every rule 1.0, so there the per-weight term is
// 0.2 per matched rule.
func NewScorer() Scorer {
	return Scorer{
		Base:         0.3,
		PerMatch:     0.2,
		SubjectBoost: 0.2,
		Threshold:    DefaultConfidenceThreshold,
	}
}

// Score derives the confidence for the winning match. Zero matched
// rules yield 0.0, which keeps no_reply below the threshold by
// construction.
func (s Scorer) Score(match StatusMatch) float64 {
	if match.RuleCount <= 0 {
		return 0.0
	}
	score := s.Base + match.WeightSum*s.PerMatch
	if match.SubjectHit {
		score += s.SubjectBoost
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}
