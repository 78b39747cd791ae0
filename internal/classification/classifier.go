package classification

import (
	"strings"

	"github.com/sisifus/jobflow/internal/model"
)

// maxEvidencePerStatus caps how many rules are counted per status.
// Three independent hits already saturate the confidence model, so
// scanning further buys nothing.
const maxEvidencePerStatus = 3

// StatusMatch is one matched status definition with its evidence.
// WeightSum is the summed weight of the matched rules; with the
// default tables every rule weighs 1.0, so it equals RuleCount there.
type StatusMatch struct {
	Status     model.Status
	WeightSum  float64
	RuleCount  int
	SubjectHit bool
}

// Classifier evaluates registry rules against in-scope messages. It
// holds no per-message state and is safe for concurrent use.
type Classifier struct {
	registry  *Registry
	bodyLimit int
}

// NewClassifier creates a classifier over the given registry.
// bodyLimit bounds how many body characters any rule sees; zero or
// negative means the default.
func NewClassifier(registry *Registry, bodyLimit int) *Classifier {
	if bodyLimit <= 0 {
		bodyLimit = DefaultBodyScanLimit
	}
	return &Classifier{registry: registry, bodyLimit: bodyLimit}
}

// Classify evaluates every status definition against the email and
// returns the matched statuses with rule counts and accumulated
// weights, in precedence order. A definition matches if at least one
// of its rules matches.
//
// Once the highest-precedence status has matched, evaluation of the
// remaining definitions is skipped: the resolver's outcome is already
// decided, so this early exit cannot change the observable result.
func (c *Classifier) Classify(email model.Email) []StatusMatch {
	subject := strings.ToLower(email.Subject)
	body := strings.ToLower(boundedBody(email.Body, c.bodyLimit))

	var matches []StatusMatch
	for i, def := range c.registry.defs {
		count := 0
		weightSum := 0.0
		subjectHit := false
		for _, rule := range def.rules {
			hitSubject, hitBody := false, false
			switch rule.Target {
			case TargetSubject:
				hitSubject = rule.re.MatchString(subject)
			case TargetBody:
				hitBody = rule.re.MatchString(body)
			default:
				hitSubject = rule.re.MatchString(subject)
				hitBody = hitSubject || rule.re.MatchString(body)
			}
			if hitSubject || hitBody {
				count++
				weightSum += rule.Weight
				if hitSubject {
					subjectHit = true
				}
				if count >= maxEvidencePerStatus {
					break
				}
			}
		}
		if count > 0 {
			matches = append(matches, StatusMatch{
				Status:     def.status,
				WeightSum:  weightSum,
				RuleCount:  count,
				SubjectHit: subjectHit,
			})
			// Registry definitions are sorted by precedence, so a hit
			// on the first definition settles the winner.
			if i == 0 {
				break
			}
		}
	}
	return matches
}
