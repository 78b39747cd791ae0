package classification

import (
	"strings"
	"testing"

	"github.com/sisifus/jobflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultClassifier(t *testing.T) *Classifier {
	t.Helper()
	reg, err := NewRegistry(DefaultDefinitions())
	require.NoError(t, err)
	return NewClassifier(reg, 0)
}

func matchedStatuses(matches []StatusMatch) []model.Status {
	statuses := make([]model.Status, 0, len(matches))
	for _, m := range matches {
		statuses = append(statuses, m.Status)
	}
	return statuses
}

func TestClassifier_Classify(t *testing.T) {
	c := defaultClassifier(t)

	tests := []struct {
		name        string
		subject     string
		body        string
		wantStatus  model.Status
		wantMinHits int
	}{
		{
			name:        "applied",
			subject:     "Application submitted",
			body:        "Thank you for applying to our company",
			wantStatus:  model.StatusApplied,
			wantMinHits: 1,
		},
		{
			name:        "confirmation",
			subject:     "Application Confirmation",
			body:        "We have received your application for the position",
			wantStatus:  model.StatusConfirmation,
			wantMinHits: 1,
		},
		{
			name:        "first interview",
			subject:     "First Interview Invitation",
			body:        "We would like to invite you for a phone screen interview",
			wantStatus:  model.StatusInterview1,
			wantMinHits: 2,
		},
		{
			name:        "second interview",
			subject:     "Second Round Interview",
			body:        "Congratulations, we would like to proceed with a technical interview",
			wantStatus:  model.StatusInterview2,
			wantMinHits: 2,
		},
		{
			name:        "final interview",
			subject:     "Final Interview",
			body:        "We would like to invite you for an onsite interview",
			wantStatus:  model.StatusInterview3,
			wantMinHits: 2,
		},
		{
			name:        "offer",
			subject:     "Job Offer",
			body:        "We are pleased to offer you the position",
			wantStatus:  model.StatusOffer,
			wantMinHits: 2,
		},
		{
			name:        "accepted",
			subject:     "Offer Accepted",
			body:        "I am excited to accept the offer and join your team",
			wantStatus:  model.StatusAccepted,
			wantMinHits: 1,
		},
		{
			name:        "rejected",
			subject:     "Application Status Update",
			body:        "Unfortunately, we have decided not to move forward with your application",
			wantStatus:  model.StatusRejected,
			wantMinHits: 1,
		},
		{
			name:        "withdrew",
			subject:     "Withdrawing Application",
			body:        "I would like to withdraw my application for this position",
			wantStatus:  model.StatusWithdrew,
			wantMinHits: 1,
		},
		{
			name:        "portuguese job alert",
			subject:     "Novas vagas em São Paulo",
			body:        "Candidate-se agora",
			wantStatus:  model.StatusApplied,
			wantMinHits: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := c.Classify(model.Email{Subject: tt.subject, Body: tt.body})
			winner := WinningMatch(matches)
			assert.Equal(t, tt.wantStatus, winner.Status)
			assert.GreaterOrEqual(t, winner.RuleCount, tt.wantMinHits)
		})
	}
}

func TestClassifier_RejectionVariations(t *testing.T) {
	c := defaultClassifier(t)

	phrases := []string{
		"we will not be moving forward",
		"you were not selected for this position",
		"we decided to pursue other candidates",
		"this is not the right fit at this time",
		"we regret to inform you",
	}

	for _, phrase := range phrases {
		matches := c.Classify(model.Email{
			Subject: "Application Update",
			Body:    "Thank you for your interest. " + phrase + ".",
		})
		assert.Equal(t, model.StatusRejected, WinningMatch(matches).Status,
			"failed for phrase: %s", phrase)
	}
}

func TestClassifier_EarlyExitPreservesResult(t *testing.T) {
	c := defaultClassifier(t)

	// Message matching both rejection and interview language: the early
	// exit must stop at rejected and must not report lower statuses.
	matches := c.Classify(model.Email{
		Subject: "Interview Update",
		Body:    "Thank you for the second round interview. Unfortunately, we have decided not to move forward.",
	})

	require.NotEmpty(t, matches)
	assert.Equal(t, []model.Status{model.StatusRejected}, matchedStatuses(matches))
	assert.Equal(t, model.StatusRejected, WinningMatch(matches).Status)
}

func TestClassifier_MultipleMatches(t *testing.T) {
	c := defaultClassifier(t)

	// Offer language alongside interview language, no rejection: both
	// definitions report, and the ladder decides.
	matches := c.Classify(model.Email{
		Subject: "Next Steps",
		Body:    "After your technical interview we are pleased to offer you the position",
	})

	statuses := matchedStatuses(matches)
	assert.Contains(t, statuses, model.StatusOffer)
	assert.Contains(t, statuses, model.StatusInterview2)
	assert.Equal(t, model.StatusOffer, WinningMatch(matches).Status)
}

func TestClassifier_RuleWeightRaisesConfidence(t *testing.T) {
	build := func(weight float64) *Classifier {
		reg, err := NewRegistry([]StatusDefinition{{
			Status: model.StatusOffer,
			Rules: []PatternRule{
				{Regex: `pleased.*to.*offer`, Lang: LangEnglish, Target: TargetBoth, Weight: weight},
			},
		}})
		require.NoError(t, err)
		return NewClassifier(reg, 0)
	}

	email := model.Email{Body: "We are pleased to offer you the position."}
	scorer := NewScorer()

	lightMatch := WinningMatch(build(1.0).Classify(email))
	heavyMatch := WinningMatch(build(10.0).Classify(email))

	// Same rule count, different accumulated weight.
	assert.Equal(t, lightMatch.RuleCount, heavyMatch.RuleCount)
	assert.Greater(t, heavyMatch.WeightSum, lightMatch.WeightSum)
	assert.Greater(t, scorer.Score(heavyMatch), scorer.Score(lightMatch))
}

func TestClassifier_EvidenceCap(t *testing.T) {
	c := defaultClassifier(t)

	// Many distinct rejection phrases; the per-status count saturates.
	matches := c.Classify(model.Email{
		Body: "we regret to inform you. unfortunately you were not selected. " +
			"we decided not to proceed. other candidates were a better fit. " +
			"we are not advancing your application.",
	})
	winner := WinningMatch(matches)
	assert.Equal(t, model.StatusRejected, winner.Status)
	assert.Equal(t, maxEvidencePerStatus, winner.RuleCount)
}

func TestClassifier_BoundedBodyScan(t *testing.T) {
	reg, err := NewRegistry(DefaultDefinitions())
	require.NoError(t, err)
	c := NewClassifier(reg, 100)

	// The only evidence sits past the scan limit and must be invisible.
	body := strings.Repeat("x", 200) + " we regret to inform you"
	matches := c.Classify(model.Email{Body: body})
	assert.Empty(t, matches)
	assert.Equal(t, model.StatusNoReply, WinningMatch(matches).Status)
}

func TestClassifier_EmptyFields(t *testing.T) {
	c := defaultClassifier(t)

	matches := c.Classify(model.Email{})
	assert.Empty(t, matches)
	assert.Equal(t, model.StatusNoReply, WinningMatch(matches).Status)
	assert.Equal(t, 0, WinningMatch(matches).RuleCount)
}

func TestClassifier_Deterministic(t *testing.T) {
	c := defaultClassifier(t)

	email := model.Email{
		Subject: "Second Round Interview",
		Body:    "We would like to schedule a technical interview and a panel interview",
	}

	first := c.Classify(email)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, c.Classify(email))
	}
}
