package classification

import (
	"testing"

	"github.com/sisifus/jobflow/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestScorer_Score(t *testing.T) {
	s := NewScorer()

	tests := []struct {
		name  string
		match StatusMatch
		want  float64
	}{
		{
			name:  "no evidence scores zero",
			match: StatusMatch{Status: model.StatusNoReply, RuleCount: 0},
			want:  0.0,
		},
		{
			name:  "single body match",
			match: StatusMatch{Status: model.StatusApplied, RuleCount: 1, WeightSum: 1.0},
			want:  0.5,
		},
		{
			name:  "single match with subject boost",
			match: StatusMatch{Status: model.StatusInterview1, RuleCount: 1, WeightSum: 1.0, SubjectHit: true},
			want:  0.7,
		},
		{
			name:  "two matches",
			match: StatusMatch{Status: model.StatusRejected, RuleCount: 2, WeightSum: 2.0},
			want:  0.7,
		},
		{
			name:  "heavier rule scores higher than a unit rule",
			match: StatusMatch{Status: model.StatusOffer, RuleCount: 1, WeightSum: 2.0},
			want:  0.7,
		},
		{
			name:  "saturates at one",
			match: StatusMatch{Status: model.StatusRejected, RuleCount: 3, WeightSum: 3.0, SubjectHit: true},
			want:  1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, s.Score(tt.match), 1e-9)
		})
	}
}

func TestScorer_Monotonicity(t *testing.T) {
	s := NewScorer()

	// More matched weight never lowers the score.
	prev := 0.0
	for count := 0; count <= 10; count++ {
		score := s.Score(StatusMatch{Status: model.StatusApplied, RuleCount: count, WeightSum: float64(count)})
		assert.GreaterOrEqual(t, score, prev, "count %d", count)
		assert.LessOrEqual(t, score, 1.0)
		prev = score
	}

	// The subject boost never lowers the score either.
	for count := 1; count <= 5; count++ {
		without := s.Score(StatusMatch{RuleCount: count, WeightSum: float64(count)})
		with := s.Score(StatusMatch{RuleCount: count, WeightSum: float64(count), SubjectHit: true})
		assert.GreaterOrEqual(t, with, without)
	}
}

func TestScorer_ThresholdConsistency(t *testing.T) {
	s := NewScorer()

	// no_reply sits below the threshold by construction.
	noReply := model.Classification{
		Status:     model.StatusNoReply,
		Confidence: s.Score(StatusMatch{Status: model.StatusNoReply}),
	}
	assert.False(t, noReply.HighConfidence(s.Threshold))

	// A single unboosted unit-weight match sits exactly at the
	// threshold, which does not count as high confidence.
	borderline := model.Classification{Confidence: s.Score(StatusMatch{RuleCount: 1, WeightSum: 1.0})}
	assert.False(t, borderline.HighConfidence(s.Threshold))

	// Subject-boosted single match clears it.
	strong := model.Classification{Confidence: s.Score(StatusMatch{RuleCount: 1, WeightSum: 1.0, SubjectHit: true})}
	assert.True(t, strong.HighConfidence(s.Threshold))
}

func TestScorer_WeightContributes(t *testing.T) {
	s := NewScorer()

	light := s.Score(StatusMatch{Status: model.StatusOffer, RuleCount: 1, WeightSum: 1.0})
	heavy := s.Score(StatusMatch{Status: model.StatusOffer, RuleCount: 1, WeightSum: 10.0})

	assert.Greater(t, heavy, light)
	assert.InDelta(t, 0.5, light, 1e-9)
	assert.InDelta(t, 1.0, heavy, 1e-9, "heavy weights saturate")
}
