package classification

import (
	"testing"

	"github.com/sisifus/jobflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		defs    []StatusDefinition
		wantErr bool
	}{
		{
			name: "valid definitions",
			defs: []StatusDefinition{
				{
					Status: model.StatusRejected,
					Rules: []PatternRule{
						{Regex: `we.*regret.*inform`, Lang: LangEnglish, Weight: 1.0},
					},
				},
				{
					Status: model.StatusApplied,
					Rules: []PatternRule{
						{Regex: `application.*submitted`, Lang: LangEnglish, Weight: 1.0},
						{Regex: `candidate-se`, Lang: LangPortuguese, Weight: 1.0},
					},
				},
			},
			wantErr: false,
		},
		{
			name: "invalid regex fails fast",
			defs: []StatusDefinition{
				{
					Status: model.StatusOffer,
					Rules: []PatternRule{
						{Regex: `[invalid regex`, Weight: 1.0},
					},
				},
			},
			wantErr: true,
			errMsg:  "failed to compile rule",
		},
		{
			name: "unknown status rejected",
			defs: []StatusDefinition{
				{Status: model.Status("ghosted"), Rules: nil},
			},
			wantErr: true,
			errMsg:  "no precedence rank",
		},
		{
			name: "no_reply cannot carry rules",
			defs: []StatusDefinition{
				{Status: model.StatusNoReply, Rules: []PatternRule{{Regex: `x`, Weight: 1.0}}},
			},
			wantErr: true,
			errMsg:  "cannot carry rules",
		},
		{
			name: "duplicate status rejected",
			defs: []StatusDefinition{
				{Status: model.StatusOffer, Rules: []PatternRule{{Regex: `offer`, Weight: 1.0}}},
				{Status: model.StatusOffer, Rules: []PatternRule{{Regex: `offer`, Weight: 1.0}}},
			},
			wantErr: true,
			errMsg:  "duplicate definition",
		},
		{
			name: "non-positive weight rejected",
			defs: []StatusDefinition{
				{Status: model.StatusOffer, Rules: []PatternRule{{Regex: `offer`, Weight: 0}}},
			},
			wantErr: true,
			errMsg:  "weight must be positive",
		},
		{
			name:    "empty definitions",
			defs:    []StatusDefinition{},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewRegistry(tt.defs)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.Nil(t, reg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, reg)
				assert.Equal(t, len(tt.defs), reg.DefinitionCount())
			}
		})
	}
}

func TestNewRegistry_SortedByPrecedence(t *testing.T) {
	// Deliberately supplied lowest precedence first.
	reg, err := NewRegistry([]StatusDefinition{
		{Status: model.StatusApplied, Rules: []PatternRule{{Regex: `applied`, Weight: 1.0}}},
		{Status: model.StatusInterview2, Rules: []PatternRule{{Regex: `second.*interview`, Weight: 1.0}}},
		{Status: model.StatusRejected, Rules: []PatternRule{{Regex: `regret`, Weight: 1.0}}},
	})
	require.NoError(t, err)

	infos := reg.Definitions()
	require.Len(t, infos, 3)
	assert.Equal(t, model.StatusRejected, infos[0].Status)
	assert.Equal(t, model.StatusInterview2, infos[1].Status)
	assert.Equal(t, model.StatusApplied, infos[2].Status)
	for i := 0; i < len(infos)-1; i++ {
		assert.Less(t, infos[i].Rank, infos[i+1].Rank)
	}
}

func TestDefaultDefinitions(t *testing.T) {
	defs := DefaultDefinitions()

	// Every rule table must compile.
	reg, err := NewRegistry(defs)
	require.NoError(t, err)

	// All interview stages and both terminal outcomes are covered.
	for _, status := range []model.Status{
		model.StatusApplied, model.StatusConfirmation,
		model.StatusInterview1, model.StatusInterview2, model.StatusInterview3,
		model.StatusInterview4, model.StatusInterview5,
		model.StatusOffer, model.StatusAccepted,
		model.StatusRejected, model.StatusWithdrew,
	} {
		assert.Greater(t, reg.RuleCount(status), 0, "no rules for %s", status)
	}

	// At least two languages represented.
	langs := make(map[Language]bool)
	for _, info := range reg.Definitions() {
		for _, l := range info.Languages {
			langs[l] = true
		}
	}
	assert.True(t, langs[LangEnglish])
	assert.True(t, langs[LangPortuguese])
}
