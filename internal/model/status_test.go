package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Rank(t *testing.T) {
	// Decisive outcomes outrank progress, progress outranks silence.
	rejected, err := StatusRejected.Rank()
	require.NoError(t, err)
	offer, err := StatusOffer.Rank()
	require.NoError(t, err)
	applied, err := StatusApplied.Rank()
	require.NoError(t, err)
	noReply, err := StatusNoReply.Rank()
	require.NoError(t, err)

	assert.Less(t, rejected, offer)
	assert.Less(t, offer, applied)
	assert.Less(t, applied, noReply)

	// Later interview stages outrank earlier ones.
	prev := -1
	for _, s := range []Status{StatusInterview5, StatusInterview4, StatusInterview3, StatusInterview2, StatusInterview1} {
		rank, rankErr := s.Rank()
		require.NoError(t, rankErr)
		assert.Greater(t, rank, prev)
		prev = rank
	}

	_, err = StatusNotJobRelated.Rank()
	assert.Error(t, err, "not_job_related never enters the ladder")

	_, err = Status("ghosted").Rank()
	assert.Error(t, err)
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, s.Valid(), s)
	}
	assert.True(t, StatusNotJobRelated.Valid())
	assert.False(t, Status("ghosted").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatus_IsInterview(t *testing.T) {
	assert.True(t, StatusInterview1.IsInterview())
	assert.True(t, StatusInterview5.IsInterview())
	assert.False(t, StatusOffer.IsInterview())
	assert.False(t, StatusNoReply.IsInterview())
}
