package classification

import "github.com/sisifus/jobflow/internal/model"

// Resolve picks exactly one status from a set of matches using the
// fixed precedence ladder. The highest-precedence matched status wins
// outright, regardless of match counts, so the result is a pure
// function of the matched-status set and independent of iteration
// order. An empty set resolves to no_reply.
func Resolve(matches []StatusMatch) model.Status {
	winner := model.StatusNoReply
	winnerRank := int(^uint(0) >> 1)
	for _, m := range matches {
		rank, err := m.Status.Rank()
		if err != nil {
			continue // Unknown statuses cannot win
		}
		if rank < winnerRank {
			winner = m.Status
			winnerRank = rank
		}
	}
	return winner
}

// WinningMatch returns the match record for the resolved status, or a
// zero-evidence match for no_reply when the set is empty.
func WinningMatch(matches []StatusMatch) StatusMatch {
	winner := Resolve(matches)
	for _, m := range matches {
		if m.Status == winner {
			return m
		}
	}
	return StatusMatch{Status: model.StatusNoReply}
}
