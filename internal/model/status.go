// Package model defines the core domain models used throughout the application.
package model

import "fmt"

// Status is a job-application lifecycle stage.
type Status string

// Lifecycle statuses, from first contact to final outcome.
const (
	StatusApplied       Status = "applied"
	StatusConfirmation  Status = "confirmation"
	StatusInterview1    Status = "interview_1"
	StatusInterview2    Status = "interview_2"
	StatusInterview3    Status = "interview_3"
	StatusInterview4    Status = "interview_4"
	StatusInterview5    Status = "interview_5"
	StatusOffer         Status = "offer"
	StatusAccepted      Status = "accepted"
	StatusRejected      Status = "rejected"
	StatusWithdrew      Status = "withdrew"
	StatusNoReply       Status = "no_reply"
	StatusNotJobRelated Status = "not_job_related"
)

// statusRanks is the precedence ladder used when multiple statuses match
// the same email. Lower rank wins. not_job_related never enters the
// ladder; the relevance gate assigns it before classification runs.
var statusRanks = map[Status]int{
	StatusRejected:     0,
	StatusWithdrew:     1,
	StatusAccepted:     2,
	StatusOffer:        3,
	StatusInterview5:   4,
	StatusInterview4:   5,
	StatusInterview3:   6,
	StatusInterview2:   7,
	StatusInterview1:   8,
	StatusConfirmation: 9,
	StatusApplied:      10,
	StatusNoReply:      11,
}

// AllStatuses returns every lifecycle status in precedence order,
// highest precedence first.
func AllStatuses() []Status {
	return []Status{
		StatusRejected,
		StatusWithdrew,
		StatusAccepted,
		StatusOffer,
		StatusInterview5,
		StatusInterview4,
		StatusInterview3,
		StatusInterview2,
		StatusInterview1,
		StatusConfirmation,
		StatusApplied,
		StatusNoReply,
	}
}

// Rank returns the precedence rank of the status. Lower rank means
// higher precedence.
func (s Status) Rank() (int, error) {
	rank, ok := statusRanks[s]
	if !ok {
		return 0, fmt.Errorf("status %q has no precedence rank", s)
	}
	return rank, nil
}

// IsInterview reports whether the status is one of the numbered
// interview stages.
func (s Status) IsInterview() bool {
	switch s {
	case StatusInterview1, StatusInterview2, StatusInterview3, StatusInterview4, StatusInterview5:
		return true
	default:
		return false
	}
}

// Valid reports whether the status is a known lifecycle stage.
func (s Status) Valid() bool {
	if s == StatusNotJobRelated {
		return true
	}
	_, ok := statusRanks[s]
	return ok
}
