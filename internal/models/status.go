package models

import "fmt"

// ApplicationStatus is the recruiter's decision on an application.
//
//	Pending ──► Accepted
//	   │
//	   └──────► Rejected
//
// Accepted and Rejected are terminal.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusAccepted ApplicationStatus = "Accepted"
	StatusRejected ApplicationStatus = "Rejected"
)

var statusTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusPending: {StatusAccepted, StatusRejected},
}

// ParseApplicationStatus converts a raw string to a status, returning an
// error for unknown values.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(s)
	switch st {
	case StatusPending, StatusAccepted, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// CanTransition reports whether an application may move from -> to.
func CanTransition(from, to ApplicationStatus) bool {
	for _, s := range statusTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s ApplicationStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}
