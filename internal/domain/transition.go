package domain

import "time"

// StatusTransition is an immutable entry in a complaint's triage log.
type StatusTransition struct {
	ID          string
	ComplaintID string
	OperatorID  string
	FromStatus  ComplaintStatus
	ToStatus    ComplaintStatus
	Notes       string
	CreatedAt   time.Time
}
