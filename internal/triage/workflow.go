package triage

import (
	"fmt"
	"time"

	"github.com/spec-kit/fraud-desk/internal/domain"
)

// CanTransition reports whether a complaint may move from one status to another.
// Every known status is reachable from every other one, including itself; no
// status is terminal.
func CanTransition(from, to domain.ComplaintStatus) bool {
	return from.Valid() && to.Valid()
}

// SetStatus applies an operator decision to a complaint. The notes always
// replace the previous notes. The returned transition is the log entry for the
// change; the input record is left untouched.
func SetStatus(record domain.Complaint, status domain.ComplaintStatus, notes, operator string, at time.Time) (domain.Complaint, domain.StatusTransition, error) {
	if !status.Valid() {
		return record, domain.StatusTransition{}, fmt.Errorf("unknown status %q", status)
	}
	from := record.Status
	if !from.Valid() {
		// an unset status reads as the creation default
		from = domain.ComplaintStatusPending
	}
	if !CanTransition(from, status) {
		return record, domain.StatusTransition{}, fmt.Errorf("transition %s -> %s not allowed", from, status)
	}

	updated := record
	updated.Status = status
	updated.AdminNotes = notes

	return updated, domain.StatusTransition{
		ComplaintID: record.ID,
		OperatorID:  operator,
		FromStatus:  from,
		ToStatus:    status,
		Notes:       notes,
		CreatedAt:   at,
	}, nil
}

// Replay folds a transition log into the current status and notes projection.
// It returns false when the log is empty.
func Replay(log []domain.StatusTransition) (domain.StatusPatch, bool) {
	if len(log) == 0 {
		return domain.StatusPatch{}, false
	}
	last := log[len(log)-1]
	return domain.StatusPatch{Status: last.ToStatus, AdminNotes: last.Notes}, true
}
