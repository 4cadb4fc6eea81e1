package domain

import "time"

// ComplaintStatus enumerates triage states for complaints.
type ComplaintStatus string

const (
	ComplaintStatusPending  ComplaintStatus = "pending"
	ComplaintStatusInReview ComplaintStatus = "in_review"
	ComplaintStatusResolved ComplaintStatus = "resolved"
	ComplaintStatusClosed   ComplaintStatus = "closed"
)

// ComplaintStatuses lists every status in lifecycle order.
var ComplaintStatuses = []ComplaintStatus{
	ComplaintStatusPending,
	ComplaintStatusInReview,
	ComplaintStatusResolved,
	ComplaintStatusClosed,
}

// Valid reports whether s is one of the known statuses.
func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusInReview, ComplaintStatusResolved, ComplaintStatusClosed:
		return true
	}
	return false
}

// ScamType classifies the kind of fraud reported.
type ScamType string

const (
	ScamTypeCrypto      ScamType = "crypto"
	ScamTypeTransaction ScamType = "transaction"
	ScamTypeGiftCard    ScamType = "gift_card"
	ScamTypeOther       ScamType = "other"
)

// DefaultScamType is applied when a submission leaves the type blank.
const DefaultScamType = ScamTypeCrypto

// Valid reports whether t is one of the known scam types.
func (t ScamType) Valid() bool {
	switch t {
	case ScamTypeCrypto, ScamTypeTransaction, ScamTypeGiftCard, ScamTypeOther:
		return true
	}
	return false
}

// Label returns the human readable name of the scam type.
func (t ScamType) Label() string {
	switch t {
	case ScamTypeCrypto:
		return "Cryptocurrency"
	case ScamTypeTransaction:
		return "Transaction"
	case ScamTypeGiftCard:
		return "Gift Card"
	case ScamTypeOther:
		return "Other"
	}
	return string(t)
}

// ComplaintDraft is a citizen submission that has not been stored yet.
type ComplaintDraft struct {
	Name        string
	Email       string
	Phone       string
	Country     string
	ScamType    ScamType
	Description string
	AmountLost  *float64
	Currency    string
}

// Complaint is the stored fraud report.
type Complaint struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Country     string
	ScamType    ScamType
	Description string
	AmountLost  *float64
	Currency    string
	Status      ComplaintStatus
	AdminNotes  string
	CreatedAt   time.Time
}

// Amount returns the reported loss, treating an absent value as zero.
func (c Complaint) Amount() float64 {
	if c.AmountLost == nil {
		return 0
	}
	return *c.AmountLost
}

// StatusPatch is the operator update; status and notes always travel together.
type StatusPatch struct {
	Status     ComplaintStatus
	AdminNotes string
}
