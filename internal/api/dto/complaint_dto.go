package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/fraud-desk/internal/domain"
	"github.com/spec-kit/fraud-desk/internal/triage"
)

// Amount is a loss amount that accepts a JSON number, a numeric string, an
// empty string or null. Forms post the raw input text.
type Amount struct {
	Value *float64
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		a.Value = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			a.Value = nil
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("amount_lost: %q is not a number", s)
		}
		a.Value = &v
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("amount_lost: %w", err)
	}
	a.Value = &v
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*a.Value)
}

// ComplaintRequest is the public submission payload.
type ComplaintRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Country     string `json:"country"`
	ScamType    string `json:"scam_type"`
	Description string `json:"description"`
	AmountLost  Amount `json:"amount_lost"`
	Currency    string `json:"currency"`
}

// ToDraft converts the payload to a domain draft.
func (r ComplaintRequest) ToDraft() domain.ComplaintDraft {
	return domain.ComplaintDraft{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Country:     r.Country,
		ScamType:    domain.ScamType(r.ScamType),
		Description: r.Description,
		AmountLost:  r.AmountLost.Value,
		Currency:    r.Currency,
	}
}

// ComplaintRequestFromDraft builds the payload sent to a remote store.
func ComplaintRequestFromDraft(d domain.ComplaintDraft) ComplaintRequest {
	return ComplaintRequest{
		Name:        d.Name,
		Email:       d.Email,
		Phone:       d.Phone,
		Country:     d.Country,
		ScamType:    string(d.ScamType),
		Description: d.Description,
		AmountLost:  Amount{Value: d.AmountLost},
		Currency:    d.Currency,
	}
}

// ComplaintResponse is the stored complaint as exchanged with stores and clients.
type ComplaintResponse struct {
	ID          string                 `json:"_id"`
	Name        string                 `json:"name"`
	Email       string                 `json:"email"`
	Phone       string                 `json:"phone,omitempty"`
	Country     string                 `json:"country"`
	ScamType    domain.ScamType        `json:"scam_type"`
	Description string                 `json:"description"`
	AmountLost  *float64               `json:"amount_lost,omitempty"`
	Currency    string                 `json:"currency"`
	Status      domain.ComplaintStatus `json:"status"`
	AdminNotes  string                 `json:"admin_notes,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

// ComplaintResponseFrom converts a domain complaint.
func ComplaintResponseFrom(c domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Country:     c.Country,
		ScamType:    c.ScamType,
		Description: c.Description,
		AmountLost:  c.AmountLost,
		Currency:    c.Currency,
		Status:      c.Status,
		AdminNotes:  c.AdminNotes,
		CreatedAt:   c.CreatedAt,
	}
}

// ComplaintResponses converts a slice of domain complaints.
func ComplaintResponses(records []domain.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(records))
	for _, c := range records {
		out = append(out, ComplaintResponseFrom(c))
	}
	return out
}

// ToDomain converts the wire record back to the domain shape.
func (r ComplaintResponse) ToDomain() domain.Complaint {
	return domain.Complaint{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Country:     r.Country,
		ScamType:    r.ScamType,
		Description: r.Description,
		AmountLost:  r.AmountLost,
		Currency:    r.Currency,
		Status:      r.Status,
		AdminNotes:  r.AdminNotes,
		CreatedAt:   r.CreatedAt,
	}
}

// StatusUpdateRequest is the operator update. Both keys are required.
type StatusUpdateRequest struct {
	Status     *string `json:"status"`
	AdminNotes *string `json:"admin_notes"`
}

// TransitionResponse is one entry of a complaint's status log.
type TransitionResponse struct {
	ID         string                 `json:"id"`
	OperatorID string                 `json:"operator_id"`
	FromStatus domain.ComplaintStatus `json:"from_status"`
	ToStatus   domain.ComplaintStatus `json:"to_status"`
	Notes      string                 `json:"notes"`
	CreatedAt  time.Time              `json:"created_at"`
}

// TransitionResponses converts a transition log.
func TransitionResponses(entries []domain.StatusTransition) []TransitionResponse {
	out := make([]TransitionResponse, 0, len(entries))
	for _, t := range entries {
		out = append(out, TransitionResponse{
			ID:         t.ID,
			OperatorID: t.OperatorID,
			FromStatus: t.FromStatus,
			ToStatus:   t.ToStatus,
			Notes:      t.Notes,
			CreatedAt:  t.CreatedAt,
		})
	}
	return out
}

// ActivityResponse is a recent activity row.
type ActivityResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	ScamType  domain.ScamType `json:"scam_type"`
	CreatedAt time.Time       `json:"createdAt"`
}

// TypeShareResponse is one scam type bucket with its share of all complaints.
type TypeShareResponse struct {
	ScamType domain.ScamType `json:"scam_type"`
	Label    string          `json:"label"`
	Count    int             `json:"count"`
	Percent  float64         `json:"percent"`
}

// DashboardResponse carries the aggregate statistics.
type DashboardResponse struct {
	Total            int                 `json:"total"`
	Pending          int                 `json:"pending"`
	InReview         int                 `json:"in_review"`
	Resolved         int                 `json:"resolved"`
	Closed           int                 `json:"closed"`
	TotalAmount      float64             `json:"totalAmount"`
	AvgAmount        float64             `json:"avgAmount"`
	RecentActivity   []ActivityResponse  `json:"recentActivity"`
	TypeDistribution []TypeShareResponse `json:"typeDistribution"`
	RefreshedAt      time.Time           `json:"refreshedAt"`
}

// DashboardResponseFrom converts statistics.
func DashboardResponseFrom(stats triage.Stats, refreshedAt time.Time) DashboardResponse {
	resp := DashboardResponse{
		Total:            stats.Total,
		Pending:          stats.Pending,
		InReview:         stats.InReview,
		Resolved:         stats.Resolved,
		Closed:           stats.Closed,
		TotalAmount:      stats.TotalAmount,
		AvgAmount:        stats.AvgAmount,
		RecentActivity:   make([]ActivityResponse, 0, len(stats.RecentActivity)),
		TypeDistribution: make([]TypeShareResponse, 0, len(stats.TypeDistribution)),
		RefreshedAt:      refreshedAt,
	}
	for _, a := range stats.RecentActivity {
		resp.RecentActivity = append(resp.RecentActivity, ActivityResponse{
			ID:        a.ID,
			Name:      a.Name,
			ScamType:  a.ScamType,
			CreatedAt: a.CreatedAt,
		})
	}
	for _, tc := range stats.TypeDistribution {
		resp.TypeDistribution = append(resp.TypeDistribution, TypeShareResponse{
			ScamType: tc.ScamType,
			Label:    tc.ScamType.Label(),
			Count:    tc.Count,
			Percent:  triage.Share(tc.Count, stats.Total),
		})
	}
	return resp
}

// CurrencyResponse is one entry of the currency reference list.
type CurrencyResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
