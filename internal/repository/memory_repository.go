package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/fraud-desk/internal/domain"
	apperrors "github.com/spec-kit/fraud-desk/pkg/util/errorutil"
)

// InMemoryComplaints is a process local complaint store, newest first.
type InMemoryComplaints struct {
	mu      sync.RWMutex
	records []domain.Complaint
	now     func() time.Time
}

// NewInMemoryComplaints creates an empty store.
func NewInMemoryComplaints() *InMemoryComplaints {
	return &InMemoryComplaints{now: time.Now}
}

func (s *InMemoryComplaints) List(_ context.Context) ([]domain.Complaint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Complaint, len(s.records))
	for i, c := range s.records {
		out[len(s.records)-1-i] = c
	}
	return out, nil
}

func (s *InMemoryComplaints) Create(_ context.Context, draft domain.ComplaintDraft) (*domain.Complaint, error) {
	scamType := draft.ScamType
	if scamType == "" {
		scamType = domain.DefaultScamType
	}
	var amount *float64
	if draft.AmountLost != nil {
		v := *draft.AmountLost
		amount = &v
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := s.now().UTC()
	if n := len(s.records); n > 0 && created.Before(s.records[n-1].CreatedAt) {
		created = s.records[n-1].CreatedAt
	}
	c := domain.Complaint{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(draft.Name),
		Email:       strings.TrimSpace(draft.Email),
		Phone:       strings.TrimSpace(draft.Phone),
		Country:     strings.TrimSpace(draft.Country),
		ScamType:    scamType,
		Description: strings.TrimSpace(draft.Description),
		AmountLost:  amount,
		Currency:    strings.ToUpper(strings.TrimSpace(draft.Currency)),
		Status:      domain.ComplaintStatusPending,
		CreatedAt:   created,
	}
	s.records = append(s.records, c)
	return &c, nil
}

func (s *InMemoryComplaints) Update(_ context.Context, id string, patch domain.StatusPatch) (*domain.Complaint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Status = patch.Status
			s.records[i].AdminNotes = patch.AdminNotes
			c := s.records[i]
			return &c, nil
		}
	}
	return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
}

// InMemoryTransitions is a process local transition log.
type InMemoryTransitions struct {
	mu      sync.RWMutex
	entries map[string][]domain.StatusTransition
	now     func() time.Time
}

// NewInMemoryTransitions creates an empty log.
func NewInMemoryTransitions() *InMemoryTransitions {
	return &InMemoryTransitions{entries: make(map[string][]domain.StatusTransition), now: time.Now}
}

func (s *InMemoryTransitions) Append(_ context.Context, transition *domain.StatusTransition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	transition.ID = uuid.NewString()
	if transition.CreatedAt.IsZero() {
		transition.CreatedAt = s.now().UTC()
	}
	s.entries[transition.ComplaintID] = append(s.entries[transition.ComplaintID], *transition)
	return nil
}

func (s *InMemoryTransitions) ListByComplaint(_ context.Context, complaintID string) ([]domain.StatusTransition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.StatusTransition{}, s.entries[complaintID]...), nil
}
