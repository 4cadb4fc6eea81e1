package triage

import (
	"context"
	"sync"
	"time"

	"github.com/spec-kit/fraud-desk/internal/domain"
)

// LoadFunc fetches the authoritative complaint list from the store.
type LoadFunc func(ctx context.Context) ([]domain.Complaint, error)

// Board is the operator's in-memory snapshot of the store. A refresh replaces
// it wholesale and an update patches one record by id. Every refresh is tagged
// with an increasing ticket so a response that resolves after a newer one was
// applied is dropped instead of overwriting fresher data.
type Board struct {
	mu          sync.RWMutex
	records     []domain.Complaint
	issued      uint64
	applied     uint64
	loaded      bool
	refreshedAt time.Time
	now         func() time.Time
}

// NewBoard returns an empty, unloaded board.
func NewBoard() *Board {
	return &Board{now: time.Now}
}

// Begin issues the ticket for a new refresh.
func (b *Board) Begin() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.issued++
	return b.issued
}

// Apply installs records fetched under ticket. It reports false and leaves the
// snapshot untouched when a newer ticket was applied first.
func (b *Board) Apply(ticket uint64, records []domain.Complaint) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ticket <= b.applied {
		return false
	}
	b.applied = ticket
	b.records = append([]domain.Complaint(nil), records...)
	b.loaded = true
	b.refreshedAt = b.now()
	return true
}

// Refresh loads the store list and applies it. When the response turns out to
// be stale the current snapshot is returned instead. A failed load keeps the
// previous snapshot.
func (b *Board) Refresh(ctx context.Context, load LoadFunc) ([]domain.Complaint, error) {
	ticket := b.Begin()
	records, err := load(ctx)
	if err != nil {
		return nil, err
	}
	b.Apply(ticket, records)
	return b.Snapshot(), nil
}

// Patch replaces the record with the same id. Refreshes issued before the
// patch can no longer be applied since they may predate the update. It reports
// false when the id is not on the board.
func (b *Board) Patch(updated domain.Complaint) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.applied = b.issued
	for i := range b.records {
		if b.records[i].ID == updated.ID {
			b.records[i] = updated
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the current records.
func (b *Board) Snapshot() []domain.Complaint {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]domain.Complaint(nil), b.records...)
}

// Find returns the record with id from the snapshot.
func (b *Board) Find(id string) (domain.Complaint, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, c := range b.records {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Complaint{}, false
}

// Loaded reports whether any refresh was applied yet.
func (b *Board) Loaded() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loaded
}

// RefreshedAt returns the time of the last applied refresh.
func (b *Board) RefreshedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.refreshedAt
}
