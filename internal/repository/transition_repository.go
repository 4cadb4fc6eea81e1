package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fraud-desk/internal/domain"
)

// TransitionRepository stores the append-only status log of complaints.
type TransitionRepository interface {
	Append(ctx context.Context, transition *domain.StatusTransition) error
	ListByComplaint(ctx context.Context, complaintID string) ([]domain.StatusTransition, error)
}

type transitionRepository struct {
	pool *pgxpool.Pool
}

// NewTransitionRepository builds the postgres repository.
func NewTransitionRepository(pool *pgxpool.Pool) TransitionRepository {
	return &transitionRepository{pool: pool}
}

func (r *transitionRepository) Append(ctx context.Context, transition *domain.StatusTransition) error {
	const query = `
        INSERT INTO complaint_transitions (complaint_id, operator_id, from_status, to_status, notes)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		transition.ComplaintID,
		transition.OperatorID,
		transition.FromStatus,
		transition.ToStatus,
		transition.Notes,
	).Scan(&transition.ID, &transition.CreatedAt)
}

func (r *transitionRepository) ListByComplaint(ctx context.Context, complaintID string) ([]domain.StatusTransition, error) {
	const query = `
        SELECT id, complaint_id, operator_id, from_status, to_status, notes, created_at
        FROM complaint_transitions WHERE complaint_id=$1 ORDER BY created_at ASC, id`
	rows, err := r.pool.Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.StatusTransition{}
	for rows.Next() {
		var t domain.StatusTransition
		if err := rows.Scan(
			&t.ID,
			&t.ComplaintID,
			&t.OperatorID,
			&t.FromStatus,
			&t.ToStatus,
			&t.Notes,
			&t.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
