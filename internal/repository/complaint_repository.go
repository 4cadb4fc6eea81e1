package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fraud-desk/internal/domain"
	apperrors "github.com/spec-kit/fraud-desk/pkg/util/errorutil"
)

// ComplaintRepository is the complaint store: list everything, create from a
// validated draft, update status and notes together.
type ComplaintRepository interface {
	List(ctx context.Context) ([]domain.Complaint, error)
	Create(ctx context.Context, draft domain.ComplaintDraft) (*domain.Complaint, error)
	Update(ctx context.Context, id string, patch domain.StatusPatch) (*domain.Complaint, error)
}

const complaintColumns = `id, name, email, phone, country, scam_type, description,
               amount_lost, currency, status, admin_notes, created_at`

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates the postgres repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

func (r *complaintRepository) List(ctx context.Context) ([]domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints ORDER BY created_at DESC, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepository) Create(ctx context.Context, draft domain.ComplaintDraft) (*domain.Complaint, error) {
	query := `
        INSERT INTO complaints (name, email, phone, country, scam_type, description, amount_lost, currency, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING ` + complaintColumns

	scamType := draft.ScamType
	if scamType == "" {
		scamType = domain.DefaultScamType
	}
	row := r.pool.QueryRow(ctx, query,
		strings.TrimSpace(draft.Name),
		strings.TrimSpace(draft.Email),
		strings.TrimSpace(draft.Phone),
		strings.TrimSpace(draft.Country),
		scamType,
		strings.TrimSpace(draft.Description),
		draft.AmountLost,
		strings.ToUpper(strings.TrimSpace(draft.Currency)),
		domain.ComplaintStatusPending,
	)
	return scanComplaint(row)
}

func (r *complaintRepository) Update(ctx context.Context, id string, patch domain.StatusPatch) (*domain.Complaint, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
	}
	query := `
        UPDATE complaints SET status=$1, admin_notes=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING ` + complaintColumns

	complaint, err := scanComplaint(r.pool.QueryRow(ctx, query, patch.Status, patch.AdminNotes, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
		}
		return nil, fmt.Errorf("update complaint %s: %w", id, err)
	}
	return complaint, nil
}

func scanComplaint(row pgx.Row) (*domain.Complaint, error) {
	var c domain.Complaint
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Country,
		&c.ScamType,
		&c.Description,
		&c.AmountLost,
		&c.Currency,
		&c.Status,
		&c.AdminNotes,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	result := []domain.Complaint{}
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}
