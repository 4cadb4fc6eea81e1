package service

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/fraud-desk/internal/domain"
	"github.com/spec-kit/fraud-desk/internal/events"
	"github.com/spec-kit/fraud-desk/internal/observability"
	"github.com/spec-kit/fraud-desk/internal/repository"
	"github.com/spec-kit/fraud-desk/internal/triage"
	apperrors "github.com/spec-kit/fraud-desk/pkg/util/errorutil"
)

// CurrencyTable supplies the currency reference used during validation.
type CurrencyTable interface {
	Table(ctx context.Context) map[string]string
}

// ComplaintService coordinates intake and triage workflows.
type ComplaintService struct {
	complaints  repository.ComplaintRepository
	transitions repository.TransitionRepository
	board       *triage.Board
	currencies  CurrencyTable
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// ComplaintDependencies bundles collaborators for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo  repository.ComplaintRepository
	TransitionRepo repository.TransitionRepository
	Board          *triage.Board
	Currencies     CurrencyTable
	Dispatcher     events.Dispatcher
	Metrics        *observability.Metrics
	Logger         *zap.Logger
}

// NewComplaintService builds the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	board := deps.Board
	if board == nil {
		board = triage.NewBoard()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplaintService{
		complaints:  deps.ComplaintRepo,
		transitions: deps.TransitionRepo,
		board:       board,
		currencies:  deps.Currencies,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Submit validates a public submission and persists it as a pending complaint.
func (s *ComplaintService) Submit(ctx context.Context, draft domain.ComplaintDraft) (*domain.Complaint, error) {
	clean, fieldErrs := triage.Validate(draft, s.currencyTable(ctx))
	if !fieldErrs.Empty() {
		fields := make([]string, 0, len(fieldErrs))
		for field := range fieldErrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		s.metrics.RecordRejection(fields)
		return nil, apperrors.NewValidationError("complaint validation failed", fieldErrs.Details())
	}

	created, err := s.complaints.Create(ctx, clean)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordSubmission(string(created.ScamType))
	s.logger.Info("complaint submitted",
		zap.String("complaint_id", created.ID),
		zap.String("scam_type", string(created.ScamType)))
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintSubmitted,
		ComplaintID: created.ID,
		Payload: events.ComplaintSubmittedPayload{
			ScamType:   created.ScamType,
			Country:    created.Country,
			Currency:   created.Currency,
			AmountLost: created.Amount(),
		},
	})
	return created, nil
}

// List refreshes the board and returns the operator view for status and search.
func (s *ComplaintService) List(ctx context.Context, status, search string) ([]domain.Complaint, error) {
	if err := validateStatusFilter(status); err != nil {
		return nil, err
	}
	records, err := s.refresh(ctx)
	if err != nil {
		return nil, err
	}
	return triage.Filter(records, status, search), nil
}

// Get returns one complaint, refreshing the board when it is not on it yet.
func (s *ComplaintService) Get(ctx context.Context, id string) (*domain.Complaint, error) {
	if s.board.Loaded() {
		if c, ok := s.board.Find(id); ok {
			return &c, nil
		}
	}
	if _, err := s.refresh(ctx); err != nil {
		return nil, err
	}
	c, ok := s.board.Find(id)
	if !ok {
		return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
	}
	return &c, nil
}

// UpdateStatus applies an operator decision. Status and notes are written
// together and the notes always replace the previous ones. The previous status
// is read from a fresh store list so the log reflects changes made by other
// operators. Once the store accepted the update the call succeeds; a failed
// log append is logged and counted but does not undo it.
func (s *ComplaintService) UpdateStatus(ctx context.Context, operator, id string, status domain.ComplaintStatus, notes string) (*domain.Complaint, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": "Invalid status"})
	}

	if _, err := s.refresh(ctx); err != nil {
		return nil, err
	}
	current, ok := s.board.Find(id)
	if !ok {
		return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
	}

	_, transition, err := triage.SetStatus(current, status, notes, operator, s.now().UTC())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), map[string]any{"status": err.Error()})
	}

	updated, err := s.complaints.Update(ctx, id, domain.StatusPatch{Status: status, AdminNotes: notes})
	if err != nil {
		return nil, err
	}
	s.board.Patch(*updated)

	if err := s.recordTransition(ctx, &transition); err != nil {
		s.metrics.RecordAuditFailure()
		s.logger.Error("status transition not logged",
			zap.String("complaint_id", id),
			zap.String("from", string(transition.FromStatus)),
			zap.String("to", string(transition.ToStatus)),
			zap.Error(err))
	}

	s.metrics.RecordTransition(string(transition.FromStatus), string(transition.ToStatus))
	s.logger.Info("complaint status changed",
		zap.String("complaint_id", id),
		zap.String("operator", operator),
		zap.String("from", string(transition.FromStatus)),
		zap.String("to", string(transition.ToStatus)))
	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: id,
		Operator:    operator,
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus: transition.FromStatus,
			NewStatus: transition.ToStatus,
			Notes:     notes,
		},
	})
	return updated, nil
}

// History returns the transition log of a complaint, oldest first.
func (s *ComplaintService) History(ctx context.Context, id string) ([]domain.StatusTransition, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if s.transitions == nil {
		return []domain.StatusTransition{}, nil
	}
	return s.transitions.ListByComplaint(ctx, id)
}

// Dashboard refreshes the board and aggregates the full, unfiltered collection.
func (s *ComplaintService) Dashboard(ctx context.Context) (triage.Stats, time.Time, error) {
	records, err := s.refresh(ctx)
	if err != nil {
		return triage.Stats{}, time.Time{}, err
	}
	return triage.Summarize(records), s.board.RefreshedAt(), nil
}

// ExportColumns is the header row of the CSV export.
var ExportColumns = []string{
	"id", "created_at", "name", "email", "phone", "country", "scam_type",
	"description", "amount_lost", "currency", "status", "admin_notes",
}

// Export writes the filtered operator view as CSV.
func (s *ComplaintService) Export(ctx context.Context, w io.Writer, status, search string) error {
	records, err := s.List(ctx, status, search)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return err
	}
	for _, c := range records {
		amount := ""
		if c.AmountLost != nil {
			amount = strconv.FormatFloat(*c.AmountLost, 'f', -1, 64)
		}
		row := []string{
			c.ID,
			c.CreatedAt.UTC().Format(time.RFC3339),
			c.Name,
			c.Email,
			c.Phone,
			c.Country,
			string(c.ScamType),
			c.Description,
			amount,
			c.Currency,
			string(c.Status),
			c.AdminNotes,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *ComplaintService) refresh(ctx context.Context) ([]domain.Complaint, error) {
	ticket := s.board.Begin()
	records, err := s.complaints.List(ctx)
	if err != nil {
		s.logger.Warn("complaint refresh failed", zap.Error(err))
		return nil, err
	}
	if !s.board.Apply(ticket, records) {
		s.metrics.RecordStaleRefresh()
		s.logger.Debug("discarded stale complaint refresh", zap.Uint64("ticket", ticket))
	}
	return s.board.Snapshot(), nil
}

func (s *ComplaintService) currencyTable(ctx context.Context) map[string]string {
	if s.currencies == nil {
		return nil
	}
	return s.currencies.Table(ctx)
}

func (s *ComplaintService) recordTransition(ctx context.Context, transition *domain.StatusTransition) error {
	if s.transitions == nil {
		return nil
	}
	return s.transitions.Append(ctx, transition)
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handlers failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func validateStatusFilter(status string) error {
	if status == "" || status == triage.StatusAll || domain.ComplaintStatus(status).Valid() {
		return nil
	}
	return apperrors.NewValidationError("invalid status filter", map[string]any{"status": "Invalid status"})
}
