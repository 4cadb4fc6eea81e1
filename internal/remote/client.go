// Package remote talks to a complaint store exposed over HTTP as
// GET /complaints, POST /complaints and PUT /complaints/{id}.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/fraud-desk/internal/api/dto"
	"github.com/spec-kit/fraud-desk/internal/domain"
	apperrors "github.com/spec-kit/fraud-desk/pkg/util/errorutil"
)

const maxErrorBody = 512

// Client is a ComplaintRepository backed by a remote JSON store.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a client for baseURL, for example https://store.example.com/api.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}
}

// List fetches every complaint in store order.
func (c *Client) List(ctx context.Context) ([]domain.Complaint, error) {
	var payload []dto.ComplaintResponse
	if err := c.do(ctx, "list", http.MethodGet, "/complaints", nil, &payload); err != nil {
		return nil, err
	}
	out := make([]domain.Complaint, 0, len(payload))
	for _, r := range payload {
		out = append(out, r.ToDomain())
	}
	return out, nil
}

// Create submits a validated draft; the store assigns id, status and creation time.
func (c *Client) Create(ctx context.Context, draft domain.ComplaintDraft) (*domain.Complaint, error) {
	var created dto.ComplaintResponse
	if err := c.do(ctx, "create", http.MethodPost, "/complaints", dto.ComplaintRequestFromDraft(draft), &created); err != nil {
		return nil, err
	}
	record := created.ToDomain()
	if record.Status == "" {
		record.Status = domain.ComplaintStatusPending
	}
	return &record, nil
}

// Update sends status and notes together.
func (c *Client) Update(ctx context.Context, id string, patch domain.StatusPatch) (*domain.Complaint, error) {
	status := string(patch.Status)
	notes := patch.AdminNotes
	body := dto.StatusUpdateRequest{Status: &status, AdminNotes: &notes}

	var updated dto.ComplaintResponse
	if err := c.do(ctx, "update", http.MethodPut, "/complaints/"+url.PathEscape(id), body, &updated); err != nil {
		return nil, err
	}
	record := updated.ToDomain()
	return &record, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.NewTransportError(op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("store call failed", zap.String("op", op), zap.Error(err))
		return apperrors.NewTransportError(op, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("store call",
		zap.String("op", op),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode == http.StatusNotFound && op == "update" {
		return apperrors.NewNotFound("complaint", map[string]any{"path": path})
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apperrors.NewTransportError(op, fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewTransportError(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
