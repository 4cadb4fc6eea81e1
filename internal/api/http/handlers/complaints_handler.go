package handlers

import (
	"bytes"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fraud-desk/internal/api/dto"
	"github.com/spec-kit/fraud-desk/internal/auth"
	"github.com/spec-kit/fraud-desk/internal/domain"
	"github.com/spec-kit/fraud-desk/internal/service"
	apperrors "github.com/spec-kit/fraud-desk/pkg/util/errorutil"
)

// ComplaintsHandler serves public intake and operator triage endpoints.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// Submit POST /api/complaints.
func (h *ComplaintsHandler) Submit(c *fiber.Ctx) error {
	var req dto.ComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	created, err := h.service.Submit(c.UserContext(), req.ToDraft())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ComplaintResponseFrom(*created)})
}

// List GET /api/complaints?status=&search=.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	records, err := h.service.List(c.UserContext(), c.Query("status"), c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ComplaintResponses(records)})
}

// Get GET /api/complaints/:id.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	record, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ComplaintResponseFrom(*record)})
}

// UpdateStatus PUT /api/complaints/:id.
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator session required")
	}
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	missing := map[string]any{}
	if req.Status == nil {
		missing["status"] = "Status is required"
	}
	if req.AdminNotes == nil {
		missing["admin_notes"] = "Admin notes are required"
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("status and admin_notes are required", missing)
	}

	updated, err := h.service.UpdateStatus(c.UserContext(), session.Operator, c.Params("id"), domain.ComplaintStatus(*req.Status), *req.AdminNotes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ComplaintResponseFrom(*updated)})
}

// History GET /api/complaints/:id/history.
func (h *ComplaintsHandler) History(c *fiber.Ctx) error {
	entries, err := h.service.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TransitionResponses(entries)})
}

// Export GET /api/complaints/export?status=&search=.
func (h *ComplaintsHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.Export(c.UserContext(), &buf, c.Query("status"), c.Query("search")); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="complaints.csv"`)
	return c.Send(buf.Bytes())
}

// Dashboard GET /api/dashboard.
func (h *ComplaintsHandler) Dashboard(c *fiber.Ctx) error {
	stats, refreshedAt, err := h.service.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DashboardResponseFrom(stats, refreshedAt)})
}
