package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fraud-desk/internal/api/dto"
	"github.com/spec-kit/fraud-desk/internal/auth"
	"github.com/spec-kit/fraud-desk/internal/service"
	apperrors "github.com/spec-kit/fraud-desk/pkg/util/errorutil"
)

// AuthHandler manages operator sessions.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}
	token, session, err := h.service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SessionResponse{
		Token:     token,
		Operator:  session.Operator,
		ExpiresAt: session.ExpiresAt,
	}})
}

// Logout POST /api/auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("operator session required")
	}
	if err := h.service.Logout(c.UserContext(), *session); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
