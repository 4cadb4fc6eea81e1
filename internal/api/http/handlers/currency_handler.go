package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/fraud-desk/internal/api/dto"
	"github.com/spec-kit/fraud-desk/internal/currency"
	apperrors "github.com/spec-kit/fraud-desk/pkg/util/errorutil"
)

// CurrencyLister lists the supported currencies.
type CurrencyLister interface {
	List(ctx context.Context) ([]currency.Currency, error)
}

// CurrencyHandler exposes the currency reference used by the intake form.
type CurrencyHandler struct {
	currencies CurrencyLister
}

// NewCurrencyHandler constructs handler.
func NewCurrencyHandler(currencies CurrencyLister) *CurrencyHandler {
	return &CurrencyHandler{currencies: currencies}
}

// List GET /api/currencies.
func (h *CurrencyHandler) List(c *fiber.Ctx) error {
	list, err := h.currencies.List(c.UserContext())
	if err != nil {
		return apperrors.NewReferenceUnavailable("currency list", err)
	}
	items := make([]dto.CurrencyResponse, 0, len(list))
	for _, cur := range list {
		items = append(items, dto.CurrencyResponse{Code: cur.Code, Name: cur.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}
