package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"domain error passes through", NewValidationError("bad", nil), CodeValidationFailed, http.StatusBadRequest},
		{"wrapped domain error", fmt.Errorf("ctx: %w", NewNotFound("complaint", nil)), CodeNotFound, http.StatusNotFound},
		{"pgx no rows", pgx.ErrNoRows, CodeNotFound, http.StatusNotFound},
		{"fiber error", fiber.NewError(http.StatusTooManyRequests, "slow down"), CodeRateLimited, http.StatusTooManyRequests},
		{"transport", NewTransportError("list", errors.New("dial tcp")), CodeStoreUnavailable, http.StatusBadGateway},
		{"anything else", errors.New("boom"), CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			assert.Equal(t, tt.code, de.Code)
			assert.Equal(t, tt.status, de.HTTPStatus)
		})
	}
	assert.Nil(t, ToDomainError(nil))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("complaint", nil)))
	assert.True(t, IsNotFound(fmt.Errorf("update: %w", ErrNotFound)))
	assert.True(t, IsNotFound(pgx.ErrNoRows))
	assert.False(t, IsNotFound(errors.New("other")))
}
