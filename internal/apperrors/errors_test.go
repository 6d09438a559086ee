package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		sentinel error
		status   int
	}{
		{"not found", NotFound("product"), ErrNotFound, http.StatusNotFound},
		{"validation", Validation(nil), ErrInvalidInput, http.StatusBadRequest},
		{"invalid input", InvalidInput("rating is required"), ErrInvalidInput, http.StatusBadRequest},
		{"duplicate review", DuplicateReview(), ErrDuplicateReview, http.StatusBadRequest},
		{"unauthorized", Unauthorized("no token"), ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden("seller not approved"), ErrForbidden, http.StatusForbidden},
		{"conflict", Conflict("stale write"), ErrConflict, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.status, tt.err.Status)

			wrapped := fmt.Errorf("service: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Same(t, tt.err, From(wrapped))
		})
	}
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "review not found", NotFound("review").Error())
}

func TestFromWrapsUnknownAsInternal(t *testing.T) {
	cause := errors.New("connection reset")
	appErr := From(cause)

	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, "internal server error", appErr.Message)
	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "connection reset")
}

func TestFields(t *testing.T) {
	fields := []FieldError{{Field: "name", Tag: "required", Message: "name is required"}}

	assert.Equal(t, fields, Fields(fmt.Errorf("wrap: %w", Validation(fields))))
	assert.Nil(t, Fields(NotFound("product")))
	assert.Nil(t, Fields(errors.New("plain")))
}
