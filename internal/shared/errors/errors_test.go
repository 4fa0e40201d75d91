package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "not_found: user not found", NewNotFoundError("user not found").Error())
	assert.Equal(t, "validation_error: invalid form (name is required)",
		NewValidationError("invalid form", "name is required", "ignored").Error())
}

func TestAppError_Codes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code int
	}{
		{"validation", NewValidationError("bad"), http.StatusBadRequest},
		{"not found", NewNotFoundError("gone"), http.StatusNotFound},
		{"unauthorized", NewUnauthorizedError("who"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no"), http.StatusForbidden},
		{"internal", NewInternalError("oops"), http.StatusInternalServerError},
		{"bad request", NewBadRequestError("bad"), http.StatusBadRequest},
		{"rate limited", NewRateLimitedError("slow down"), http.StatusTooManyRequests},
		{"unknown type", New("teapot", "short and stout"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestGetAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("save user: %w", NewValidationError("name is required"))

	assert.NotNil(t, GetAppError(wrapped))
	assert.True(t, IsValidationError(wrapped))
	assert.False(t, IsValidationError(fmt.Errorf("save user: %w", NewNotFoundError("gone"))))
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}
