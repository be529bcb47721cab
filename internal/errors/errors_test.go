package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("get category 7: %w", ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"user not found", ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"not a visitor", ErrNotVisitor, http.StatusNotFound, "NOT_A_VISITOR"},
		{"username taken", ErrUsernameTaken, http.StatusBadRequest, "USERNAME_TAKEN"},
		{"bad credentials", ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"bad phone", ErrInvalidPhone, http.StatusBadRequest, "INVALID_TELEPHONE"},
		{"id mismatch", ErrIDMismatch, http.StatusBadRequest, "ID_MISMATCH"},
		{"deleted", ErrEntityDeleted, http.StatusBadRequest, "RECORD_DELETED"},
		{"conflict", ErrConflict, http.StatusConflict, "CONFLICT"},
		{"unknown", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.code, httpErr.ToErrorResponse().Code)
		})
	}
}

func TestMapErrorToHTTP_HidesInfrastructureDetail(t *testing.T) {
	httpErr := MapErrorToHTTP(errors.New("Error 1213: Deadlock found when trying to get lock"))

	assert.Equal(t, "internal server error", httpErr.Message)
	assert.False(t, IsDomain(errors.New("boom")))
	assert.True(t, IsDomain(ErrNotVisitor))
}
