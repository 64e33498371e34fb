package myerrors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"invalid input", NewInvalidInputError(fmt.Errorf("missing state")), http.StatusBadRequest},
		{"invalid input formatted", NewInvalidInputErrorf("missing %s", "code"), http.StatusBadRequest},
		{"not authenticated", NewNotAuthenticatedError(fmt.Errorf("no token")), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError(fmt.Errorf("origin not allowed")), http.StatusForbidden},
		{"not found", NewNotFoundError(fmt.Errorf("no such bootcamp")), http.StatusNotFound},
		{"method not allowed", NewMethodNotAllowedError(fmt.Errorf("use POST")), http.StatusMethodNotAllowed},
		{"internal", NewInternalError(fmt.Errorf("upstream broke")), http.StatusInternalServerError},
		{"unavailable", NewUnavailableError(fmt.Errorf("down")), http.StatusServiceUnavailable},
		{"plain error", fmt.Errorf("anything"), http.StatusInternalServerError},
		{"nil", nil, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStatus, GetHTTPStatus(tc.err))
		})
	}
}

func TestErrorMessageKeepsCause(t *testing.T) {
	err := NewInvalidInputError(fmt.Errorf("state mismatch"))
	assert.Contains(t, err.Error(), "state mismatch")
	assert.Contains(t, err.Error(), "400")
}
