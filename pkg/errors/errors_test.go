package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFound(t *testing.T) {
	err := NotFound("product", "p-42")

	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Contains(t, err.Message, "product")
	assert.Contains(t, err.Message, "p-42")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("quantity must be positive")

	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUnavailable(t *testing.T) {
	err := Unavailable("catalog backend unreachable")

	assert.Equal(t, "SERVICE_UNAVAILABLE", err.Code)
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestInternal_WrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal(cause)

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.ErrorIs(t, err, cause)
}

func TestAppError_ErrorString(t *testing.T) {
	err := NotFound("blog", "b-1")
	assert.Contains(t, err.Error(), "NOT_FOUND")

	bare := &AppError{Code: "X", Message: "y"}
	assert.Equal(t, "X: y", bare.Error())
}

func TestWrap_PreservesIdentity(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "get product")

	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Contains(t, wrapped.Error(), "get product")
}

func TestHTTPStatus_AppError(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("dup")))
}

func TestHTTPStatus_WrappedSentinels(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("get: %w", ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("parse: %w", ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("auth: %w", ErrUnauthorized), http.StatusUnauthorized},
		{fmt.Errorf("deny: %w", ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("save: %w", ErrConflict), http.StatusConflict},
		{fmt.Errorf("fetch: %w", ErrUnavailable), http.StatusServiceUnavailable},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, HTTPStatus(tt.err), "error: %v", tt.err)
	}
}
