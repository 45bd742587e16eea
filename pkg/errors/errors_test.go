package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPersistenceKeepsBackendMessage(t *testing.T) {
	backend := errors.New("connection refused")
	err := Persistence(backend, "create user")

	assert.Equal(t, ErrPersistence.Code, err.Code)
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)
	assert.Equal(t, "connection refused", err.Details)
	assert.ErrorIs(t, err, backend)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, "create user: connection refused", err.Error())
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	wrapped := fmt.Errorf("handler: %w", Clone(ErrNotFound, "student not found"))
	appErr := FromError(wrapped)
	assert.Equal(t, ErrNotFound.Code, appErr.Code)
	assert.Equal(t, "student not found", appErr.Message)

	plain := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
}

func TestCloneMatchesSentinel(t *testing.T) {
	clone := Clone(ErrUnauthorized, "session expired")
	assert.True(t, errors.Is(clone, ErrUnauthorized))
	assert.False(t, errors.Is(clone, ErrForbidden))
	assert.Equal(t, "unauthorized", ErrUnauthorized.Message)
}
