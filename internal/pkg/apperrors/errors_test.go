package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomError_Unwrap(t *testing.T) {
	err := NewNotFoundError("Club not found")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Club not found", err.Error())

	wrapped := fmt.Errorf("handling request: %w", err)
	assert.ErrorIs(t, wrapped, ErrNotFound)
}

func TestDevDetail(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError("Failed to create club", cause)
	assert.Equal(t, "connection refused", DevDetail(err))
	assert.Equal(t, "Failed to create club", err.Error())

	plain := NewValidationError("Club name cannot be empty")
	assert.Empty(t, DevDetail(plain))

	assert.Empty(t, DevDetail(errors.New("not a custom error")))
}

func TestWithDev(t *testing.T) {
	err := NewValidationError("Bad input").WithDev("field name was blank")
	assert.Equal(t, "field name was blank", DevDetail(err))
	assert.ErrorIs(t, err, ErrValidation)
}
