package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidArgumentError(t *testing.T) {
	err := Invalid("mass", -1, "must be positive")

	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, errors.Is(err, ErrZeroAcceleration))
	assert.Equal(t, "invalid argument mass=-1: must be positive", err.Error())

	wrapped := fmt.Errorf("failed to compute collapse: %w", err)
	assert.True(t, errors.Is(wrapped, ErrInvalidArgument))

	var iae *InvalidArgumentError
	require.True(t, errors.As(wrapped, &iae))
	assert.Equal(t, "mass", iae.Field)
	assert.Equal(t, float64(-1), iae.Value)
}
