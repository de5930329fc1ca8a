// Package domain holds the error kinds shared by the physics packages.
package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when an input lies outside the domain of
	// an operation (non-positive mass, redshift below -1, ...). It is raised
	// before any computation proceeds.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrZeroAcceleration is returned when an enhancement ratio would divide
	// by a zero Newtonian acceleration.
	ErrZeroAcceleration = errors.New("newtonian acceleration is zero")
)

// InvalidArgumentError describes which input was rejected and why.
type InvalidArgumentError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s=%g: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrInvalidArgument.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// Invalid builds an InvalidArgumentError.
func Invalid(field string, value float64, reason string) error {
	return &InvalidArgumentError{Field: field, Value: value, Reason: reason}
}
