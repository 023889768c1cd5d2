package core

import (
	"errors"
)

var (
	// ErrConstruction is returned when a vector or matrix is built from the wrong number of values.
	ErrConstruction = errors.New("wrong number of values for construction")
	// ErrDimensionMismatch is returned by vector operations between different dimensionalities.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrOutOfRange is returned when an interpolation factor is outside [0, 1].
	ErrOutOfRange = errors.New("value out of range")
	// ErrLookup is returned when a named resource has not been registered.
	ErrLookup = errors.New("unknown resource")
)
