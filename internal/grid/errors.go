package grid

import (
	"errors"
	"fmt"
)

// Domain errors for grid construction and access.
var (
	// ErrInvalidRange indicates an edge-based construction with to <= from.
	ErrInvalidRange = errors.New("grid: invalid range (end must be greater than start)")

	// ErrInvalidDimension indicates a non-positive size or pixel count.
	ErrInvalidDimension = errors.New("grid: invalid dimension (size and pixel count must be positive)")

	// ErrIndexOutOfRange indicates an indexed access outside [0, numPix).
	ErrIndexOutOfRange = errors.New("grid: index out of range")
)

// RangeError records the bounds of a rejected edge-based construction.
type RangeError struct {
	From float64
	To   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v: from=%g to=%g", ErrInvalidRange, e.From, e.To)
}

func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

// DimensionError records which field was rejected and the offending value.
type DimensionError struct {
	Field string
	Value float64
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%v: %s=%g", ErrInvalidDimension, e.Field, e.Value)
}

func (e *DimensionError) Unwrap() error {
	return ErrInvalidDimension
}

// IndexError records a rejected cell index.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%v: index %d not in [0, %d)", ErrIndexOutOfRange, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
