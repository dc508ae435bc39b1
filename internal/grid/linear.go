package grid

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Float is the element type constraint for grid coordinates.
type Float interface {
	constraints.Float
}

// Edge is the pair of boundaries of a single cell. Start < End for every
// cell of a valid linear space.
type Edge[T Float] struct {
	Start T
	End   T
}

// Midpoint returns the center of the cell.
func (e Edge[T]) Midpoint() T {
	return (e.Start + e.End) / 2
}

// Width returns End - Start.
func (e Edge[T]) Width() T {
	return e.End - e.Start
}

// LinearSpace is a one-dimensional interval of length size centered at
// center and partitioned into numPix equal-width cells. Units are left to the
// caller.
//
// The zero value is not a valid LinearSpace; use [FromEdges] or
// [FromCenterSize].
type LinearSpace[T Float] struct {
	size   T
	center T
	numPix int
}

// FromEdges creates a LinearSpace spanning [from, to] with numPoints cells.
// The returned [LinearSpace.Grid] does not contain from or to: those are the
// outer edges, and the grid holds cell centers.
func FromEdges[T Float](from, to T, numPoints int) (LinearSpace[T], error) {
	if !(to > from) {
		return LinearSpace[T]{}, &RangeError{From: float64(from), To: float64(to)}
	}
	if err := checkNumPix(numPoints); err != nil {
		return LinearSpace[T]{}, err
	}
	size := to - from
	if err := checkSize(size); err != nil {
		return LinearSpace[T]{}, err
	}
	return LinearSpace[T]{
		size:   size,
		center: (from + to) / 2,
		numPix: numPoints,
	}, nil
}

// FromCenterSize creates a LinearSpace of total length size around center,
// split into numPoints cells.
func FromCenterSize[T Float](center, size T, numPoints int) (LinearSpace[T], error) {
	if err := checkSize(size); err != nil {
		return LinearSpace[T]{}, err
	}
	if err := checkNumPix(numPoints); err != nil {
		return LinearSpace[T]{}, err
	}
	if err := checkCenter(center); err != nil {
		return LinearSpace[T]{}, err
	}
	return LinearSpace[T]{
		size:   size,
		center: center,
		numPix: numPoints,
	}, nil
}

func checkSize[T Float](size T) error {
	f := float64(size)
	// !(size > 0) also rejects NaN.
	if !(size > 0) || math.IsInf(f, 0) {
		return &DimensionError{Field: "size", Value: f}
	}
	return nil
}

func checkNumPix(n int) error {
	if n <= 0 {
		return &DimensionError{Field: "numPix", Value: float64(n)}
	}
	return nil
}

// checkSpace rejects spaces not built by a constructor, such as the zero
// value.
func checkSpace[T Float](s LinearSpace[T]) error {
	if err := checkSize(s.size); err != nil {
		return err
	}
	if err := checkNumPix(s.numPix); err != nil {
		return err
	}
	return checkCenter(s.center)
}

func checkCenter[T Float](center T) error {
	f := float64(center)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &DimensionError{Field: "center", Value: f}
	}
	return nil
}

// Size returns the total length of the interval.
func (s LinearSpace[T]) Size() T { return s.size }

// Center returns the midpoint of the interval.
func (s LinearSpace[T]) Center() T { return s.center }

// NumPix returns the number of cells.
func (s LinearSpace[T]) NumPix() int { return s.numPix }

// PixelSize returns the width of one cell, size / numPix.
func (s LinearSpace[T]) PixelSize() T {
	return s.size / T(s.numPix)
}

// Start returns the outer lower edge, center - size/2.
func (s LinearSpace[T]) Start() T {
	return s.center - s.size/2
}

// End returns the outer upper edge, center + size/2.
func (s LinearSpace[T]) End() T {
	return s.center + s.size/2
}

// Bounds returns the outer edges of the whole interval.
func (s LinearSpace[T]) Bounds() Edge[T] {
	return Edge[T]{Start: s.Start(), End: s.End()}
}

// SetSize changes the total length. A non-positive or non-finite size is
// rejected and the space is left unchanged.
func (s *LinearSpace[T]) SetSize(size T) error {
	if err := checkSize(size); err != nil {
		return err
	}
	s.size = size
	return nil
}

// SetNumPix changes the cell count. A non-positive count is rejected and the
// space is left unchanged.
func (s *LinearSpace[T]) SetNumPix(n int) error {
	if err := checkNumPix(n); err != nil {
		return err
	}
	s.numPix = n
	return nil
}

// SetCenter moves the interval.
func (s *LinearSpace[T]) SetCenter(center T) error {
	if err := checkCenter(center); err != nil {
		return err
	}
	s.center = center
	return nil
}

// centerOf and edgeOf are shared by the slice and indexed accessors so both
// produce bit-identical values.
func (s LinearSpace[T]) centerOf(i int) T {
	return s.center - s.size/2 + s.PixelSize()/2 + T(i)*s.PixelSize()
}

func (s LinearSpace[T]) edgeOf(i int) Edge[T] {
	start := s.center - s.size/2
	ps := s.PixelSize()
	return Edge[T]{
		Start: start + T(i)*ps,
		End:   start + T(i+1)*ps,
	}
}

// Grid returns the cell centers in ascending order. A new slice is built on
// every call.
func (s LinearSpace[T]) Grid() []T {
	out := make([]T, s.numPix)
	for i := range out {
		out[i] = s.centerOf(i)
	}
	return out
}

// Edges returns the boundaries of every cell in ascending order. Adjacent
// cells share a boundary: Edges()[i].End == Edges()[i+1].Start.
func (s LinearSpace[T]) Edges() []Edge[T] {
	out := make([]Edge[T], s.numPix)
	for i := range out {
		out[i] = s.edgeOf(i)
	}
	return out
}

// At returns the center of cell i, equal to Grid()[i].
func (s LinearSpace[T]) At(i int) (T, error) {
	if err := s.checkIndex(i); err != nil {
		return 0, err
	}
	return s.centerOf(i), nil
}

// EdgesAt returns the boundaries of cell i, equal to Edges()[i].
func (s LinearSpace[T]) EdgesAt(i int) (Edge[T], error) {
	if err := s.checkIndex(i); err != nil {
		return Edge[T]{}, err
	}
	return s.edgeOf(i), nil
}

func (s LinearSpace[T]) checkIndex(i int) error {
	if i < 0 || i >= s.numPix {
		return &IndexError{Index: i, Len: s.numPix}
	}
	return nil
}

// Index returns the cell containing x. Cells are half-open [start, end)
// except the last, which also holds End(). ok is false when x lies outside
// the interval.
func (s LinearSpace[T]) Index(x T) (idx int, ok bool) {
	start := s.Start()
	if !(x >= start && x <= s.End()) {
		return -1, false
	}
	idx = int((x - start) / s.PixelSize())
	if idx >= s.numPix {
		idx = s.numPix - 1
	}
	// Division can land one cell off near a boundary.
	if idx > 0 && x < s.edgeOf(idx).Start {
		idx--
	} else if idx < s.numPix-1 && x >= s.edgeOf(idx).End {
		idx++
	}
	return idx, true
}

func (s LinearSpace[T]) String() string {
	return fmt.Sprintf("LinearSpace{center=%g size=%g numPix=%d}", float64(s.center), float64(s.size), s.numPix)
}
