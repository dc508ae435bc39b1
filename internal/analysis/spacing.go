package analysis

import (
	"math"

	"github.com/san-kum/gridspace/internal/grid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultTolerance is the relative tolerance used by the consistency checks,
// scaled by the total size of the space.
const DefaultTolerance = 1e-6

// SpacingReport summarizes how evenly a linear space is tiled once its values
// have been computed in floating point.
type SpacingReport struct {
	NumPix    int
	PixelSize float64

	// Successive differences between cell centers.
	MeanStep float64
	StdStep  float64
	MinStep  float64
	MaxStep  float64

	// MaxDrift is max |step - PixelSize|.
	MaxDrift float64
	// MaxGap is max |Edges()[i].End - Edges()[i+1].Start|.
	MaxGap float64
	// MaxCenterOffset is max |Grid()[i] - Edges()[i].Midpoint()|.
	MaxCenterOffset float64
	// BoundsError is the distance of the first and last edges from the
	// declared outer bounds, whichever is larger.
	BoundsError float64

	Tolerance  float64
	Consistent bool
}

// Centers returns the grid of s as float64.
func Centers[T grid.Float](s grid.LinearSpace[T]) []float64 {
	g := s.Grid()
	out := make([]float64, len(g))
	for i, v := range g {
		out[i] = float64(v)
	}
	return out
}

// Steps returns the successive differences of the cell centers.
func Steps[T grid.Float](s grid.LinearSpace[T]) []float64 {
	c := Centers(s)
	if len(c) < 2 {
		return nil
	}
	out := make([]float64, len(c)-1)
	floats.SubTo(out, c[1:], c[:len(c)-1])
	return out
}

// Spacing checks a linear space for even tiling. relTol is scaled by the
// space's size; a non-positive value selects DefaultTolerance.
func Spacing[T grid.Float](s grid.LinearSpace[T], relTol float64) SpacingReport {
	if relTol <= 0 {
		relTol = DefaultTolerance
	}
	ps := float64(s.PixelSize())
	r := SpacingReport{
		NumPix:    s.NumPix(),
		PixelSize: ps,
		MeanStep:  ps,
		MinStep:   ps,
		MaxStep:   ps,
		Tolerance: relTol * float64(s.Size()),
	}

	if steps := Steps(s); len(steps) > 0 {
		r.MinStep = floats.Min(steps)
		r.MaxStep = floats.Max(steps)
		if len(steps) > 1 {
			r.MeanStep, r.StdStep = stat.MeanStdDev(steps, nil)
		} else {
			r.MeanStep = steps[0]
		}
		r.MaxDrift = math.Max(math.Abs(r.MinStep-ps), math.Abs(r.MaxStep-ps))
	}

	centers := Centers(s)
	edges := s.Edges()
	for i, e := range edges {
		mid := float64(e.Midpoint())
		r.MaxCenterOffset = math.Max(r.MaxCenterOffset, math.Abs(centers[i]-mid))
		if i < len(edges)-1 {
			r.MaxGap = math.Max(r.MaxGap, math.Abs(float64(e.End)-float64(edges[i+1].Start)))
		}
	}
	r.BoundsError = math.Max(
		math.Abs(float64(edges[0].Start)-float64(s.Start())),
		math.Abs(float64(edges[len(edges)-1].End)-float64(s.End())),
	)

	r.Consistent = r.MaxDrift <= r.Tolerance &&
		r.MaxGap <= r.Tolerance &&
		r.MaxCenterOffset <= r.Tolerance &&
		r.BoundsError <= r.Tolerance
	return r
}

// Equivalent reports whether two spaces have the same cell count and the
// same centers and edges within tol.
func Equivalent[T grid.Float](a, b grid.LinearSpace[T], tol float64) bool {
	if a.NumPix() != b.NumPix() {
		return false
	}
	if !floats.EqualApprox(Centers(a), Centers(b), tol) {
		return false
	}
	return floats.EqualApprox(edgeBounds(a), edgeBounds(b), tol)
}

func edgeBounds[T grid.Float](s grid.LinearSpace[T]) []float64 {
	edges := s.Edges()
	out := make([]float64, 0, 2*len(edges))
	for _, e := range edges {
		out = append(out, float64(e.Start), float64(e.End))
	}
	return out
}

// Float32Error returns the largest absolute difference between the centers
// of s and of the same space computed in single precision.
func Float32Error(s grid.LinearSpace[float64]) (float64, error) {
	s32, err := grid.FromCenterSize(float32(s.Center()), float32(s.Size()), s.NumPix())
	if err != nil {
		return 0, err
	}
	return floats.Distance(Centers(s), Centers(s32), math.Inf(1)), nil
}
