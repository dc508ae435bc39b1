package grid

import "fmt"

// PixelGrid is a 2D grid made of two independent linear spaces. Each axis
// may have its own center, size and pixel count.
type PixelGrid[T Float] struct {
	xSpace LinearSpace[T]
	ySpace LinearSpace[T]
}

// NewPixelGrid creates a grid of the given size centered at position with
// numPix cells per axis. The first failing axis (x, then y) is returned
// unchanged.
func NewPixelGrid[T Float](size, position Vec2[T], numPix Vec2[int]) (PixelGrid[T], error) {
	x, err := FromCenterSize(position.X, size.X, numPix.X)
	if err != nil {
		return PixelGrid[T]{}, err
	}
	y, err := FromCenterSize(position.Y, size.Y, numPix.Y)
	if err != nil {
		return PixelGrid[T]{}, err
	}
	return PixelGrid[T]{xSpace: x, ySpace: y}, nil
}

// PixelGridFromSpaces combines two existing axes.
func PixelGridFromSpaces[T Float](x, y LinearSpace[T]) PixelGrid[T] {
	return PixelGrid[T]{xSpace: x, ySpace: y}
}

func (g PixelGrid[T]) XSpace() LinearSpace[T] { return g.xSpace }
func (g PixelGrid[T]) YSpace() LinearSpace[T] { return g.ySpace }

// SetXSpace replaces the x axis. An invalid space (such as the zero value)
// is rejected and the grid is left unchanged.
func (g *PixelGrid[T]) SetXSpace(s LinearSpace[T]) error {
	if err := checkSpace(s); err != nil {
		return err
	}
	g.xSpace = s
	return nil
}

// SetYSpace replaces the y axis, with the same checks as SetXSpace.
func (g *PixelGrid[T]) SetYSpace(s LinearSpace[T]) error {
	if err := checkSpace(s); err != nil {
		return err
	}
	g.ySpace = s
	return nil
}

// Size returns the extent along each axis.
func (g PixelGrid[T]) Size() Vec2[T] {
	return Vec2[T]{X: g.xSpace.Size(), Y: g.ySpace.Size()}
}

// Position returns the center of the grid.
func (g PixelGrid[T]) Position() Vec2[T] {
	return Vec2[T]{X: g.xSpace.Center(), Y: g.ySpace.Center()}
}

// NumPix returns the pixel count along each axis.
func (g PixelGrid[T]) NumPix() Vec2[int] {
	return Vec2[int]{X: g.xSpace.NumPix(), Y: g.ySpace.NumPix()}
}

// TotalPixels returns NumPix().X * NumPix().Y.
func (g PixelGrid[T]) TotalPixels() int {
	return g.xSpace.NumPix() * g.ySpace.NumPix()
}

// PixelSize returns the width of one pixel along each axis.
func (g PixelGrid[T]) PixelSize() Vec2[T] {
	return Vec2[T]{X: g.xSpace.PixelSize(), Y: g.ySpace.PixelSize()}
}

// CenterAt returns the center of pixel (ix, iy).
func (g PixelGrid[T]) CenterAt(ix, iy int) (Vec2[T], error) {
	x, err := g.xSpace.At(ix)
	if err != nil {
		return Vec2[T]{}, err
	}
	y, err := g.ySpace.At(iy)
	if err != nil {
		return Vec2[T]{}, err
	}
	return Vec2[T]{X: x, Y: y}, nil
}

// Centers returns every pixel center, indexed [iy][ix].
func (g PixelGrid[T]) Centers() [][]Vec2[T] {
	xs := g.xSpace.Grid()
	ys := g.ySpace.Grid()
	out := make([][]Vec2[T], len(ys))
	for j, y := range ys {
		row := make([]Vec2[T], len(xs))
		for i, x := range xs {
			row[i] = Vec2[T]{X: x, Y: y}
		}
		out[j] = row
	}
	return out
}

func (g PixelGrid[T]) String() string {
	return fmt.Sprintf("PixelGrid{x=%v y=%v}", g.xSpace, g.ySpace)
}
