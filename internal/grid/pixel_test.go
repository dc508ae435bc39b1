package grid

import (
	"errors"
	"testing"
)

func TestNewPixelGrid(t *testing.T) {
	g, err := NewPixelGrid(
		Vec2[float64]{X: 4, Y: 2},
		Vec2[float64]{X: 1, Y: -1},
		Vec2[int]{X: 8, Y: 5},
	)
	if err != nil {
		t.Fatal(err)
	}

	if got := g.Size(); got != (Vec2[float64]{X: 4, Y: 2}) {
		t.Errorf("Size() = %v", got)
	}
	if got := g.Position(); got != (Vec2[float64]{X: 1, Y: -1}) {
		t.Errorf("Position() = %v", got)
	}
	if got := g.NumPix(); got != (Vec2[int]{X: 8, Y: 5}) {
		t.Errorf("NumPix() = %v", got)
	}
	if got := g.TotalPixels(); got != 40 {
		t.Errorf("TotalPixels() = %d, want 40", got)
	}
	if got := g.PixelSize(); got != (Vec2[float64]{X: 0.5, Y: 0.4}) {
		t.Errorf("PixelSize() = %v", got)
	}
}

func TestNewPixelGrid_AxisFailure(t *testing.T) {
	tests := []struct {
		name   string
		size   Vec2[float64]
		numPix Vec2[int]
		field  string
	}{
		{"x size", Vec2[float64]{X: 0, Y: 1}, Vec2[int]{X: 2, Y: 2}, "size"},
		{"y count", Vec2[float64]{X: 1, Y: 1}, Vec2[int]{X: 2, Y: 0}, "numPix"},
		{"x reported first", Vec2[float64]{X: -1, Y: 1}, Vec2[int]{X: 2, Y: 0}, "size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPixelGrid(tt.size, Vec2[float64]{}, tt.numPix)
			var dimErr *DimensionError
			if !errors.As(err, &dimErr) {
				t.Fatalf("expected *DimensionError, got %v", err)
			}
			if dimErr.Field != tt.field {
				t.Errorf("field = %q, want %q", dimErr.Field, tt.field)
			}
		})
	}
}

func TestPixelGrid_Centers(t *testing.T) {
	x, _ := FromEdges(0.0, 3.0, 3)
	y, _ := FromEdges(0.0, 2.0, 2)
	g := PixelGridFromSpaces(x, y)

	centers := g.Centers()
	if len(centers) != 2 || len(centers[0]) != 3 {
		t.Fatalf("Centers() shape = %dx%d, want 2x3", len(centers), len(centers[0]))
	}
	if centers[1][2] != (Vec2[float64]{X: 2.5, Y: 1.5}) {
		t.Errorf("centers[1][2] = %v", centers[1][2])
	}

	c, err := g.CenterAt(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if c != centers[1][2] {
		t.Errorf("CenterAt(2, 1) = %v, want %v", c, centers[1][2])
	}

	if _, err := g.CenterAt(3, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("CenterAt(3, 0): got %v", err)
	}
	if _, err := g.CenterAt(0, 2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("CenterAt(0, 2): got %v", err)
	}
}

func TestPixelGrid_SetAxes(t *testing.T) {
	g, err := NewPixelGrid(Vec2[float64]{X: 4, Y: 2}, Vec2[float64]{}, Vec2[int]{X: 8, Y: 5})
	if err != nil {
		t.Fatal(err)
	}

	x, err := FromEdges(0.0, 10.0, 20)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.SetXSpace(x); err != nil {
		t.Fatal(err)
	}
	if got := g.NumPix(); got != (Vec2[int]{X: 20, Y: 5}) {
		t.Errorf("NumPix() = %v after SetXSpace", got)
	}
	if got := g.Position(); got != (Vec2[float64]{X: 5, Y: 0}) {
		t.Errorf("Position() = %v after SetXSpace", got)
	}

	// adjusting a copy leaves the grid untouched until it is set back
	y := g.YSpace()
	if err := y.SetNumPix(10); err != nil {
		t.Fatal(err)
	}
	if g.NumPix().Y != 5 {
		t.Error("YSpace() should return a copy")
	}
	if err := g.SetYSpace(y); err != nil {
		t.Fatal(err)
	}
	if g.TotalPixels() != 200 {
		t.Errorf("TotalPixels() = %d, want 200", g.TotalPixels())
	}

	if err := g.SetYSpace(LinearSpace[float64]{}); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("zero space: got %v, want ErrInvalidDimension", err)
	}
	if g.TotalPixels() != 200 {
		t.Error("failed set should leave the grid unchanged")
	}
}
