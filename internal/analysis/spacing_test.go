package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/gridspace/internal/grid"
)

func TestSpacing_Uniform(t *testing.T) {
	s, err := grid.FromEdges(-1.0, 1.0, 10)
	if err != nil {
		t.Fatal(err)
	}

	r := Spacing(s, 0)
	if !r.Consistent {
		t.Errorf("expected consistent tiling, got %+v", r)
	}
	if r.NumPix != 10 {
		t.Errorf("NumPix = %d, want 10", r.NumPix)
	}
	if math.Abs(r.MeanStep-0.2) > 1e-12 {
		t.Errorf("MeanStep = %v, want 0.2", r.MeanStep)
	}
	if r.StdStep > 1e-12 {
		t.Errorf("StdStep = %v, want ~0", r.StdStep)
	}
	if r.Tolerance != 2e-6 {
		t.Errorf("Tolerance = %v, want 2e-6", r.Tolerance)
	}
}

func TestSpacing_LargeOffset(t *testing.T) {
	s, err := grid.FromEdges(1000000.0, 1000008.0, 14)
	if err != nil {
		t.Fatal(err)
	}

	r := Spacing(s, 1e-6)
	if !r.Consistent {
		t.Errorf("expected consistent tiling, got %+v", r)
	}
	if math.Abs(r.MeanStep-8.0/14) > 1e-5 {
		t.Errorf("MeanStep = %v, want %v", r.MeanStep, 8.0/14)
	}
}

func TestSpacing_SingleCell(t *testing.T) {
	s, _ := grid.FromCenterSize(3.0, 2.0, 1)

	r := Spacing(s, 0)
	if r.MeanStep != 2 || r.MinStep != 2 || r.MaxStep != 2 {
		t.Errorf("single cell should report PixelSize as its step: %+v", r)
	}
	if !r.Consistent {
		t.Error("single cell should be consistent")
	}
}

func TestSteps(t *testing.T) {
	s, _ := grid.FromEdges(0.0, 4.0, 4)
	steps := Steps(s)
	if len(steps) != 3 {
		t.Fatalf("len(Steps) = %d, want 3", len(steps))
	}
	for i, d := range steps {
		if d != 1 {
			t.Errorf("step %d = %v, want 1", i, d)
		}
	}

	one, _ := grid.FromEdges(0.0, 4.0, 1)
	if Steps(one) != nil {
		t.Error("single cell should have no steps")
	}
}

func TestEquivalent(t *testing.T) {
	a, _ := grid.FromEdges(3.0, 17.0, 9)
	b, _ := grid.FromCenterSize(10.0, 14.0, 9)
	if !Equivalent(a, b, 1e-9) {
		t.Error("edge and center/size construction should be equivalent")
	}

	c, _ := grid.FromCenterSize(10.0, 14.0, 10)
	if Equivalent(a, c, 1e-9) {
		t.Error("different cell counts must not be equivalent")
	}

	d, _ := grid.FromCenterSize(10.5, 14.0, 9)
	if Equivalent(a, d, 1e-9) {
		t.Error("shifted space must not be equivalent")
	}
}

func TestFloat32Error(t *testing.T) {
	small, _ := grid.FromEdges(-1.0, 1.0, 10)
	errSmall, err := Float32Error(small)
	if err != nil {
		t.Fatal(err)
	}
	if errSmall > 1e-6 {
		t.Errorf("float32 error near the origin = %v, want < 1e-6", errSmall)
	}

	far, _ := grid.FromEdges(1000000.0, 1000008.0, 14)
	errFar, err := Float32Error(far)
	if err != nil {
		t.Fatal(err)
	}
	if errFar <= errSmall {
		t.Errorf("float32 error far from the origin (%v) should exceed %v", errFar, errSmall)
	}
}
