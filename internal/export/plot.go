package export

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/gridspace/internal/grid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	edgeColor   = color.RGBA{R: 0x44, G: 0x44, B: 0x66, A: 0xff}
	centerColor = color.RGBA{R: 0x00, G: 0xcc, B: 0xff, A: 0xff}
)

// PlotPixelGrid renders the pixel boundaries and, for small grids, the
// pixel centers of g. The format follows the file extension of path.
func PlotPixelGrid[T grid.Float](g grid.PixelGrid[T], title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	xs, ys := g.XSpace(), g.YSpace()
	x0, x1 := float64(xs.Start()), float64(xs.End())
	y0, y1 := float64(ys.Start()), float64(ys.End())

	for _, x := range boundaries(xs) {
		if err := addLine(p, plotter.XYs{{X: x, Y: y0}, {X: x, Y: y1}}); err != nil {
			return err
		}
	}
	for _, y := range boundaries(ys) {
		if err := addLine(p, plotter.XYs{{X: x0, Y: y}, {X: x1, Y: y}}); err != nil {
			return err
		}
	}

	if g.TotalPixels() <= MaxCenterDots {
		pts := make(plotter.XYs, 0, g.TotalPixels())
		for _, row := range g.Centers() {
			for _, c := range row {
				pts = append(pts, plotter.XY{X: float64(c.X), Y: float64(c.Y)})
			}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("scatter: %w", err)
		}
		sc.GlyphStyle.Color = centerColor
		sc.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(sc)
	}

	aspect := math.Min(math.Max((y1-y0)/(x1-x0), 0.1), 4)
	return p.Save(6*vg.Inch, vg.Length(6*aspect)*vg.Inch, path)
}

// PlotLinearSpace renders the cell centers of s on a horizontal axis with a
// tick at every cell boundary.
func PlotLinearSpace[T grid.Float](s grid.LinearSpace[T], title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "position"
	p.Y.Min, p.Y.Max = -1, 1

	for _, x := range boundaries(s) {
		if err := addLine(p, plotter.XYs{{X: x, Y: -0.5}, {X: x, Y: 0.5}}); err != nil {
			return err
		}
	}

	centers := s.Grid()
	pts := make(plotter.XYs, len(centers))
	for i, c := range centers {
		pts[i] = plotter.XY{X: float64(c), Y: 0}
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	sc.GlyphStyle.Color = centerColor
	p.Add(sc)

	return p.Save(8*vg.Inch, 2*vg.Inch, path)
}

func boundaries[T grid.Float](s grid.LinearSpace[T]) []float64 {
	edges := s.Edges()
	out := make([]float64, 0, len(edges)+1)
	out = append(out, float64(edges[0].Start))
	for _, e := range edges {
		out = append(out, float64(e.End))
	}
	return out
}

func addLine(p *plot.Plot, pts plotter.XYs) error {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("line: %w", err)
	}
	l.LineStyle.Color = edgeColor
	l.LineStyle.Width = vg.Points(0.5)
	p.Add(l)
	return nil
}
