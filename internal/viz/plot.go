package viz

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/gridspace/internal/analysis"
	"github.com/san-kum/gridspace/internal/grid"
)

// PlotCenters plots the cell centers of s against their index.
func PlotCenters[T grid.Float](s grid.LinearSpace[T], width, height int) string {
	centers := analysis.Centers(s)
	if len(centers) < 2 {
		return Subtle.Render("single cell at " + ftoa(centers[0]))
	}
	return asciigraph.Plot(centers,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("cell centers"),
	)
}

// PlotSpacing plots how far each center-to-center step deviates from the
// nominal pixel size.
func PlotSpacing[T grid.Float](s grid.LinearSpace[T], width, height int) string {
	steps := analysis.Steps(s)
	if len(steps) == 0 {
		return Subtle.Render("single cell, no spacing to plot")
	}

	ps := float64(s.PixelSize())
	drift := make([]float64, len(steps))
	flat := true
	for i, d := range steps {
		drift[i] = d - ps
		if drift[i] != drift[0] {
			flat = false
		}
	}
	if flat {
		return Subtle.Render("constant spacing, drift " + ftoa(drift[0]))
	}

	return asciigraph.Plot(drift,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("step - pixel size"),
	)
}
