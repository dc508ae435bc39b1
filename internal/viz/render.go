package viz

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/san-kum/gridspace/internal/analysis"
	"github.com/san-kum/gridspace/internal/grid"
)

// MaxListedCenters is the largest cell count whose centers are listed in full.
const MaxListedCenters = 12

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}

// Ruler draws the interval of s on one line of the given width. Boundaries
// are drawn when there is room for them; cell mark, if in range, is drawn
// as a filled dot.
func Ruler[T grid.Float](s grid.LinearSpace[T], width, mark int) string {
	if width < 2 {
		return ""
	}
	buf := []rune(strings.Repeat("─", width))
	start, end := float64(s.Start()), float64(s.End())
	pos := func(x float64) int {
		p := int(math.Round((x - start) / (end - start) * float64(width-1)))
		return min(max(p, 0), width-1)
	}

	if 2*s.NumPix() <= width {
		for i, e := range s.Edges() {
			buf[pos(float64(e.End))] = '┼'
			buf[pos(float64(e.Midpoint()))] = '·'
			if i == 0 {
				buf[pos(float64(e.Start))] = '├'
			}
		}
	}
	buf[0] = '├'
	buf[width-1] = '┤'

	if c, err := s.At(mark); err == nil {
		buf[pos(float64(c))] = '●'
	}
	return string(buf)
}

// RenderLinearSpace renders a summary panel for one linear space.
func RenderLinearSpace[T grid.Float](title string, s grid.LinearSpace[T]) string {
	var sb strings.Builder
	sb.WriteString(Metric("center    ", ftoa(float64(s.Center()))) + "\n")
	sb.WriteString(Metric("size      ", ftoa(float64(s.Size()))) + "\n")
	sb.WriteString(Metric("cells     ", strconv.Itoa(s.NumPix())) + "\n")
	sb.WriteString(Metric("pixel size", ftoa(float64(s.PixelSize()))) + "\n")
	sb.WriteString(Metric("bounds    ", fmt.Sprintf("[%s, %s]", ftoa(float64(s.Start())), ftoa(float64(s.End())))) + "\n\n")
	sb.WriteString(Ruler(s, 60, -1))

	if s.NumPix() <= MaxListedCenters {
		centers := make([]string, s.NumPix())
		for i, c := range s.Grid() {
			centers[i] = ftoa(float64(c))
		}
		sb.WriteString("\n" + Subtle.Render("centers: "+strings.Join(centers, ", ")))
	}
	return BoxWithTitle(title, sb.String())
}

func axisTable[T grid.Float](axes ...grid.LinearSpace[T]) string {
	names := [...]string{"x", "y", "z"}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(Subtle).
		Headers("axis", "center", "size", "cells", "pixel size", "start", "end")
	for i, s := range axes {
		t.Row(
			names[i],
			ftoa(float64(s.Center())),
			ftoa(float64(s.Size())),
			strconv.Itoa(s.NumPix()),
			ftoa(float64(s.PixelSize())),
			ftoa(float64(s.Start())),
			ftoa(float64(s.End())),
		)
	}
	return t.String()
}

// RenderPixelGrid renders a per-axis table and the total pixel count.
func RenderPixelGrid[T grid.Float](title string, g grid.PixelGrid[T]) string {
	content := axisTable(g.XSpace(), g.YSpace()) + "\n" +
		Metric("total pixels", strconv.Itoa(g.TotalPixels()))
	return BoxWithTitle(title, content)
}

// RenderVoxelGrid renders a per-axis table and the total voxel count.
func RenderVoxelGrid[T grid.Float](title string, g grid.VoxelGrid[T]) string {
	content := axisTable(g.XSpace(), g.YSpace(), g.ZSpace()) + "\n" +
		Metric("total voxels", strconv.Itoa(g.TotalVoxels()))
	return BoxWithTitle(title, content)
}

// RenderSpacing renders a spacing report with a pass/fail status line.
func RenderSpacing(title string, r analysis.SpacingReport) string {
	status := StatusOK.Render("consistent")
	if !r.Consistent {
		status = StatusError.Render("inconsistent")
	}

	var sb strings.Builder
	sb.WriteString(Metric("status        ", status) + "\n")
	sb.WriteString(Metric("cells         ", strconv.Itoa(r.NumPix)) + "\n")
	sb.WriteString(Metric("pixel size    ", ftoa(r.PixelSize)) + "\n")
	sb.WriteString(Metric("mean step     ", ftoa(r.MeanStep)) + "\n")
	sb.WriteString(Metric("step std dev  ", ftoa(r.StdStep)) + "\n")
	sb.WriteString(Metric("step range    ", fmt.Sprintf("[%s, %s]", ftoa(r.MinStep), ftoa(r.MaxStep))) + "\n")
	sb.WriteString(Metric("max drift     ", ftoa(r.MaxDrift)) + "\n")
	sb.WriteString(Metric("max edge gap  ", ftoa(r.MaxGap)) + "\n")
	sb.WriteString(Metric("center offset ", ftoa(r.MaxCenterOffset)) + "\n")
	sb.WriteString(Metric("bounds error  ", ftoa(r.BoundsError)) + "\n")
	sb.WriteString(Metric("tolerance     ", ftoa(r.Tolerance)))
	return BoxWithTitle(title, sb.String())
}
