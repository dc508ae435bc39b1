package export

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/gridspace/internal/grid"
)

var ErrInvalidColor = errors.New("export: invalid color")

// MaxCenterDots caps how many pixel centers are drawn; larger grids are
// drawn as lines only.
const MaxCenterDots = 10000

// ParseColor accepts a #rgb or #rrggbb color and returns it as lowercase
// #rrggbb.
func ParseColor(s string) (string, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c.Hex(), nil
}

// PixelGridToSVG draws the pixel boundaries of g, and the pixel centers for
// small grids, scaled to the given width. Height follows the aspect ratio,
// clamped to 0.1..4 times the width. strokeColor must be #rgb or #rrggbb.
func PixelGridToSVG[T grid.Float](g grid.PixelGrid[T], width int, strokeColor string) (string, error) {
	if width <= 0 {
		return "", nil
	}
	stroke, err := colorful.Hex(strokeColor)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, strokeColor)
	}
	strokeColor = stroke.Hex()

	xs, ys := g.XSpace(), g.YSpace()
	minX, maxX := float64(xs.Start()), float64(xs.End())
	minY, maxY := float64(ys.Start()), float64(ys.End())
	rangeX := maxX - minX
	rangeY := maxY - minY

	aspect := math.Min(math.Max(rangeY/rangeX, 0.1), 4)
	height := max(int(float64(width)*aspect+0.5), 1)
	scaleX := float64(width) / rangeX
	scaleY := float64(height) / rangeY

	px := func(x float64) float64 { return (x - minX) * scaleX }
	py := func(y float64) float64 { return float64(height) - (y-minY)*scaleY }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="%s" stroke-width="0.5">
`, width, height, width, height, strokeColor))

	for i, e := range xs.Edges() {
		if i == 0 {
			writeLine(&sb, px(float64(e.Start)), 0, px(float64(e.Start)), float64(height))
		}
		writeLine(&sb, px(float64(e.End)), 0, px(float64(e.End)), float64(height))
	}
	for i, e := range ys.Edges() {
		if i == 0 {
			writeLine(&sb, 0, py(float64(e.Start)), float64(width), py(float64(e.Start)))
		}
		writeLine(&sb, 0, py(float64(e.End)), float64(width), py(float64(e.End)))
	}
	sb.WriteString("</g>\n")

	if g.TotalPixels() <= MaxCenterDots {
		// centers are drawn in a lighter tint of the stroke
		dot := stroke.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.4).Clamped().Hex()
		r := 0.15 * min(scaleX*float64(g.PixelSize().X), scaleY*float64(g.PixelSize().Y))
		sb.WriteString(fmt.Sprintf(`<g fill="%s">`+"\n", dot))
		for _, row := range g.Centers() {
			for _, c := range row {
				sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f"/>`+"\n",
					px(float64(c.X)), py(float64(c.Y)), r))
			}
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

func writeLine(sb *strings.Builder, x1, y1, x2, y2 float64) {
	sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f"/>`+"\n", x1, y1, x2, y2))
}
