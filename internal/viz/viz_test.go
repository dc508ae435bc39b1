package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gridspace/internal/analysis"
	"github.com/san-kum/gridspace/internal/grid"
)

func TestRuler(t *testing.T) {
	s, err := grid.FromEdges(0.0, 4.0, 4)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		width int
		mark  int
		want  string
	}{
		{"cells", 9, -1, "├·┼·┼·┼·┤"},
		{"marked", 9, 1, "├·┼●┼·┼·┤"},
		{"mark out of range", 9, 4, "├·┼·┼·┼·┤"},
		{"too narrow for cells", 5, -1, "├───┤"},
		{"degenerate width", 1, -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ruler(s, tt.width, tt.mark); got != tt.want {
				t.Errorf("Ruler() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderLinearSpace(t *testing.T) {
	s, _ := grid.FromEdges(-1.0, 1.0, 10)
	out := RenderLinearSpace("unit", s)

	for _, want := range []string{"unit", "pixel size", "0.2", "centers:", "-0.9"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	many, _ := grid.FromEdges(0.0, 1.0, 100)
	if strings.Contains(RenderLinearSpace("many", many), "centers:") {
		t.Error("large spaces should not list every center")
	}
}

func TestRenderGrids(t *testing.T) {
	p, _ := grid.NewPixelGrid(grid.Vec2[float64]{X: 4, Y: 2}, grid.Vec2[float64]{}, grid.Vec2[int]{X: 8, Y: 5})
	out := RenderPixelGrid("screen", p)
	if !strings.Contains(out, "total pixels") || !strings.Contains(out, "40") {
		t.Errorf("pixel grid output missing totals:\n%s", out)
	}

	v, _ := grid.NewVoxelGrid(grid.Vec3[float32]{X: 1, Y: 1, Z: 1}, grid.Vec3[float32]{}, grid.Vec3[int]{X: 2, Y: 3, Z: 4})
	out = RenderVoxelGrid("cube", v)
	if !strings.Contains(out, "total voxels") || !strings.Contains(out, "24") {
		t.Errorf("voxel grid output missing totals:\n%s", out)
	}
}

func TestRenderSpacing(t *testing.T) {
	s, _ := grid.FromEdges(-1.0, 1.0, 10)
	out := RenderSpacing("check", analysis.Spacing(s, 0))
	if !strings.Contains(out, "consistent") || strings.Contains(out, "inconsistent") {
		t.Errorf("expected a consistent report:\n%s", out)
	}

	bad := analysis.SpacingReport{Consistent: false}
	if !strings.Contains(RenderSpacing("check", bad), "inconsistent") {
		t.Error("expected an inconsistent status")
	}
}

func TestPlots(t *testing.T) {
	s, _ := grid.FromEdges(-1.0, 1.0, 10)
	if out := PlotCenters(s, 40, 5); !strings.Contains(out, "cell centers") {
		t.Errorf("missing caption:\n%s", out)
	}

	exact, _ := grid.FromEdges(0.0, 4.0, 4)
	if out := PlotSpacing(exact, 40, 5); !strings.Contains(out, "constant spacing") {
		t.Errorf("exact spacing should not be plotted:\n%s", out)
	}

	one, _ := grid.FromEdges(0.0, 1.0, 1)
	if out := PlotCenters(one, 40, 5); !strings.Contains(out, "single cell") {
		t.Errorf("unexpected single-cell output: %s", out)
	}
}

func TestSparklineChart(t *testing.T) {
	if got := SparklineChart(nil, 4); got != "────" {
		t.Errorf("empty sparkline = %q", got)
	}
	out := SparklineChart([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	if !strings.Contains(out, "▁") || !strings.Contains(out, "█") {
		t.Errorf("sparkline should span the full range: %q", out)
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme(ThemeCyberpunk.Name)

	SetTheme("ocean")
	if CurrentTheme.Name != "ocean" {
		t.Errorf("expected ocean theme, got %s", CurrentTheme.Name)
	}
	SetTheme("nonexistent")
	if CurrentTheme.Name != ThemeCyberpunk.Name {
		t.Errorf("unknown theme should fall back to default, got %s", CurrentTheme.Name)
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("ThemeNames() length mismatch")
	}
}

func press(b Browser, keys ...tea.KeyMsg) Browser {
	for _, k := range keys {
		m, _ := b.Update(k)
		b = m.(Browser)
	}
	return b
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowser(t *testing.T) {
	x, _ := grid.FromEdges(0.0, 3.0, 3)
	y, _ := grid.FromEdges(0.0, 2.0, 2)
	b := NewBrowser("grid", x, y)

	b = press(b, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	if got := b.Cursor(); got[0] != 2 || got[1] != 0 {
		t.Errorf("cursor after moving right = %v, want [2 0]", got)
	}

	b = press(b, tea.KeyMsg{Type: tea.KeyUp}, runes("h"))
	if got := b.Cursor(); got[0] != 1 || got[1] != 1 {
		t.Errorf("cursor = %v, want [1 1]", got)
	}

	// No z axis: z movement is ignored.
	b = press(b, tea.KeyMsg{Type: tea.KeyPgUp})
	if got := b.Cursor(); len(got) != 2 {
		t.Errorf("unexpected cursor length %d", len(got))
	}

	view := b.View()
	if !strings.Contains(view, "1.5") || !strings.Contains(view, "[1, 2]") {
		t.Errorf("view should show the current cell:\n%s", view)
	}

	b = press(b, tea.KeyMsg{Type: tea.KeyHome})
	if got := b.Cursor(); got[0] != 0 || got[1] != 0 {
		t.Errorf("cursor after home = %v", got)
	}

	m, cmd := b.Update(runes("q"))
	if cmd == nil {
		t.Error("q should return a quit command")
	}
	if m.(Browser).View() != "" {
		t.Error("view should be empty after quitting")
	}
}
