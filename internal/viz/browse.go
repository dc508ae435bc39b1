package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/gridspace/internal/grid"
)

// Browser is an interactive bubbletea model that walks the cells of up to
// three axes.
type Browser struct {
	title    string
	axes     []grid.LinearSpace[float64]
	cursor   []int
	width    int
	quitting bool
}

// NewBrowser creates a browser over the given axes, in x, y, z order.
func NewBrowser(title string, axes ...grid.LinearSpace[float64]) Browser {
	if len(axes) > 3 {
		axes = axes[:3]
	}
	return Browser{
		title:  title,
		axes:   axes,
		cursor: make([]int, len(axes)),
		width:  80,
	}
}

// RunBrowser runs b until the user quits.
func RunBrowser(b Browser) error {
	_, err := tea.NewProgram(b).Run()
	return err
}

// Cursor returns the current cell index along each axis.
func (b Browser) Cursor() []int {
	out := make([]int, len(b.cursor))
	copy(out, b.cursor)
	return out
}

func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width = msg.Width
	}
	return b, nil
}

func (b Browser) handleKey(msg tea.KeyMsg) (Browser, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		b.quitting = true
		return b, tea.Quit
	case "left", "h":
		b = b.move(0, -1)
	case "right", "l":
		b = b.move(0, 1)
	case "down", "j":
		b = b.move(1, -1)
	case "up", "k":
		b = b.move(1, 1)
	case "pgdown", "-":
		b = b.move(2, -1)
	case "pgup", "+":
		b = b.move(2, 1)
	case "home", "0":
		b.cursor = make([]int, len(b.axes))
	case "end":
		for i, s := range b.axes {
			b.cursor[i] = s.NumPix() - 1
		}
	}
	return b, nil
}

func (b Browser) move(axis, delta int) Browser {
	if axis >= len(b.axes) {
		return b
	}
	cursor := b.Cursor()
	cursor[axis] = min(max(cursor[axis]+delta, 0), b.axes[axis].NumPix()-1)
	b.cursor = cursor
	return b
}

func (b Browser) View() string {
	if b.quitting {
		return ""
	}

	names := [...]string{"x", "y", "z"}
	rulerWidth := min(max(b.width-8, 10), 72)

	var sb strings.Builder
	sb.WriteString(Title.Render(b.title) + "\n\n")
	for i, s := range b.axes {
		idx := b.cursor[i]
		c, _ := s.At(idx)
		e, _ := s.EdgesAt(idx)
		sb.WriteString(fmt.Sprintf("%s  %s  %s  %s\n",
			Highlight.Render(names[i]),
			Metric("cell", fmt.Sprintf("%d/%d", idx, s.NumPix())),
			Metric("center", ftoa(c)),
			Metric("edges", fmt.Sprintf("[%s, %s]", ftoa(e.Start), ftoa(e.End))),
		))
		sb.WriteString("   " + Ruler(s, rulerWidth, idx) + "\n")
	}

	hints := []string{"←→ x"}
	if len(b.axes) > 1 {
		hints = append(hints, "↑↓ y")
	}
	if len(b.axes) > 2 {
		hints = append(hints, "pgup/pgdn z")
	}
	hints = append(hints, "home/end", "q quit")
	sb.WriteString("\n" + KeyHint.Render(strings.Join(hints, "  ")))
	return sb.String()
}
