package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Panel       lipgloss.Style
	Title       lipgloss.Style
	Subtle      lipgloss.Style
	MetricValue lipgloss.Style
	MetricLabel lipgloss.Style
	KeyHint     lipgloss.Style
	Highlight   lipgloss.Style
	StatusOK    lipgloss.Style
	StatusWarn  lipgloss.Style
	StatusError lipgloss.Style
)

func init() {
	applyTheme(CurrentTheme)
}

func applyTheme(t Theme) {
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	Subtle = lipgloss.NewStyle().
		Foreground(t.Muted)

	MetricValue = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	MetricLabel = lipgloss.NewStyle().
		Foreground(t.Muted)

	KeyHint = lipgloss.NewStyle().
		Foreground(t.Muted).
		Italic(true)

	Highlight = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	StatusOK = lipgloss.NewStyle().Bold(true).Foreground(t.Success)
	StatusWarn = lipgloss.NewStyle().Bold(true).Foreground(t.Warning)
	StatusError = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
}

// Metric renders a "label value" pair.
func Metric(label, value string) string {
	return MetricLabel.Render(label) + " " + MetricValue.Render(value)
}

// SparklineChart renders values as a one-line sparkline, sampled to width.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		result.WriteRune(chars[idx])
	}
	return Highlight.Render(result.String())
}

// BoxWithTitle renders content inside a bordered panel headed by title.
func BoxWithTitle(title, content string) string {
	return Panel.Render(Title.Render(title) + "\n" + content)
}
