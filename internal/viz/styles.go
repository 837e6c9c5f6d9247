package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from one Theme.
type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style
	Panel  lipgloss.Style
	Header lipgloss.Style
	Good   lipgloss.Style
	Warn   lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Label: lipgloss.NewStyle().Foreground(t.Muted),
		Value: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Muted: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Error: lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		Good: lipgloss.NewStyle().Foreground(t.Success),
		Warn: lipgloss.NewStyle().Foreground(t.Warning),
	}
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline maps values onto eight bar heights, resampled to width columns.
// NaN values are drawn as spaces.
func Sparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	rng := hi - lo
	if rng == 0 || math.IsInf(rng, 0) {
		rng = 1
	}

	cols := width
	if len(values) < cols {
		cols = len(values)
	}
	var sb strings.Builder
	for i := 0; i < cols; i++ {
		v := values[i*len(values)/cols]
		if math.IsNaN(v) {
			sb.WriteRune(' ')
			continue
		}
		idx := int((v - lo) / rng * float64(len(sparkChars)-1))
		idx = max(0, min(idx, len(sparkChars)-1))
		sb.WriteRune(sparkChars[idx])
	}
	return sb.String()
}

// WidthSparkline draws interval widths on a log scale, where the geometric
// shrinkage of the search reads as a straight ramp.
func WidthSparkline(widths []float64, width int) string {
	logs := make([]float64, len(widths))
	for i, w := range widths {
		if w > 0 {
			logs[i] = math.Log10(w)
		} else {
			logs[i] = math.NaN()
		}
	}
	return Sparkline(logs, width)
}

// Separator is a muted horizontal rule with a centered diamond.
func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.Muted.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return s.Muted.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
