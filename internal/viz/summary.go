package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fibsearch/internal/fibsearch"
)

// Summary renders the headline numbers of a run as a bordered panel.
func Summary(res *fibsearch.Result, theme Theme) string {
	s := NewStyles(theme)

	rows := [][2]string{
		{"function", res.Expr},
		{"interval", fmt.Sprintf("[%g, %g]", res.A, res.B)},
		{"tolerance", fmt.Sprintf("%g", res.Tolerance)},
		{"iterations", fmt.Sprintf("%d", res.Iterations)},
		{"evaluations", fmt.Sprintf("%d", res.Evaluations)},
		{"x*", fmt.Sprintf("%.8f", res.Minimizer)},
		{"f(x*)", fmt.Sprintf("%.8f", res.Minimum)},
		{"final width", fmt.Sprintf("%.3e", res.FinalWidth())},
	}

	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, len(r[0]))
	}
	label := s.Label.Width(labelWidth + 2)

	lines := make([]string, 0, len(rows)+3)
	lines = append(lines, s.Title.Render("Fibonacci search"))
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, label.Render(r[0]), s.Value.Render(r[1])))
	}
	lines = append(lines, "", s.Label.Render("width ")+s.Good.Render(WidthSparkline(res.Widths(), 40)))

	return s.Panel.Render(strings.Join(lines, "\n"))
}

// Failure renders an error in the theme's error style.
func Failure(err error, theme Theme) string {
	s := NewStyles(theme)
	return s.Panel.BorderForeground(theme.Error).Render(s.Error.Render("search failed") + "\n" + err.Error())
}
