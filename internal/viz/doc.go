// Package viz renders search results for the terminal.
//
//   - [PlotFunction]: asciigraph plot of f(x) with the located minimum marked
//   - [Summary]: bordered lipgloss panel with the headline numbers of a run
//   - [WidthSparkline]: interval widths per iteration on a log scale
//
// Colors come from a [Theme]; four are built in and [GetTheme] falls back to
// the default for unknown names.
package viz
