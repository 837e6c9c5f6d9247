package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fibsearch/internal/export"
	"github.com/san-kum/fibsearch/internal/expr"
	"github.com/san-kum/fibsearch/internal/fibsearch"
	"github.com/san-kum/fibsearch/internal/viz"
)

type Page int

const (
	PageSummary Page = iota
	PageIterations
	PagePlot
	PageReport
	pageCount
)

var pageTitles = [pageCount]string{"Summary", "Iterations", "Plot", "Report"}

func (p Page) String() string {
	if p < 0 || p >= pageCount {
		return "Page(" + strconv.Itoa(int(p)) + ")"
	}
	return pageTitles[p]
}

const (
	defaultWidth  = 100
	defaultHeight = 30
	chromeHeight  = 5
)

// Model browses one finished run. All state lives in the value; View only
// reads it.
type Model struct {
	result *fibsearch.Result
	theme  viz.Theme
	styles viz.Styles
	plot   string

	page         Page
	table        table.Model
	reportOffset int

	keys KeyMap
	help help.Model

	width, height int
}

type Option func(*Model)

// WithTheme selects the color theme.
func WithTheme(t viz.Theme) Option {
	return func(m *Model) { m.theme = t }
}

// WithObjective sets the function drawn on the plot page. Without it the
// result's expression text is parsed.
func WithObjective(f fibsearch.Objective) Option {
	return func(m *Model) { m.plot = renderPlot(m.result, f) }
}

func NewModel(res *fibsearch.Result, opts ...Option) Model {
	m := Model{
		result: res,
		theme:  viz.ThemeDefault,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.styles = viz.NewStyles(m.theme)

	if m.plot == "" {
		if e, err := expr.Parse(res.Expr); err == nil {
			m.plot = renderPlot(res, e)
		} else {
			m.plot = fmt.Sprintf("cannot plot %q: %v", res.Expr, err)
		}
	}

	m.table = table.New(
		table.WithColumns(traceColumns()),
		table.WithRows(traceRows(res.Trace)),
		table.WithFocused(true),
		table.WithHeight(m.bodyHeight()),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(m.theme.Primary)
	styles.Selected = styles.Selected.Foreground(m.theme.Text).Background(m.theme.Border)
	m.table.SetStyles(styles)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Page() Page { return m.page }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(m.bodyHeight())
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Next):
		m.page = (m.page + 1) % pageCount
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		m.page = (m.page + pageCount - 1) % pageCount
		return m, nil
	case key.Matches(msg, m.keys.Summary):
		m.page = PageSummary
		return m, nil
	case key.Matches(msg, m.keys.Table):
		m.page = PageIterations
		return m, nil
	case key.Matches(msg, m.keys.Plot):
		m.page = PagePlot
		return m, nil
	case key.Matches(msg, m.keys.Report):
		m.page = PageReport
		return m, nil
	}

	switch m.page {
	case PageIterations:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	case PageReport:
		m.reportOffset = m.scroll(msg)
	}
	return m, nil
}

func (m Model) scroll(msg tea.KeyMsg) int {
	lines := strings.Count(m.result.Report, "\n") + 1
	maxOffset := max(lines-m.bodyHeight(), 0)
	off := m.reportOffset
	switch {
	case key.Matches(msg, m.keys.Up):
		off--
	case key.Matches(msg, m.keys.Down):
		off++
	case key.Matches(msg, m.keys.PageUp):
		off -= m.bodyHeight()
	case key.Matches(msg, m.keys.PageDown):
		off += m.bodyHeight()
	}
	return min(max(off, 0), maxOffset)
}

func (m Model) bodyHeight() int {
	return max(m.height-chromeHeight, 3)
}

func (m Model) View() string {
	var body string
	switch m.page {
	case PageSummary:
		body = viz.Summary(m.result, m.theme)
	case PageIterations:
		body = m.table.View()
	case PagePlot:
		body = m.plot
	case PageReport:
		lines := strings.Split(strings.TrimRight(m.result.Report, "\n"), "\n")
		end := min(m.reportOffset+m.bodyHeight(), len(lines))
		body = strings.Join(lines[min(m.reportOffset, end):end], "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.tabs(),
		"",
		body,
		"",
		m.help.View(m.keys),
	)
}

func (m Model) tabs() string {
	active := m.styles.Title.Underline(true)
	parts := make([]string, 0, pageCount)
	for p := Page(0); p < pageCount; p++ {
		label := fmt.Sprintf("%d %s", p+1, p)
		if p == m.page {
			parts = append(parts, active.Render(label))
		} else {
			parts = append(parts, m.styles.Label.Render(label))
		}
	}
	return strings.Join(parts, m.styles.Muted.Render("  │  "))
}

func traceColumns() []table.Column {
	return []table.Column{
		{Title: "k", Width: 4},
		{Title: "a", Width: 12},
		{Title: "b", Width: 12},
		{Title: "x1", Width: 12},
		{Title: "x2", Width: 12},
		{Title: "f(x1)", Width: 12},
		{Title: "f(x2)", Width: 12},
		{Title: "width", Width: 11},
	}
}

func traceRows(trace []fibsearch.IterationRecord) []table.Row {
	rows := make([]table.Row, len(trace))
	for i, rec := range trace {
		rows[i] = table.Row{
			strconv.Itoa(rec.Iteration),
			fmt.Sprintf("%.8f", rec.A),
			fmt.Sprintf("%.8f", rec.B),
			fmt.Sprintf("%.8f", rec.X1),
			fmt.Sprintf("%.8f", rec.X2),
			fmt.Sprintf("%.6g", rec.F1),
			fmt.Sprintf("%.6g", rec.F2),
			fmt.Sprintf("%.3e", rec.Width),
		}
	}
	return rows
}

func renderPlot(res *fibsearch.Result, f fibsearch.Objective) string {
	spec := export.NewPlotSpec(res, f, viz.DefaultPlotWidth)
	out, err := viz.PlotFunction(spec, viz.DefaultPlotHeight)
	if err != nil {
		return err.Error()
	}
	return out
}

// Run starts the browser on the alternate screen and blocks until it quits.
func Run(res *fibsearch.Result, opts ...Option) error {
	_, err := tea.NewProgram(NewModel(res, opts...), tea.WithAltScreen()).Run()
	return err
}
