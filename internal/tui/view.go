package tui

import (
	"fmt"
	"strings"

	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/charts"
	"github.com/akasprzok/chartkit/internal/crosshair"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	switch m.state {
	case StateLoading:
		return fmt.Sprintf("\n  %s Loading charts...\n", m.spinner.View())
	case StateError:
		return "\n  " + ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n" + helpStyle.Render("  q: quit") + "\n"
	}

	if len(m.charts) == 0 {
		return "\n  " + WarningStyle.Render("No charts") + "\n"
	}

	var s strings.Builder
	s.WriteString(m.renderStatusBar())
	s.WriteString("\n")
	for i, c := range m.charts {
		s.WriteString(m.renderChart(i, c))
		s.WriteString("\n")
	}
	s.WriteString(m.table.View())
	s.WriteString("\n")
	s.WriteString(m.renderHelpBar())

	return m.zones.Scan(s.String())
}

func (m Model) renderChart(i int, c *chart.Model) string {
	lc := charts.Draw(c, m.chartWidth(), m.chartHeight(), m.plugins.Manager)
	body := lipgloss.JoinVertical(lipgloss.Left,
		charts.View(c, lc, m.zones),
		m.plugins.Legend.Render(c, m.zones),
	)
	style := chartStyle
	if i == m.focused {
		style = focusedChartStyle
	}
	return style.Render(body)
}

func (m Model) renderStatusBar() string {
	c := m.Focused()
	parts := []string{fmt.Sprintf("chart %d/%d", m.focused+1, len(m.charts))}
	if c.Title != "" {
		parts = append(parts, c.Title)
	}
	if at, ok := m.plugins.Crosshair.Pointer(c.ID()); ok {
		if xs, found := c.Scale(chart.DefaultXScaleID); found {
			label := m.plugins.Crosshair.Options().XLabel
			label.Padding = 0
			if text, show := crosshair.LabelText(c, xs, label, at.X); show {
				parts = append(parts, "x="+text)
			}
		}
	}
	if sel, ok := m.plugins.Selector.Selection(c); ok {
		parts = append(parts, "selection "+sel.String())
	} else if m.anchor != nil {
		parts = append(parts, "selecting")
	}
	parts = append(parts, "cursor "+m.plugins.Pointer.Cursor(c.ID()))
	return statusStyle.Render(strings.Join(parts, " | "))
}

func (m Model) renderHelpBar() string {
	if m.table.Filtering() {
		return helpStyle.Render("enter/esc: done filtering")
	}
	return helpStyle.Render("mouse: crosshair • drag/v: select • h/l: nudge • esc: clear • tab: next chart • t: toggle dataset • /: filter • q: quit")
}
