package tui

import (
	"context"

	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/charts"
	"github.com/akasprzok/chartkit/internal/plugin"
	"github.com/akasprzok/chartkit/internal/source"
	"github.com/akasprzok/chartkit/internal/tables"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.load(),
	)
}

func (m Model) load() tea.Cmd {
	sources, timeout := m.sources, m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		loaded, err := source.LoadAll(ctx, sources...)
		return loadedMsg{charts: loaded, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		return m.handleLoaded(msg), nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg), nil

	case spinner.TickMsg:
		if m.state == StateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleLoaded(msg loadedMsg) Model {
	if msg.err != nil {
		m.log.WithError(msg.err).Error("loading charts failed")
		m.state = StateError
		m.err = msg.err
		return m
	}
	for _, c := range msg.charts {
		m.plugins.Manager.Register(c)
		m.log.WithField("chart", c.ID()).WithField("datasets", len(c.Datasets())).Info("chart loaded")
	}
	m.charts = msg.charts
	m.state = StateReady
	// Lay the charts out once so keyboard actions work before the first mouse event.
	for _, c := range m.charts {
		charts.Draw(c, m.chartWidth(), m.chartHeight(), nil)
	}
	return m.refreshTable()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.plugins.Manager.DestroyAll()
	return m, tea.Quit
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.state != StateReady {
		if msg.String() == "q" {
			return m.quit()
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.table.Filtering() {
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "tab":
		m = m.focus(m.focused + 1)
	case "shift+tab":
		m = m.focus(m.focused - 1)
	case "h", "left":
		m = m.nudge(-1)
	case "l", "right":
		m = m.nudge(1)
	case "v":
		m = m.toggleSelection()
	case "esc":
		m = m.clear()
	case "t":
		m = m.toggleHighlighted()
	default:
		m.table, cmd = m.table.Update(msg)
	}
	return m.refreshTable(), cmd
}

func (m Model) focus(i int) Model {
	if len(m.charts) == 0 {
		return m
	}
	m.focused = (i%len(m.charts) + len(m.charts)) % len(m.charts)
	m.anchor = nil
	return m
}

// pointer returns the crosshair position of the focused chart, placing it
// at the centre of the area when there is none.
func (m Model) pointer(c *chart.Model) chart.Point {
	if at, ok := m.plugins.Crosshair.Pointer(c.ID()); ok {
		return at
	}
	a := c.Area()
	return chart.Point{X: a.Left + a.Width()/2, Y: a.Top + a.Height()/2}
}

// nudge moves the crosshair of the focused chart by dx cells.
func (m Model) nudge(dx float64) Model {
	c := m.Focused()
	if c == nil {
		return m
	}
	at := m.pointer(c)
	if _, ok := m.plugins.Crosshair.Pointer(c.ID()); ok {
		a := c.Area()
		at.X = min(max(at.X+dx, a.Left), a.Right)
	}
	m.plugins.Crosshair.SetPointer(c, at)
	if m.plugins.Selector.Selecting(c.ID()) {
		m.plugins.Manager.Dispatch(c, plugin.Event{Kind: plugin.EventMove, Point: at, InChartArea: true})
	}
	return m
}

// toggleSelection starts a keyboard selection at the crosshair, or completes
// the one in progress.
func (m Model) toggleSelection() Model {
	c := m.Focused()
	if c == nil {
		return m
	}
	at := m.pointer(c)
	m.plugins.Crosshair.SetPointer(c, at)
	if m.anchor == nil {
		x := at.X
		m.anchor = &x
		return m
	}
	xs, ok := c.Scale(chart.DefaultXScaleID)
	if ok {
		m.plugins.Selector.SetSelection(c, xs.ValueAtPixel(*m.anchor), xs.ValueAtPixel(at.X))
	}
	m.anchor = nil
	return m
}

func (m Model) clear() Model {
	c := m.Focused()
	if c == nil {
		return m
	}
	m.anchor = nil
	m.plugins.Manager.Dispatch(c, plugin.Event{Kind: plugin.EventKey, Key: "esc"})
	m.plugins.Crosshair.Clear(c.ID())
	return m
}

// toggleHighlighted flips the dataset highlighted in the values table.
func (m Model) toggleHighlighted() Model {
	c := m.Focused()
	idx, ok := m.table.HighlightedIndex()
	if c == nil || !ok {
		return m
	}
	c.ToggleDataset(idx)
	m.plugins.Manager.Update(c)
	return m
}

func (m Model) refreshTable() Model {
	c := m.Focused()
	if c == nil {
		return m
	}
	m.table = m.table.WithRows(tables.Rows(c, m.plugins.Crosshair.Values(c.ID())))
	return m
}

func eventKind(msg tea.MouseMsg) (plugin.EventKind, bool) {
	switch msg.Action {
	case tea.MouseActionMotion:
		return plugin.EventMove, true
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			return plugin.EventPress, true
		}
	case tea.MouseActionRelease:
		return plugin.EventRelease, true
	}
	return 0, false
}

func (m Model) handleMouseMsg(msg tea.MouseMsg) Model {
	kind, ok := eventKind(msg)
	if !ok || m.state != StateReady {
		return m
	}

	hit, ev := -1, plugin.Event{}
	for i, c := range m.charts {
		if e, inside := m.eventFor(c, msg); inside {
			hit, ev = i, e
			break
		}
	}
	ev.Kind = kind
	return m.route(hit, ev).refreshTable()
}

// route sends ev to the chart at index hit, or to none when hit is -1. The
// previously hovered chart gets EventLeave before ev is delivered.
func (m Model) route(hit int, ev plugin.Event) Model {
	if m.hovered >= 0 && m.hovered != hit && m.hovered < len(m.charts) {
		m.plugins.Manager.Dispatch(m.charts[m.hovered], plugin.Event{Kind: plugin.EventLeave, Point: m.lastPoint})
	}
	m.hovered = hit
	if hit < 0 || hit >= len(m.charts) {
		return m
	}

	m.plugins.Manager.Dispatch(m.charts[hit], ev)
	if ev.Kind == plugin.EventPress {
		m = m.focus(hit)
	}
	if ev.Point.X >= 0 {
		m.lastPoint = ev.Point
	}
	return m
}

// zonePos returns the position of msg relative to the zone id.
func (m Model) zonePos(id string, msg tea.MouseMsg) (x, y int, ok bool) {
	z := m.zones.Get(id)
	if z == nil || !z.InBounds(msg) {
		return 0, 0, false
	}
	x, y = z.Pos(msg)
	return x, y, true
}

// eventFor maps msg onto chart pixels when it falls inside one of the
// zones of c.
func (m Model) eventFor(c *chart.Model, msg tea.MouseMsg) (plugin.Event, bool) {
	ev := plugin.Event{
		Point:     chart.Point{X: -1, Y: -1},
		Modifiers: plugin.Modifiers{Shift: msg.Shift, Alt: msg.Alt, Ctrl: msg.Ctrl},
	}

	areaID := plugin.ZoneID(c.ID(), plugin.ZoneArea, 0)
	if x, y, ok := m.zonePos(areaID, msg); ok {
		ev.Point = chart.Point{X: float64(x), Y: float64(y)}
		ev.Zone = areaID
		ev.InChartArea = c.Area().Contains(ev.Point)
		return ev, true
	}
	axisID := plugin.ZoneID(c.ID(), plugin.ZoneAxis, 0)
	if x, y, ok := m.zonePos(axisID, msg); ok {
		ev.Point = chart.Point{X: float64(x), Y: float64(y + m.chartHeight() - charts.AxisRows)}
		ev.Zone = axisID
		return ev, true
	}
	titleID := plugin.ZoneID(c.ID(), plugin.ZoneTitle, 0)
	if _, _, ok := m.zonePos(titleID, msg); ok {
		ev.Zone = titleID
		return ev, true
	}
	for i := range c.Datasets() {
		legendID := plugin.ZoneID(c.ID(), plugin.ZoneLegend, i)
		if _, _, ok := m.zonePos(legendID, msg); ok {
			ev.Zone = legendID
			return ev, true
		}
	}
	return ev, false
}
