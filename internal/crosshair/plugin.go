package crosshair

import (
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/paint"
	"github.com/akasprzok/chartkit/internal/plugin"
	"github.com/charmbracelet/lipgloss"
)

type state struct {
	group   string
	pointer *chart.Point
}

// Plugin draws the crosshair and keeps the last pointer position per chart.
type Plugin struct {
	opts   Options
	charts plugin.ChartLookup
	states *plugin.Registry[*state]
}

// New returns a crosshair plugin. charts resolves sibling charts for group
// sync and may be nil when grouping is not used.
func New(charts plugin.ChartLookup, opts Options) *Plugin {
	return &Plugin{
		opts:   opts.withDefaults(),
		charts: charts,
		states: plugin.NewRegistry[*state](),
	}
}

func (p *Plugin) ID() string {
	return ID
}

func (p *Plugin) Options() Options {
	return p.opts
}

func (p *Plugin) OnBeforeUpdate(c *chart.Model) {
	if !p.opts.Enabled {
		p.states.Remove(c.ID())
		return
	}
	st := p.states.GetOrCreate(c.ID(), func() *state { return &state{} })
	st.group = p.opts.Group
}

func (p *Plugin) OnAfterEvent(c *chart.Model, ev plugin.Event) bool {
	if !p.opts.Enabled {
		return false
	}
	if ev.Kind == plugin.EventLeave || !ev.InChartArea {
		return p.Clear(c.ID())
	}
	if ev.Kind != plugin.EventMove || !p.opts.ModifierKey.Pressed(ev.Modifiers) {
		return false
	}
	p.track(c, ev.Point)
	return true
}

func (p *Plugin) OnBeforeDestroy(c *chart.Model) {
	p.states.Remove(c.ID())
}

// SetPointer moves the crosshair of c to the pixel point, syncing its group.
func (p *Plugin) SetPointer(c *chart.Model, at chart.Point) {
	if !p.opts.Enabled {
		return
	}
	p.track(c, at)
}

// Pointer returns the stored pointer position of a chart.
func (p *Plugin) Pointer(chartID string) (chart.Point, bool) {
	st, ok := p.states.Get(chartID)
	if !ok || st.pointer == nil {
		return chart.Point{}, false
	}
	return *st.pointer, true
}

// Values returns the dataset values under the stored pointer of a chart, or
// nil when the chart has no pointer.
func (p *Plugin) Values(chartID string) []float64 {
	at, ok := p.Pointer(chartID)
	if !ok || p.charts == nil {
		return nil
	}
	c, ok := p.charts.Chart(chartID)
	if !ok {
		return nil
	}
	return Interpolate(c, at)
}

// Clear drops the pointer of a chart and of its group. It reports whether
// anything was removed.
func (p *Plugin) Clear(chartID string) bool {
	st, ok := p.states.Get(chartID)
	if !ok || st.pointer == nil {
		return false
	}
	st.pointer = nil
	for _, id := range p.siblings(chartID, st.group) {
		if sib, ok := p.states.Get(id); ok {
			sib.pointer = nil
		}
	}
	return true
}

func (p *Plugin) track(c *chart.Model, at chart.Point) {
	st := p.states.GetOrCreate(c.ID(), func() *state { return &state{group: p.opts.Group} })
	pt := at
	st.pointer = &pt

	siblings := p.siblings(c.ID(), st.group)
	if len(siblings) == 0 || p.charts == nil {
		return
	}
	pct := percentage(c.Area(), at)
	for _, id := range siblings {
		other, ok := p.charts.Chart(id)
		if !ok {
			continue
		}
		synced := fromPercentage(other.Area(), pct)
		if sib, ok := p.states.Get(id); ok {
			sib.pointer = &synced
		}
	}
}

// siblings returns the ids of the other charts sharing group, ignoring case.
// An empty group has no siblings.
func (p *Plugin) siblings(chartID, group string) []string {
	if group == "" {
		return nil
	}
	var ids []string
	p.states.Each(func(id string, st *state) {
		if id != chartID && strings.EqualFold(group, st.group) {
			ids = append(ids, id)
		}
	})
	return ids
}

func percentage(a chart.Area, at chart.Point) chart.Point {
	var pct chart.Point
	if w := a.Width(); w != 0 {
		pct.X = (at.X - a.Left) / w
	}
	if h := a.Height(); h != 0 {
		pct.Y = (at.Y - a.Top) / h
	}
	return pct
}

func fromPercentage(a chart.Area, pct chart.Point) chart.Point {
	return chart.Point{
		X: pct.X*a.Width() + a.Left,
		Y: pct.Y*a.Height() + a.Top,
	}
}

func (p *Plugin) OnAfterDraw(c *chart.Model, lc *linechart.Model) {
	if !p.opts.Enabled || lc == nil {
		return
	}
	at, ok := p.Pointer(c.ID())
	if !ok {
		return
	}
	area := c.Area()
	xs, _ := c.Scale(p.opts.XScaleID)
	ys, _ := c.Scale(p.opts.YScaleID)
	inX := xs != nil && xs.IsHorizontal() && xs.ContainsPixel(at.X)
	inY := ys != nil && !ys.IsHorizontal() && ys.ContainsPixel(at.Y)

	cv := &lc.Canvas
	line := lipgloss.NewStyle().Foreground(lipgloss.Color(p.opts.LineColor))
	if inX && p.opts.Mode.hasY() {
		paint.VLine(cv, at.X, area.Top, area.Bottom, p.opts.LineRune, line)
	}
	if inY && p.opts.Mode.hasX() {
		paint.HLine(cv, at.Y, area.Left, area.Right, p.horizontalRune(), line)
	}
	if inX && p.opts.Mode.hasY() && p.opts.XLabel.Display {
		drawLabel(cv, c, xs, p.opts.XLabel, at.X)
	}
	if inY && p.opts.Mode.hasX() && p.opts.YLabel.Display {
		drawLabel(cv, c, ys, p.opts.YLabel, at.Y)
	}
}

func (p *Plugin) horizontalRune() rune {
	if p.opts.LineRune == DefaultLineRune {
		return DefaultHorizontalRune
	}
	return p.opts.LineRune
}

// LabelText returns the text of a label for the scale value at pixel, and
// false when the formatter asked to skip it.
func LabelText(c *chart.Model, s *chart.LinearScale, l Label, pixel float64) (string, bool) {
	value := s.ValueAtPixel(pixel)
	text := s.Label(value)
	if l.Formatter != nil {
		text = l.Formatter(c, s, value)
		if strings.TrimSpace(text) == "" {
			return "", false
		}
	}
	pad := strings.Repeat(" ", l.Padding)
	return pad + text + pad, true
}

func drawLabel(cv *canvas.Model, c *chart.Model, s *chart.LinearScale, l Label, pixel float64) {
	text, ok := LabelText(c, s, l, pixel)
	if !ok {
		return
	}
	area := c.Area()
	width := float64(lipgloss.Width(text))

	var x, y float64
	switch s.Position {
	case chart.PositionTop:
		x, y = pixel-width/2, area.Top-1
	case chart.PositionBottom:
		x, y = pixel-width/2, area.Bottom+2
	case chart.PositionRight:
		x, y = area.Right+2, pixel
	default:
		x, y = area.Left-1-width, pixel
	}
	x = paint.Clamp(x, 0, float64(cv.Width())-width)
	y = paint.Clamp(y, 0, float64(cv.Height()-1))

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(l.Color)).
		Background(lipgloss.Color(l.BackgroundColor))
	paint.Text(cv, x, y, text, style)
}
