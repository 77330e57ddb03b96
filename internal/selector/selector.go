// Package selector lets the user drag across a chart to select a range of
// X values.
package selector

import (
	"fmt"
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/colorschemes"
	"github.com/akasprzok/chartkit/internal/paint"
	"github.com/akasprzok/chartkit/internal/plugin"
	"github.com/charmbracelet/lipgloss"
)

const ID = "datasetsitemsselector"

const (
	DefaultColor       = "#FFA500"
	DefaultAlpha       = 0.3
	DefaultBorderColor = "#808080"
	DefaultBackground  = "#000000"
	DefaultBorderRune  = '│'
)

type Options struct {
	Enabled       bool
	Color         string
	Alpha         float64
	BorderColor   string
	Background    string
	XScaleID      string
	ClearByEscape bool
	ModifierKey   plugin.ModifierKey

	// OnSelect runs when a selection is completed.
	OnSelect func(chartID string, s Selection)
	// OnClear runs when a completed selection is removed.
	OnClear func(chartID string)
}

func DefaultOptions() Options {
	return Options{
		Enabled:       true,
		Color:         DefaultColor,
		Alpha:         DefaultAlpha,
		BorderColor:   DefaultBorderColor,
		Background:    DefaultBackground,
		XScaleID:      chart.DefaultXScaleID,
		ClearByEscape: true,
	}
}

// Selection is a completed range on the X scale. From and To are scale
// values with From <= To. Start and End are the indexes of the first and
// last data points of the first visible dataset inside the range, or -1
// when no point falls inside.
type Selection struct {
	From  float64
	To    float64
	Start int
	End   int
}

func (s Selection) String() string {
	return fmt.Sprintf("%g..%g [%d:%d]", s.From, s.To, s.Start, s.End)
}

type status int

const (
	statusReady status = iota
	statusSelecting
	statusSelected
)

type track struct {
	status  status
	start   float64
	current float64
}

func (t *track) bounds() (left, right float64) {
	return math.Min(t.start, t.current), math.Max(t.start, t.current)
}

// Plugin keeps one selection track per chart.
type Plugin struct {
	opts   Options
	fill   lipgloss.Color
	tracks *plugin.Registry[*track]
}

// New returns the plugin, blending the selection colour over the background.
func New(opts Options) (*Plugin, error) {
	if opts.Color == "" {
		opts.Color = DefaultColor
	}
	if opts.BorderColor == "" {
		opts.BorderColor = DefaultBorderColor
	}
	if opts.Background == "" {
		opts.Background = DefaultBackground
	}
	if opts.XScaleID == "" {
		opts.XScaleID = chart.DefaultXScaleID
	}
	blended, err := colorschemes.Blend([]string{opts.Color}, opts.Background, opts.Alpha)
	if err != nil {
		return nil, fmt.Errorf("selection color: %w", err)
	}
	return &Plugin{
		opts:   opts,
		fill:   lipgloss.Color(blended[0]),
		tracks: plugin.NewRegistry[*track](),
	}, nil
}

func (p *Plugin) ID() string {
	return ID
}

func (p *Plugin) OnBeforeUpdate(c *chart.Model) {
	if !p.opts.Enabled {
		p.tracks.Remove(c.ID())
		return
	}
	p.tracks.GetOrCreate(c.ID(), func() *track { return &track{} })
}

func (p *Plugin) OnBeforeDestroy(c *chart.Model) {
	p.tracks.Remove(c.ID())
}

func (p *Plugin) OnAfterEvent(c *chart.Model, ev plugin.Event) bool {
	if !p.opts.Enabled {
		return false
	}
	t := p.tracks.GetOrCreate(c.ID(), func() *track { return &track{} })
	area := c.Area()

	switch ev.Kind {
	case plugin.EventPress:
		if !ev.InChartArea || !p.opts.ModifierKey.Pressed(ev.Modifiers) {
			return false
		}
		x := paint.Clamp(ev.Point.X, area.Left, area.Right)
		*t = track{status: statusSelecting, start: x, current: x}
		return true
	case plugin.EventMove:
		if t.status != statusSelecting {
			return false
		}
		t.current = paint.Clamp(ev.Point.X, area.Left, area.Right)
		if !ev.InChartArea {
			p.finish(c, t)
		}
		return true
	case plugin.EventRelease, plugin.EventLeave:
		if t.status != statusSelecting {
			return false
		}
		t.current = paint.Clamp(ev.Point.X, area.Left, area.Right)
		p.finish(c, t)
		return true
	case plugin.EventKey:
		if ev.Key == "esc" && p.opts.ClearByEscape {
			return p.Clear(c.ID())
		}
	}
	return false
}

func (p *Plugin) finish(c *chart.Model, t *track) {
	left, right := t.bounds()
	if right-left <= 0 {
		*t = track{}
		return
	}
	t.status = statusSelected
	if p.opts.OnSelect != nil {
		if s, ok := p.Selection(c); ok {
			p.opts.OnSelect(c.ID(), s)
		}
	}
}

// SetSelection selects the X values from..to on c as if the user dragged
// across them.
func (p *Plugin) SetSelection(c *chart.Model, from, to float64) {
	s, ok := c.Scale(p.opts.XScaleID)
	if !ok || !p.opts.Enabled {
		return
	}
	area := c.Area()
	start := paint.Clamp(s.PixelForValue(from), area.Left, area.Right)
	end := paint.Clamp(s.PixelForValue(to), area.Left, area.Right)
	t := p.tracks.GetOrCreate(c.ID(), func() *track { return &track{} })
	*t = track{status: statusSelecting, start: start, current: end}
	p.finish(c, t)
}

// Clear removes a completed or in-progress selection. It reports whether
// anything was removed.
func (p *Plugin) Clear(chartID string) bool {
	t, ok := p.tracks.Get(chartID)
	if !ok || t.status == statusReady {
		return false
	}
	selected := t.status == statusSelected
	*t = track{}
	if selected && p.opts.OnClear != nil {
		p.opts.OnClear(chartID)
	}
	return true
}

// Selection returns the completed selection of c.
func (p *Plugin) Selection(c *chart.Model) (Selection, bool) {
	t, ok := p.tracks.Get(c.ID())
	if !ok || t.status != statusSelected {
		return Selection{}, false
	}
	s, ok := c.Scale(p.opts.XScaleID)
	if !ok {
		return Selection{}, false
	}
	left, right := t.bounds()
	from, to := s.ValueAtPixel(left), s.ValueAtPixel(right)
	if from > to {
		from, to = to, from
	}
	sel := Selection{From: from, To: to, Start: -1, End: -1}
	for i, ds := range c.Datasets() {
		if !c.IsDatasetVisible(i) || !strings.EqualFold(ds.XScaleID, p.opts.XScaleID) {
			continue
		}
		for j, pt := range ds.Points {
			if pt.X < from || pt.X > to {
				continue
			}
			if sel.Start < 0 {
				sel.Start = j
			}
			sel.End = j
		}
		break
	}
	return sel, true
}

// Selecting reports whether a drag is in progress on the chart.
func (p *Plugin) Selecting(chartID string) bool {
	t, ok := p.tracks.Get(chartID)
	return ok && t.status == statusSelecting
}

func (p *Plugin) OnAfterDraw(c *chart.Model, lc *linechart.Model) {
	if !p.opts.Enabled || lc == nil {
		return
	}
	t, ok := p.tracks.Get(c.ID())
	if !ok || t.status == statusReady {
		return
	}
	left, right := t.bounds()
	area := c.Area()
	cv := &lc.Canvas
	band := chart.Area{Left: left, Right: right, Top: area.Top, Bottom: area.Bottom}
	paint.Shade(cv, band, p.fill)

	border := lipgloss.NewStyle().Foreground(lipgloss.Color(p.opts.BorderColor)).Background(p.fill)
	paint.VLine(cv, left, area.Top, area.Bottom, DefaultBorderRune, border)
	paint.VLine(cv, right, area.Top, area.Bottom, DefaultBorderRune, border)
}
