// Package pointer switches a chart's cursor when the mouse is over an
// interactive element.
package pointer

import (
	"fmt"
	"math"
	"strings"

	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/plugin"
)

const ID = "chartpointer"

// Element is a kind of chart element that can trigger the pointer cursor.
type Element string

const (
	ElementDataset Element = "dataset"
	ElementTitle   Element = "title"
	ElementLegend  Element = "legend"
	ElementAxes    Element = "axes"
)

// AllElements is the default scope.
var AllElements = []Element{ElementDataset, ElementTitle, ElementLegend, ElementAxes}

// ParseElement parses an element name, ignoring case.
func ParseElement(s string) (Element, error) {
	switch e := Element(strings.ToLower(strings.TrimSpace(s))); e {
	case ElementDataset, ElementTitle, ElementLegend, ElementAxes:
		return e, nil
	default:
		return "", fmt.Errorf("unknown pointer element %q", s)
	}
}

const (
	DefaultCursorPointer = "pointer"
	DefaultCursorDefault = "default"

	// hitDistance is how close, in cells, the mouse must be to a data point.
	hitDistance = 1.0
)

type Options struct {
	Elements      []Element
	CursorPointer string
	CursorDefault string
}

func DefaultOptions() Options {
	return Options{
		Elements:      AllElements,
		CursorPointer: DefaultCursorPointer,
		CursorDefault: DefaultCursorDefault,
	}
}

// Plugin tracks the cursor of every chart.
type Plugin struct {
	opts    Options
	scope   map[Element]bool
	cursors *plugin.Registry[string]
}

func New(opts Options) *Plugin {
	if opts.Elements == nil {
		opts.Elements = AllElements
	}
	if opts.CursorPointer == "" {
		opts.CursorPointer = DefaultCursorPointer
	}
	if opts.CursorDefault == "" {
		opts.CursorDefault = DefaultCursorDefault
	}
	scope := make(map[Element]bool, len(opts.Elements))
	for _, e := range opts.Elements {
		scope[e] = true
	}
	return &Plugin{opts: opts, scope: scope, cursors: plugin.NewRegistry[string]()}
}

func (p *Plugin) ID() string {
	return ID
}

func (p *Plugin) OnBeforeUpdate(c *chart.Model) {
	p.cursors.GetOrCreate(c.ID(), func() string { return p.opts.CursorDefault })
}

func (p *Plugin) OnAfterDraw(*chart.Model, *linechart.Model) {}

func (p *Plugin) OnAfterEvent(c *chart.Model, ev plugin.Event) bool {
	switch ev.Kind {
	case plugin.EventMove, plugin.EventPress, plugin.EventRelease, plugin.EventLeave:
	default:
		return false
	}
	cursor := p.opts.CursorDefault
	if ev.Kind != plugin.EventLeave && p.over(c, ev) {
		cursor = p.opts.CursorPointer
	}
	prev, _ := p.cursors.Get(c.ID())
	p.cursors.Put(c.ID(), cursor)
	return prev != cursor
}

func (p *Plugin) OnBeforeDestroy(c *chart.Model) {
	p.cursors.Remove(c.ID())
}

// Cursor returns the current cursor of a chart.
func (p *Plugin) Cursor(chartID string) string {
	if cursor, ok := p.cursors.Get(chartID); ok {
		return cursor
	}
	return p.opts.CursorDefault
}

func (p *Plugin) over(c *chart.Model, ev plugin.Event) bool {
	if p.scope[ElementDataset] && ev.InChartArea && HitDataset(c, ev.Point) >= 0 {
		return true
	}
	chartID, kind, _, ok := plugin.ParseZoneID(ev.Zone)
	if !ok || chartID != c.ID() {
		return false
	}
	switch kind {
	case plugin.ZoneTitle:
		return p.scope[ElementTitle]
	case plugin.ZoneLegend:
		return p.scope[ElementLegend]
	case plugin.ZoneAxis:
		return p.scope[ElementAxes]
	default:
		return false
	}
}

// HitDataset returns the index of the first visible dataset with a data
// point drawn within one cell of at, or -1.
func HitDataset(c *chart.Model, at chart.Point) int {
	for i, ds := range c.Datasets() {
		if !c.IsDatasetVisible(i) {
			continue
		}
		xs, okX := c.Scale(ds.XScaleID)
		ys, okY := c.Scale(ds.YScaleID)
		if !okX || !okY {
			continue
		}
		for _, pt := range ds.Points {
			px, py := xs.PixelForValue(pt.X), ys.PixelForValue(pt.Y)
			if math.Abs(px-at.X) <= hitDistance && math.Abs(py-at.Y) <= hitDistance {
				return i
			}
		}
	}
	return -1
}
