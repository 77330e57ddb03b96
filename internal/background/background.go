// Package background paints the chart canvas or the chart area with a
// solid colour or a vertical gradient.
package background

import (
	"fmt"
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/paint"
	"github.com/akasprzok/chartkit/internal/plugin"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

const ID = "chartbackgroundcolor"

type Options struct {
	// BackgroundColor fills the whole canvas unless FillArea is set.
	BackgroundColor string
	// AreaBackgroundColor fills the chart area. It defaults to
	// BackgroundColor when FillArea is set.
	AreaBackgroundColor string
	FillArea            bool
	// Gradient is the bottom colour of a top to bottom gradient.
	Gradient string
}

type Plugin struct {
	opts Options
}

// New checks that every configured colour parses.
func New(opts Options) (*Plugin, error) {
	for _, c := range []string{opts.BackgroundColor, opts.AreaBackgroundColor, opts.Gradient} {
		if c == "" {
			continue
		}
		if _, err := colorful.Hex(c); err != nil {
			return nil, fmt.Errorf("background color %q: %w", c, err)
		}
	}
	return &Plugin{opts: opts}, nil
}

func (p *Plugin) ID() string {
	return ID
}

func (p *Plugin) OnBeforeUpdate(*chart.Model) {}

func (p *Plugin) OnAfterEvent(*chart.Model, plugin.Event) bool {
	return false
}

func (p *Plugin) OnBeforeDestroy(*chart.Model) {}

func (p *Plugin) OnAfterDraw(c *chart.Model, lc *linechart.Model) {
	if lc == nil {
		return
	}
	cv := &lc.Canvas
	if p.opts.BackgroundColor != "" && !p.opts.FillArea {
		whole := chart.Area{Right: float64(cv.Width() - 1), Bottom: float64(cv.Height() - 1)}
		p.fill(cv, whole, p.opts.BackgroundColor)
	}
	areaColor := p.opts.AreaBackgroundColor
	if areaColor == "" && p.opts.FillArea {
		areaColor = p.opts.BackgroundColor
	}
	if areaColor != "" {
		p.fill(cv, c.Area(), areaColor)
	}
}

func (p *Plugin) fill(cv *canvas.Model, area chart.Area, color string) {
	top, bottom := int(math.Round(area.Top)), int(math.Round(area.Bottom))
	left, right := int(math.Round(area.Left)), int(math.Round(area.Right))
	rows := RowColors(color, p.opts.Gradient, bottom-top+1)
	for i, bg := range rows {
		paint.ShadeRow(cv, top+i, left, right, lipgloss.Color(bg))
	}
}

// RowColors returns the background of each of n rows, blending from top to
// bottom when bottom is set.
func RowColors(top, bottom string, n int) []string {
	if n <= 0 {
		return nil
	}
	rows := make([]string, n)
	from, errFrom := colorful.Hex(top)
	to, errTo := colorful.Hex(bottom)
	for i := range rows {
		if bottom == "" || errFrom != nil || errTo != nil || n == 1 {
			rows[i] = top
			continue
		}
		t := float64(i) / float64(n-1)
		rows[i] = from.BlendLab(to, t).Clamped().Hex()
	}
	return rows
}
