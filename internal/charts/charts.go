// Package charts renders chart models as ntcharts line charts and runs the
// plugin draw hooks on the resulting canvas.
package charts

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/plugin"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"golang.org/x/term"
)

// AxisRows is the number of canvas rows below the graph used by the X axis and its labels.
const AxisRows = 2

var titleStyle = lipgloss.NewStyle().Bold(true)

// Height returns the chart height for a given width.
func Height(width int) int {
	h := width / ChartHeightRatio
	if h < MinChartHeight {
		return MinChartHeight
	}
	return h
}

// TerminalWidth returns the width of the terminal attached to fd, or DefaultWidth.
func TerminalWidth(fd int) int {
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// Area returns the graphing area of lc in canvas cells.
func Area(lc *linechart.Model) chart.Area {
	o := lc.Origin()
	return chart.Area{
		Left:   float64(o.X + 1),
		Top:    float64(o.Y - lc.GraphHeight()),
		Right:  float64(o.X + lc.GraphWidth()),
		Bottom: float64(o.Y - 1),
	}
}

// Draw lays c out on a width by height canvas, draws its axes and every
// visible dataset, then runs the draw hooks of mgr. mgr may be nil.
func Draw(c *chart.Model, width, height int, mgr *plugin.Manager) *linechart.Model {
	xs := primaryScale(c, chart.AxisX)
	ys := primaryScale(c, chart.AxisY)

	lc := linechart.New(width, height, xs.Min, xs.Max, ys.Min, ys.Max)
	lc.AxisStyle = lipgloss.NewStyle().Foreground(AxisColor)
	lc.LabelStyle = lipgloss.NewStyle().Foreground(LabelColor)
	lc.XLabelFormatter = func(_ int, v float64) string { return xs.Label(v) }
	lc.YLabelFormatter = func(_ int, v float64) string { return ys.Label(v) }
	lc.UpdateGraphSizes()

	c.Layout(Area(&lc))
	lc.DrawXYAxisAndLabel()

	for i, ds := range c.Datasets() {
		if !c.IsDatasetVisible(i) {
			continue
		}
		drawDataset(&lc, ds.Points, lipgloss.NewStyle().Foreground(DatasetColor(ds, i)))
		drawPointColors(&lc, ds)
	}

	if mgr != nil {
		mgr.Draw(c, &lc)
	}
	return &lc
}

func drawDataset(lc *linechart.Model, points []chart.Point, style lipgloss.Style) {
	switch len(points) {
	case 0:
		return
	case 1:
		p := canvas.Float64Point{X: points[0].X, Y: points[0].Y}
		lc.DrawBrailleLineWithStyle(p, p, style)
		return
	}
	for i := 1; i < len(points); i++ {
		from := canvas.Float64Point{X: points[i-1].X, Y: points[i-1].Y}
		to := canvas.Float64Point{X: points[i].X, Y: points[i].Y}
		lc.DrawBrailleLineWithStyle(from, to, style)
	}
}

// drawPointColors redraws every point of ds in its own colour when the
// colour scheme assigned one per point.
func drawPointColors(lc *linechart.Model, ds chart.Dataset) {
	if len(ds.PointColors) != len(ds.Points) {
		return
	}
	for i, pt := range ds.Points {
		p := canvas.Float64Point{X: pt.X, Y: pt.Y}
		lc.DrawBrailleLineWithStyle(p, p, lipgloss.NewStyle().Foreground(lipgloss.Color(ds.PointColors[i])))
	}
}

// primaryScale returns the default scale for axis, or the first scale
// running along it.
func primaryScale(c *chart.Model, axis chart.Axis) *chart.LinearScale {
	id := chart.DefaultXScaleID
	if axis == chart.AxisY {
		id = chart.DefaultYScaleID
	}
	if s, ok := c.Scale(id); ok {
		return s
	}
	for _, s := range c.Scales() {
		if s.Axis == axis {
			return s
		}
	}
	return chart.NewLinearScale(id, axis, 0, 1)
}

// View renders the title and the drawn canvas of c. When zm is not nil the
// title, graph and X axis rows are marked as zones so mouse events can be
// mapped back onto the chart.
func View(c *chart.Model, lc *linechart.Model, zm *zone.Manager) string {
	mark := func(kind, s string) string {
		if zm == nil {
			return s
		}
		return zm.Mark(plugin.ZoneID(c.ID(), kind, 0), s)
	}

	var sections []string
	if c.Title != "" {
		sections = append(sections, mark(plugin.ZoneTitle, titleStyle.Render(c.Title)))
	}

	lines := strings.Split(lc.View(), "\n")
	if len(lines) > AxisRows {
		graph := strings.Join(lines[:len(lines)-AxisRows], "\n")
		axis := strings.Join(lines[len(lines)-AxisRows:], "\n")
		sections = append(sections, mark(plugin.ZoneArea, graph), mark(plugin.ZoneAxis, axis))
	} else {
		sections = append(sections, mark(plugin.ZoneArea, strings.Join(lines, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Render draws c at width and returns its view without zones.
func Render(c *chart.Model, width int, mgr *plugin.Manager) string {
	return View(c, Draw(c, width, Height(width), mgr), nil)
}

// Print renders c to w sized to the terminal on stdout.
func Print(w io.Writer, c *chart.Model, mgr *plugin.Manager) error {
	_, err := fmt.Fprintln(w, Render(c, TerminalWidth(int(os.Stdout.Fd())), mgr))
	return err
}
