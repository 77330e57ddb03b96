// Package legend renders a clickable legend below a chart. Clicking an item
// toggles the visibility of its dataset.
package legend

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/plugin"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/montanaflynn/stats"
)

const ID = "legend"

const (
	legendSymbol = "━━"
	itemGap      = "  "
	fallbackGrey = "#BBBBBB"
)

// Summary holds descriptive statistics of a dataset's Y values.
type Summary struct {
	Min  float64
	Max  float64
	Mean float64
	Last float64
}

// Item is one legend entry.
type Item struct {
	Index   int
	Label   string
	Color   string
	Hidden  bool
	Summary Summary
}

// ItemFormatter renders the text of an item. The colour symbol is added
// separately.
type ItemFormatter func(c *chart.Model, it Item) string

// TitleFormatter renders the legend title. An empty result hides it.
type TitleFormatter func(c *chart.Model) string

type Options struct {
	Display bool
	// MaxColumns caps items per row. Values below 1 put every item on one row.
	MaxColumns     int
	ItemFormatter  ItemFormatter
	TitleFormatter TitleFormatter
}

func DefaultOptions() Options {
	return Options{Display: true}
}

// Plugin builds legend items and handles clicks on them.
type Plugin struct {
	opts Options
}

func New(opts Options) *Plugin {
	return &Plugin{opts: opts}
}

func (p *Plugin) ID() string {
	return ID
}

func (p *Plugin) OnBeforeUpdate(*chart.Model) {}

func (p *Plugin) OnAfterDraw(*chart.Model, *linechart.Model) {}

func (p *Plugin) OnBeforeDestroy(*chart.Model) {}

// OnAfterEvent toggles a dataset when its legend item is pressed.
func (p *Plugin) OnAfterEvent(c *chart.Model, ev plugin.Event) bool {
	if !p.opts.Display || ev.Kind != plugin.EventPress {
		return false
	}
	chartID, kind, index, ok := plugin.ParseZoneID(ev.Zone)
	if !ok || chartID != c.ID() || kind != plugin.ZoneLegend {
		return false
	}
	if c.Dataset(index) == nil {
		return false
	}
	c.ToggleDataset(index)
	return true
}

// Items builds one item per dataset.
func Items(c *chart.Model) []Item {
	datasets := c.Datasets()
	items := make([]Item, len(datasets))
	for i, ds := range datasets {
		items[i] = Item{
			Index:   i,
			Label:   ds.Label,
			Color:   ds.Color,
			Hidden:  !c.IsDatasetVisible(i),
			Summary: Summarize(ds.Points),
		}
	}
	return items
}

// Summarize computes the statistics of the Y values of points.
func Summarize(points []chart.Point) Summary {
	if len(points) == 0 {
		return Summary{}
	}
	ys := make(stats.Float64Data, len(points))
	for i, pt := range points {
		ys[i] = pt.Y
	}
	var s Summary
	// errors only occur for empty input
	s.Min, _ = stats.Min(ys)
	s.Max, _ = stats.Max(ys)
	s.Mean, _ = stats.Mean(ys)
	s.Last = ys[len(ys)-1]
	return s
}

// DefaultItemFormatter renders the label, or "dataset N" when it is empty.
func DefaultItemFormatter(_ *chart.Model, it Item) string {
	if it.Label == "" {
		return fmt.Sprintf("dataset %d", it.Index)
	}
	return it.Label
}

// Render lays the legend out as text. When zm is not nil each item is
// marked as a zone so clicks can be resolved.
func (p *Plugin) Render(c *chart.Model, zm *zone.Manager) string {
	if !p.opts.Display {
		return ""
	}
	format := p.opts.ItemFormatter
	if format == nil {
		format = DefaultItemFormatter
	}

	items := Items(c)
	cells := make([]string, len(items))
	for i, it := range items {
		color := it.Color
		if color == "" {
			color = fallbackGrey
		}
		symbol := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(legendSymbol)
		text := lipgloss.NewStyle().Strikethrough(it.Hidden).Faint(it.Hidden).Render(format(c, it))
		cell := symbol + " " + text
		if zm != nil {
			cell = zm.Mark(plugin.ZoneID(c.ID(), plugin.ZoneLegend, it.Index), cell)
		}
		cells[i] = cell
	}

	var lines []string
	if p.opts.TitleFormatter != nil {
		if title := p.opts.TitleFormatter(c); strings.TrimSpace(title) != "" {
			lines = append(lines, lipgloss.NewStyle().Bold(true).Render(title))
		}
	}
	for _, row := range Rows(cells, p.opts.MaxColumns) {
		lines = append(lines, strings.Join(row, itemGap))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Rows splits cells into rows of at most columns cells. columns below 1
// keeps every cell on a single row.
func Rows(cells []string, columns int) [][]string {
	if len(cells) == 0 {
		return nil
	}
	if columns < 1 || columns >= len(cells) {
		return [][]string{cells}
	}
	var rows [][]string
	for start := 0; start < len(cells); start += columns {
		end := start + columns
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, cells[start:end])
	}
	return rows
}
