// Package tui is the interactive chart viewer: stacked charts with a
// crosshair that follows the mouse, a legend and a table of the values
// under the crosshair.
package tui

import (
	"os"
	"time"

	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/charts"
	"github.com/akasprzok/chartkit/internal/source"
	"github.com/akasprzok/chartkit/internal/tables"
	"github.com/charmbracelet/bubbles/spinner"
	zone "github.com/lrstanley/bubblezone"
	"github.com/sirupsen/logrus"
)

const (
	// ChartWidthPadding is the horizontal space taken by the chart border.
	ChartWidthPadding = 4

	// ChromeHeight is the number of lines used by the status bar, help bar
	// and the values table.
	ChromeHeight = 16

	// ChartChromeHeight is the per chart overhead: border, title and legend.
	ChartChromeHeight = 4
)

// State is the lifecycle of the viewer.
type State int

const (
	StateLoading State = iota
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// loadedMsg carries the charts loaded from the sources.
type loadedMsg struct {
	charts []*chart.Model
	err    error
}

// Model is the main Bubble Tea model of the viewer.
type Model struct {
	sources []source.Source
	timeout time.Duration
	log     logrus.FieldLogger

	plugins *Plugins
	zones   *zone.Manager

	charts  []*chart.Model
	focused int
	// hovered is the chart under the mouse, or -1.
	hovered   int
	lastPoint chart.Point
	// anchor is the pixel X where a keyboard selection started.
	anchor *float64

	table   tables.Model
	state   State
	err     error
	spinner spinner.Model

	width  int
	height int
}

// New returns a viewer that loads sources when started.
func New(sources []source.Source, plugins *Plugins, timeout time.Duration, log logrus.FieldLogger) Model {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return Model{
		sources: sources,
		timeout: timeout,
		log:     log,
		plugins: plugins,
		zones:   zone.New(),
		hovered: -1,
		table:   tables.New(nil),
		state:   StateLoading,
		spinner: NewLoadingSpinner(),
	}
}

func (m Model) State() State {
	return m.state
}

// Err returns the load error, if any.
func (m Model) Err() error {
	return m.err
}

// Charts returns the loaded charts.
func (m Model) Charts() []*chart.Model {
	return m.charts
}

// Focused returns the chart keyboard actions apply to.
func (m Model) Focused() *chart.Model {
	if m.focused < 0 || m.focused >= len(m.charts) {
		return nil
	}
	return m.charts[m.focused]
}

func (m Model) chartWidth() int {
	width := m.width
	if width <= 0 {
		width = charts.TerminalWidth(int(os.Stdout.Fd()))
	}
	return max(width-ChartWidthPadding, charts.MinChartHeight*2)
}

func (m Model) chartHeight() int {
	if m.height <= 0 || len(m.charts) == 0 {
		return charts.Height(m.chartWidth())
	}
	available := m.height - ChromeHeight - len(m.charts)*ChartChromeHeight
	return max(available/len(m.charts), charts.MinChartHeight)
}
