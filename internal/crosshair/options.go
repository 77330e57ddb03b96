package crosshair

import (
	"fmt"
	"strings"

	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/plugin"
)

// ID is the plugin id.
const ID = "crosshair"

// Mode selects which guide lines are drawn. X draws the horizontal line
// that tracks the pointer along the Y scale, Y draws the vertical one.
type Mode string

const (
	ModeX  Mode = "x"
	ModeY  Mode = "y"
	ModeXY Mode = "xy"
)

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeX, ModeY, ModeXY:
		return m, nil
	case "":
		return ModeXY, nil
	default:
		return "", fmt.Errorf("unknown crosshair mode %q", s)
	}
}

func (m Mode) hasX() bool {
	return m == ModeX || m == ModeXY
}

func (m Mode) hasY() bool {
	return m == ModeY || m == ModeXY
}

// Formatter renders a scale value for a label. An empty result skips the label.
type Formatter func(c *chart.Model, s *chart.LinearScale, value float64) string

// Label configures the value box drawn next to an axis.
type Label struct {
	Display         bool
	Padding         int
	Color           string
	BackgroundColor string
	Formatter       Formatter
}

// Options configures the crosshair plugin.
type Options struct {
	Enabled     bool
	Mode        Mode
	LineColor   string
	LineRune    rune
	Group       string
	ModifierKey plugin.ModifierKey
	XScaleID    string
	YScaleID    string
	XLabel      Label
	YLabel      Label
}

const (
	DefaultLineColor            = "#808080"
	DefaultLineRune             = '┊'
	DefaultHorizontalRune       = '┈'
	DefaultLabelColor           = "#FFFFFF"
	DefaultLabelBackgroundColor = "#404040"
	DefaultLabelPadding         = 1
)

func defaultLabel() Label {
	return Label{
		Display:         true,
		Padding:         DefaultLabelPadding,
		Color:           DefaultLabelColor,
		BackgroundColor: DefaultLabelBackgroundColor,
	}
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Enabled:   true,
		Mode:      ModeXY,
		LineColor: DefaultLineColor,
		LineRune:  DefaultLineRune,
		XScaleID:  chart.DefaultXScaleID,
		YScaleID:  chart.DefaultYScaleID,
		XLabel:    defaultLabel(),
		YLabel:    defaultLabel(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Mode == "" {
		o.Mode = d.Mode
	}
	if o.LineColor == "" {
		o.LineColor = d.LineColor
	}
	if o.LineRune == 0 {
		o.LineRune = d.LineRune
	}
	if o.XScaleID == "" {
		o.XScaleID = d.XScaleID
	}
	if o.YScaleID == "" {
		o.YScaleID = d.YScaleID
	}
	o.XLabel = o.XLabel.withDefaults()
	o.YLabel = o.YLabel.withDefaults()
	return o
}

func (l Label) withDefaults() Label {
	if l.Padding < 0 {
		l.Padding = 0
	}
	if l.Color == "" {
		l.Color = DefaultLabelColor
	}
	if l.BackgroundColor == "" {
		l.BackgroundColor = DefaultLabelBackgroundColor
	}
	return l
}
