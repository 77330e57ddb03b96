// Package config reads the optional YAML file that overrides plugin
// defaults. Unset fields keep the plugin defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/akasprzok/chartkit/internal/background"
	"github.com/akasprzok/chartkit/internal/colorschemes"
	"github.com/akasprzok/chartkit/internal/crosshair"
	"github.com/akasprzok/chartkit/internal/legend"
	"github.com/akasprzok/chartkit/internal/plugin"
	"github.com/akasprzok/chartkit/internal/pointer"
	"github.com/akasprzok/chartkit/internal/selector"
	"gopkg.in/yaml.v2"
)

const (
	DefaultRange = time.Hour
	DefaultStep  = 15 * time.Second
)

// Config is the layout of the configuration file.
//
//	prometheus:
//	  url: http://localhost:9090
//	crosshair:
//	  mode: x
//	  group: cpu
//	colorschemes:
//	  scheme: tableau.Tableau10
type Config struct {
	Prometheus   Prometheus   `yaml:"prometheus"`
	Crosshair    Crosshair    `yaml:"crosshair"`
	Pointer      Pointer      `yaml:"pointer"`
	ColorSchemes ColorSchemes `yaml:"colorschemes"`
	Selector     Selector     `yaml:"selector"`
	Legend       Legend       `yaml:"legend"`
	Background   Background   `yaml:"background"`
	Schemes      []Scheme     `yaml:"schemes"`
}

type Prometheus struct {
	URL   string `yaml:"url"`
	Range string `yaml:"range"`
	Step  string `yaml:"step"`
}

type Label struct {
	Display         *bool  `yaml:"display"`
	Padding         *int   `yaml:"padding"`
	Color           string `yaml:"color"`
	BackgroundColor string `yaml:"background_color"`
}

type Crosshair struct {
	Enabled     *bool  `yaml:"enabled"`
	Mode        string `yaml:"mode"`
	LineColor   string `yaml:"line_color"`
	LineRune    string `yaml:"line_rune"`
	Group       string `yaml:"group"`
	ModifierKey string `yaml:"modifier_key"`
	XLabel      Label  `yaml:"x_label"`
	YLabel      Label  `yaml:"y_label"`
}

type Pointer struct {
	Elements      []string `yaml:"elements"`
	CursorPointer string   `yaml:"cursor_pointer"`
	CursorDefault string   `yaml:"cursor_default"`
}

type ColorSchemes struct {
	Scheme          string   `yaml:"scheme"`
	Scope           string   `yaml:"scope"`
	BackgroundAlpha *float64 `yaml:"background_alpha"`
	Reverse         bool     `yaml:"reverse"`
	ChartBackground string   `yaml:"chart_background"`
}

type Selector struct {
	Enabled       *bool    `yaml:"enabled"`
	Color         string   `yaml:"color"`
	Alpha         *float64 `yaml:"alpha"`
	BorderColor   string   `yaml:"border_color"`
	XScaleID      string   `yaml:"x_scale_id"`
	ClearByEscape *bool    `yaml:"clear_by_escape"`
	ModifierKey   string   `yaml:"modifier_key"`
}

type Legend struct {
	Display    *bool `yaml:"display"`
	MaxColumns int   `yaml:"max_columns"`
}

type Background struct {
	BackgroundColor     string `yaml:"background_color"`
	AreaBackgroundColor string `yaml:"area_background_color"`
	FillArea            bool   `yaml:"fill_area"`
	Gradient            string `yaml:"gradient"`
}

// Scheme is a custom colour scheme registered at startup.
type Scheme struct {
	Category string   `yaml:"category"`
	Name     string   `yaml:"name"`
	Colors   []string `yaml:"colors"`
}

// Load reads path. An empty path yields the zero Config, which maps onto
// plugin defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// RegisterSchemes adds the custom schemes to the colour scheme registry.
func (c *Config) RegisterSchemes() error {
	for _, s := range c.Schemes {
		err := colorschemes.Register(colorschemes.Scheme{Category: s.Category, Name: s.Name, Colors: s.Colors})
		if err != nil {
			return fmt.Errorf("scheme %s.%s: %w", s.Category, s.Name, err)
		}
	}
	return nil
}

// PrometheusRange returns the query range and step, defaulting when unset.
func (c *Config) PrometheusRange() (rng, step time.Duration, err error) {
	rng, err = duration(c.Prometheus.Range, DefaultRange)
	if err != nil {
		return 0, 0, fmt.Errorf("prometheus range: %w", err)
	}
	step, err = duration(c.Prometheus.Step, DefaultStep)
	if err != nil {
		return 0, 0, fmt.Errorf("prometheus step: %w", err)
	}
	return rng, step, nil
}

func (c *Config) CrosshairOptions() (crosshair.Options, error) {
	o := crosshair.DefaultOptions()
	cc := c.Crosshair
	setBool(&o.Enabled, cc.Enabled)
	if cc.Mode != "" {
		mode, err := crosshair.ParseMode(cc.Mode)
		if err != nil {
			return o, err
		}
		o.Mode = mode
	}
	setString(&o.LineColor, cc.LineColor)
	if r := []rune(cc.LineRune); len(r) > 0 {
		o.LineRune = r[0]
	}
	o.Group = cc.Group
	key, err := plugin.ParseModifierKey(cc.ModifierKey)
	if err != nil {
		return o, fmt.Errorf("crosshair: %w", err)
	}
	o.ModifierKey = key
	o.XLabel = cc.XLabel.apply(o.XLabel)
	o.YLabel = cc.YLabel.apply(o.YLabel)
	return o, nil
}

func (l Label) apply(o crosshair.Label) crosshair.Label {
	setBool(&o.Display, l.Display)
	if l.Padding != nil {
		o.Padding = *l.Padding
	}
	setString(&o.Color, l.Color)
	setString(&o.BackgroundColor, l.BackgroundColor)
	return o
}

func (c *Config) PointerOptions() (pointer.Options, error) {
	o := pointer.DefaultOptions()
	if len(c.Pointer.Elements) > 0 {
		o.Elements = make([]pointer.Element, 0, len(c.Pointer.Elements))
		for _, s := range c.Pointer.Elements {
			e, err := pointer.ParseElement(s)
			if err != nil {
				return o, err
			}
			o.Elements = append(o.Elements, e)
		}
	}
	setString(&o.CursorPointer, c.Pointer.CursorPointer)
	setString(&o.CursorDefault, c.Pointer.CursorDefault)
	return o, nil
}

// ColorSchemesOptions returns the scheme options, validated.
func (c *Config) ColorSchemesOptions() (colorschemes.Options, error) {
	o := colorschemes.DefaultOptions()
	cs := c.ColorSchemes
	setString(&o.Scheme, cs.Scheme)
	if cs.Scope != "" {
		o.Scope = colorschemes.Scope(cs.Scope)
	}
	if cs.BackgroundAlpha != nil {
		o.BackgroundAlpha = *cs.BackgroundAlpha
	}
	o.Reverse = cs.Reverse
	setString(&o.ChartBackground, cs.ChartBackground)
	return o, o.Validate()
}

func (c *Config) SelectorOptions() (selector.Options, error) {
	o := selector.DefaultOptions()
	sc := c.Selector
	setBool(&o.Enabled, sc.Enabled)
	setString(&o.Color, sc.Color)
	if sc.Alpha != nil {
		o.Alpha = *sc.Alpha
	}
	setString(&o.BorderColor, sc.BorderColor)
	setString(&o.XScaleID, sc.XScaleID)
	setBool(&o.ClearByEscape, sc.ClearByEscape)
	key, err := plugin.ParseModifierKey(sc.ModifierKey)
	if err != nil {
		return o, fmt.Errorf("selector: %w", err)
	}
	o.ModifierKey = key
	// The selection band is blended against the chart background.
	setString(&o.Background, c.Background.BackgroundColor)
	setString(&o.Background, c.Background.AreaBackgroundColor)
	return o, nil
}

func (c *Config) LegendOptions() legend.Options {
	o := legend.DefaultOptions()
	setBool(&o.Display, c.Legend.Display)
	o.MaxColumns = c.Legend.MaxColumns
	return o
}

func (c *Config) BackgroundOptions() background.Options {
	return background.Options{
		BackgroundColor:     c.Background.BackgroundColor,
		AreaBackgroundColor: c.Background.AreaBackgroundColor,
		FillArea:            c.Background.FillArea,
		Gradient:            c.Background.Gradient,
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func duration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
