package colorschemes

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/plugin"
	"github.com/hashicorp/golang-lru/simplelru"
	"github.com/lucasb-eyer/go-colorful"
)

const ID = "colorschemes"

var ErrInvalidAlpha = errors.New("background alpha must be between 0 and 1")

// Scope selects what a colour is assigned to.
type Scope string

const (
	// ScopeDataset gives every dataset one colour.
	ScopeDataset Scope = "dataset"
	// ScopeData gives every data point of a dataset its own colour.
	ScopeData Scope = "data"
)

const (
	DefaultScheme          = "brewer.Paired12"
	DefaultBackgroundAlpha = 0.5
	// DefaultChartBackground is what background colours are blended against.
	DefaultChartBackground = "#000000"

	paletteCacheSize = 64
)

type Options struct {
	Scheme          string
	Scope           Scope
	BackgroundAlpha float64
	Reverse         bool
	ChartBackground string
}

func DefaultOptions() Options {
	return Options{
		Scheme:          DefaultScheme,
		Scope:           ScopeDataset,
		BackgroundAlpha: DefaultBackgroundAlpha,
		ChartBackground: DefaultChartBackground,
	}
}

// Validate checks the alpha range and resolves the scheme.
func (o Options) Validate() error {
	if o.BackgroundAlpha < 0 || o.BackgroundAlpha > 1 {
		return fmt.Errorf("%v: %w", o.BackgroundAlpha, ErrInvalidAlpha)
	}
	if _, err := Lookup(o.Scheme); err != nil {
		return err
	}
	if _, err := colorful.Hex(o.ChartBackground); err != nil {
		return fmt.Errorf("chart background %q: %w", o.ChartBackground, err)
	}
	switch o.Scope {
	case ScopeDataset, ScopeData:
		return nil
	default:
		return fmt.Errorf("unknown scheme scope %q", o.Scope)
	}
}

// palette is a scheme with background colours already blended.
type palette struct {
	scheme      Scheme
	backgrounds []string
}

// Plugin colours datasets on every update.
type Plugin struct {
	opts Options

	mu    sync.Mutex
	cache *simplelru.LRU
}

// New validates opts and returns the plugin.
func New(opts Options) (*Plugin, error) {
	if opts.Scheme == "" {
		opts.Scheme = DefaultScheme
	}
	if opts.Scope == "" {
		opts.Scope = ScopeDataset
	}
	if opts.ChartBackground == "" {
		opts.ChartBackground = DefaultChartBackground
	}
	opts.Scope = Scope(strings.ToLower(string(opts.Scope)))
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	cache, err := simplelru.NewLRU(paletteCacheSize, nil)
	if err != nil {
		return nil, err
	}
	return &Plugin{opts: opts, cache: cache}, nil
}

func (p *Plugin) ID() string {
	return ID
}

func (p *Plugin) Options() Options {
	return p.opts
}

func (p *Plugin) OnBeforeUpdate(c *chart.Model) {
	// Options are validated in New.
	_ = p.Apply(c)
}

func (p *Plugin) OnAfterDraw(*chart.Model, *linechart.Model) {}

func (p *Plugin) OnAfterEvent(*chart.Model, plugin.Event) bool {
	return false
}

func (p *Plugin) OnBeforeDestroy(*chart.Model) {}

// Apply assigns scheme colours to every dataset of c.
func (p *Plugin) Apply(c *chart.Model) error {
	pal, err := p.palette()
	if err != nil {
		return err
	}
	for i := range c.Datasets() {
		ds := c.Dataset(i)
		ds.Color = pal.scheme.Color(i, p.opts.Reverse)
		ds.BackgroundColor = pal.background(i, p.opts.Reverse)
		ds.PointColors = nil
		if p.opts.Scope == ScopeData {
			ds.PointColors = make([]string, len(ds.Points))
			for j := range ds.Points {
				ds.PointColors[j] = pal.scheme.Color(j, p.opts.Reverse)
			}
		}
	}
	return nil
}

func (pal palette) background(i int, reverse bool) string {
	return Scheme{Colors: pal.backgrounds}.Color(i, reverse)
}

func (p *Plugin) palette() (palette, error) {
	scheme, err := Lookup(p.opts.Scheme)
	if err != nil {
		return palette{}, err
	}
	// Registered schemes may be replaced, so the colours are part of the key.
	key := fmt.Sprintf("%s|%s|%g|%s", scheme.Key(), strings.Join(scheme.Colors, ","), p.opts.BackgroundAlpha, p.opts.ChartBackground)

	p.mu.Lock()
	defer p.mu.Unlock()
	if v, ok := p.cache.Get(key); ok {
		return v.(palette), nil
	}

	backgrounds, err := Blend(scheme.Colors, p.opts.ChartBackground, p.opts.BackgroundAlpha)
	if err != nil {
		return palette{}, err
	}
	pal := palette{scheme: scheme, backgrounds: backgrounds}
	p.cache.Add(key, pal)
	return pal, nil
}

// Blend composites every colour over background at the given alpha.
func Blend(colors []string, background string, alpha float64) ([]string, error) {
	if alpha < 0 || alpha > 1 {
		return nil, fmt.Errorf("%v: %w", alpha, ErrInvalidAlpha)
	}
	bg, err := colorful.Hex(background)
	if err != nil {
		return nil, fmt.Errorf("background %q: %w", background, err)
	}
	result := make([]string, len(colors))
	for i, hex := range colors {
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, fmt.Errorf("color %q: %w", hex, err)
		}
		result[i] = bg.BlendRgb(c, alpha).Clamped().Hex()
	}
	return result, nil
}
