package tui

import (
	"github.com/akasprzok/chartkit/internal/background"
	"github.com/akasprzok/chartkit/internal/colorschemes"
	"github.com/akasprzok/chartkit/internal/crosshair"
	"github.com/akasprzok/chartkit/internal/legend"
	"github.com/akasprzok/chartkit/internal/plugin"
	"github.com/akasprzok/chartkit/internal/pointer"
	"github.com/akasprzok/chartkit/internal/selector"
	"github.com/sirupsen/logrus"
)

// Options configures every plugin of a viewer.
type Options struct {
	Background   background.Options
	ColorSchemes colorschemes.Options
	Selector     selector.Options
	Crosshair    crosshair.Options
	Pointer      pointer.Options
	Legend       legend.Options
}

// DefaultOptions returns the defaults of every plugin.
func DefaultOptions() Options {
	return Options{
		ColorSchemes: colorschemes.DefaultOptions(),
		Selector:     selector.DefaultOptions(),
		Crosshair:    crosshair.DefaultOptions(),
		Pointer:      pointer.DefaultOptions(),
		Legend:       legend.DefaultOptions(),
	}
}

// Plugins is the plugin set of a viewer, registered on one manager in draw
// order: background first so everything else paints over it.
type Plugins struct {
	Manager    *plugin.Manager
	Background *background.Plugin
	Schemes    *colorschemes.Plugin
	Selector   *selector.Plugin
	Crosshair  *crosshair.Plugin
	Pointer    *pointer.Plugin
	Legend     *legend.Plugin
}

func NewPlugins(opts Options, log logrus.FieldLogger) (*Plugins, error) {
	bg, err := background.New(opts.Background)
	if err != nil {
		return nil, err
	}
	schemes, err := colorschemes.New(opts.ColorSchemes)
	if err != nil {
		return nil, err
	}
	sel, err := selector.New(opts.Selector)
	if err != nil {
		return nil, err
	}

	mgr := plugin.NewManager(log)
	p := &Plugins{
		Manager:    mgr,
		Background: bg,
		Schemes:    schemes,
		Selector:   sel,
		Crosshair:  crosshair.New(mgr, opts.Crosshair),
		Pointer:    pointer.New(opts.Pointer),
		Legend:     legend.New(opts.Legend),
	}
	mgr.Use(p.Background, p.Schemes, p.Selector, p.Crosshair, p.Pointer, p.Legend)
	return p, nil
}
