package commands

import (
	"io"
	"os"

	"github.com/akasprzok/chartkit/internal/config"
	"github.com/akasprzok/chartkit/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultGroup links the crosshairs of every chart in the viewer when the
// configuration names no group.
const DefaultGroup = "view"

type ViewCmd struct {
	SourceFlags
}

func (v *ViewCmd) Run(ctx *Context) error {
	sources, err := v.Sources(ctx)
	if err != nil {
		return err
	}
	opts, err := pluginOptions(ctx.Config)
	if err != nil {
		return err
	}
	if opts.Crosshair.Group == "" && len(sources) > 1 {
		opts.Crosshair.Group = DefaultGroup
	}

	// The alternate screen owns the terminal.
	if ctx.Log.Out == os.Stderr {
		ctx.Log.SetOutput(io.Discard)
	}
	plugins, err := tui.NewPlugins(opts, ctx.Log)
	if err != nil {
		return err
	}

	model := tui.New(sources, plugins, ctx.Timeout, ctx.Log)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	// Extract the final model to check for errors
	if m, ok := finalModel.(tui.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

// pluginOptions maps the configuration file onto the viewer plugins.
func pluginOptions(cfg *config.Config) (tui.Options, error) {
	opts := tui.Options{
		Legend:     cfg.LegendOptions(),
		Background: cfg.BackgroundOptions(),
	}
	var err error
	if opts.Selector, err = cfg.SelectorOptions(); err != nil {
		return tui.Options{}, err
	}
	if opts.Crosshair, err = cfg.CrosshairOptions(); err != nil {
		return tui.Options{}, err
	}
	if opts.Pointer, err = cfg.PointerOptions(); err != nil {
		return tui.Options{}, err
	}
	if opts.ColorSchemes, err = cfg.ColorSchemesOptions(); err != nil {
		return tui.Options{}, err
	}
	return opts, nil
}
