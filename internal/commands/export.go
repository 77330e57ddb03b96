package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/akasprzok/chartkit/internal/export"
	"github.com/akasprzok/chartkit/internal/source"
)

type ExportCmd struct {
	SourceFlags
	Out       string  `name:"out" short:"o" required:"" type:"path" help:"Output file, .png or .svg. Several charts are numbered."`
	Width     int     `name:"width" help:"Image width in pixels." default:"1024"`
	Height    int     `name:"height" help:"Image height in pixels." default:"400"`
	DPI       float64 `name:"dpi" help:"Image resolution." default:"72"`
	Crosshair string  `name:"crosshair" help:"Draw a crosshair at this X value, as a number or an RFC 3339 time."`
}

func (e *ExportCmd) Run(ctx *Context) error {
	if _, err := export.FormatFromPath(e.Out); err != nil {
		return err
	}
	opts := export.Options{Width: e.Width, Height: e.Height, DPI: e.DPI}
	if e.Crosshair != "" {
		x, _, err := source.ParseX(e.Crosshair)
		if err != nil {
			return err
		}
		opts.Crosshair = &x
		ch, err := ctx.Config.CrosshairOptions()
		if err != nil {
			return err
		}
		opts.CrosshairColor = ch.LineColor
	}

	loaded, err := loadCharts(ctx, &e.SourceFlags)
	if err != nil {
		return err
	}
	for i, c := range loaded {
		path := e.Out
		if len(loaded) > 1 {
			path = NumberedPath(e.Out, i+1)
		}
		if err := export.WriteFile(path, c, opts); err != nil {
			return fmt.Errorf("exporting %s: %w", c.ID(), err)
		}
		ctx.Log.WithField("chart", c.ID()).WithField("path", path).Info("chart exported")
		if _, err := fmt.Fprintln(ctx.Out, path); err != nil {
			return err
		}
	}
	return nil
}

// NumberedPath inserts n before the extension of path.
func NumberedPath(path string, n int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), n, ext)
}
