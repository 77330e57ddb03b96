package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/colorschemes"
	"github.com/akasprzok/chartkit/internal/crosshair"
	"github.com/akasprzok/chartkit/internal/source"
	"github.com/akasprzok/chartkit/internal/tables"
	"gopkg.in/yaml.v2"
)

type InterpolateCmd struct {
	SourceFlags
	At     string `name:"at" required:"" help:"X value, as a number or an RFC 3339 time."`
	Output string `name:"output" short:"o" help:"Output format." default:"table" enum:"table,json,yaml"`
}

// Interpolation is the machine readable result for one chart.
type Interpolation struct {
	Chart    string         `json:"chart" yaml:"chart"`
	Title    string         `json:"title,omitempty" yaml:"title,omitempty"`
	X        float64        `json:"x" yaml:"x"`
	Datasets []DatasetValue `json:"datasets" yaml:"datasets"`
}

// DatasetValue is nil when the dataset has no value at X.
type DatasetValue struct {
	Label  string   `json:"label" yaml:"label"`
	Hidden bool     `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Value  *float64 `json:"value" yaml:"value"`
}

func (i *InterpolateCmd) Run(ctx *Context) error {
	x, _, err := source.ParseX(i.At)
	if err != nil {
		return err
	}
	loaded, err := loadCharts(ctx, &i.SourceFlags)
	if err != nil {
		return err
	}

	switch i.Output {
	case "json":
		out, err := json.MarshalIndent(Interpolate(loaded, x), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(ctx.Out, string(out))
		return err
	case "yaml":
		out, err := yaml.Marshal(Interpolate(loaded, x))
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(ctx.Out, string(out))
		return err
	default:
		for _, c := range loaded {
			title := c.Title
			if title == "" {
				title = c.ID()
			}
			rows := tables.Rows(c, crosshair.InterpolateAt(c, x))
			if _, err := fmt.Fprintf(ctx.Out, "%s @ %s\n%s\n", title, xLabel(c, x), tables.Render(rows)); err != nil {
				return err
			}
		}
		return nil
	}
}

// Interpolate evaluates every chart at x.
func Interpolate(loaded []*chart.Model, x float64) []Interpolation {
	result := make([]Interpolation, 0, len(loaded))
	for _, c := range loaded {
		values := crosshair.InterpolateAt(c, x)
		it := Interpolation{Chart: c.ID(), Title: c.Title, X: x, Datasets: make([]DatasetValue, len(values))}
		for j, ds := range c.Datasets() {
			dv := DatasetValue{Label: ds.Label, Hidden: !c.IsDatasetVisible(j)}
			if !crosshair.IsUndefined(values[j]) {
				v := values[j]
				dv.Value = &v
			}
			it.Datasets[j] = dv
		}
		result = append(result, it)
	}
	return result
}

func xLabel(c *chart.Model, x float64) string {
	if xs, ok := c.Scale(chart.DefaultXScaleID); ok {
		return xs.Label(x)
	}
	return chart.NumberFormat(x)
}

// loadCharts loads every source within the timeout and colours the datasets
// with the configured scheme.
func loadCharts(ctx *Context, flags *SourceFlags) ([]*chart.Model, error) {
	sources, err := flags.Sources(ctx)
	if err != nil {
		return nil, err
	}
	opts, err := ctx.Config.ColorSchemesOptions()
	if err != nil {
		return nil, err
	}
	schemes, err := colorschemes.New(opts)
	if err != nil {
		return nil, err
	}

	loadCtx := context.Background()
	if ctx.Timeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(loadCtx, ctx.Timeout)
		defer cancel()
	}
	loaded, err := source.LoadAll(loadCtx, sources...)
	if err != nil {
		return nil, err
	}
	for _, c := range loaded {
		if err := schemes.Apply(c); err != nil {
			return nil, err
		}
		ctx.Log.WithField("chart", c.ID()).WithField("datasets", len(c.Datasets())).Debug("chart loaded")
	}
	return loaded, nil
}
