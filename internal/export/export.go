// Package export renders charts to PNG or SVG images.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/colorschemes"
	"github.com/akasprzok/chartkit/internal/crosshair"
	gochart "github.com/wcharczuk/go-chart"
	"github.com/wcharczuk/go-chart/drawing"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrNothingVisible    = errors.New("chart has no visible datasets")
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 400
	DefaultDPI    = 72.0

	crosshairName = "crosshair"
)

// ParseFormat parses an image format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatSVG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath derives the image format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

type Options struct {
	Width  int
	Height int
	DPI    float64
	// Crosshair draws a dashed vertical line at this X value and annotates
	// the dataset values there.
	Crosshair *float64
	// CrosshairColor defaults to the crosshair plugin line colour.
	CrosshairColor string
}

// Render writes c to w in the given format.
func Render(w io.Writer, c *chart.Model, format Format, opts Options) error {
	var provider gochart.RendererProvider
	switch format {
	case FormatPNG:
		provider = gochart.PNG
	case FormatSVG:
		provider = gochart.SVG
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	graph, err := Build(c, opts)
	if err != nil {
		return err
	}
	return graph.Render(provider, w)
}

// WriteFile renders c into path, picking the format from its extension.
func WriteFile(path string, c *chart.Model, opts Options) (err error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Render(f, c, format, opts)
}

// Build converts c into a go-chart chart without rendering it.
func Build(c *chart.Model, opts Options) (*gochart.Chart, error) {
	graph := &gochart.Chart{
		Title:  c.Title,
		Width:  orDefault(opts.Width, DefaultWidth),
		Height: orDefault(opts.Height, DefaultHeight),
		DPI:    opts.DPI,
		XAxis: gochart.XAxis{
			Style:          gochart.Style{Show: true},
			ValueFormatter: scaleFormatter(c, chart.DefaultXScaleID),
		},
		YAxis: gochart.YAxis{
			Style:          gochart.Style{Show: true},
			ValueFormatter: scaleFormatter(c, chart.DefaultYScaleID),
		},
	}
	if graph.DPI <= 0 {
		graph.DPI = DefaultDPI
	}
	if c.Title != "" {
		graph.TitleStyle = gochart.Style{Show: true}
	}

	for i, ds := range c.Datasets() {
		if !c.IsDatasetVisible(i) || len(ds.Points) == 0 {
			continue
		}
		series := gochart.ContinuousSeries{
			Name:    ds.Label,
			Style:   seriesStyle(ds, i),
			XValues: make([]float64, len(ds.Points)),
			YValues: make([]float64, len(ds.Points)),
		}
		for j, p := range ds.Points {
			series.XValues[j] = p.X
			series.YValues[j] = p.Y
		}
		graph.Series = append(graph.Series, series)
	}
	if len(graph.Series) == 0 {
		return nil, ErrNothingVisible
	}

	if opts.Crosshair != nil {
		graph.Series = append(graph.Series, crosshairSeries(c, *opts.Crosshair, opts.CrosshairColor)...)
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(graph)}
	return graph, nil
}

func crosshairSeries(c *chart.Model, x float64, color string) []gochart.Series {
	if color == "" {
		color = crosshair.DefaultLineColor
	}
	minY, maxY := 0.0, 1.0
	if ys, ok := c.Scale(chart.DefaultYScaleID); ok {
		minY, maxY = ys.Min, ys.Max
	}
	line := gochart.ContinuousSeries{
		Name: crosshairName,
		Style: gochart.Style{
			Show:            true,
			StrokeColor:     hexColor(color),
			StrokeWidth:     1,
			StrokeDashArray: []float64{4, 4},
		},
		XValues: []float64{x, x},
		YValues: []float64{minY, maxY},
	}

	format := scaleFormatter(c, chart.DefaultYScaleID)
	var annotations []gochart.Value2
	for _, v := range crosshair.InterpolateAt(c, x) {
		if crosshair.IsUndefined(v) {
			continue
		}
		annotations = append(annotations, gochart.Value2{
			XValue: x,
			YValue: v,
			Label:  format(v),
		})
	}
	if len(annotations) == 0 {
		return []gochart.Series{line}
	}
	return []gochart.Series{line, gochart.AnnotationSeries{
		Name:        crosshairName + " values",
		Style:       gochart.Style{Show: true},
		Annotations: annotations,
	}}
}

func seriesStyle(ds chart.Dataset, index int) gochart.Style {
	stroke := ds.Color
	if stroke == "" {
		stroke = colorschemes.TolQualitative.Color(index, false)
	}
	return gochart.Style{
		Show:        true,
		StrokeColor: hexColor(stroke),
		StrokeWidth: 2,
	}
}

func scaleFormatter(c *chart.Model, id string) gochart.ValueFormatter {
	s, ok := c.Scale(id)
	return func(v interface{}) string {
		f, isFloat := v.(float64)
		if !isFloat {
			return fmt.Sprint(v)
		}
		if !ok {
			return chart.NumberFormat(f)
		}
		return s.Label(f)
	}
}

func hexColor(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
