package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/stretchr/testify/require"
	gochart "github.com/wcharczuk/go-chart"
)

func newChart(t *testing.T) *chart.Model {
	t.Helper()
	c, err := chart.New("latency",
		chart.Dataset{Label: "p50", Points: []chart.Point{{X: 0, Y: 10}, {X: 10, Y: 20}, {X: 20, Y: 15}}},
		chart.Dataset{Label: "p99", Points: []chart.Point{{X: 0, Y: 30}, {X: 20, Y: 50}}, Color: "#EE6677"},
		chart.Dataset{Label: "max", Points: []chart.Point{{X: 0, Y: 90}, {X: 20, Y: 95}}, Hidden: true},
	)
	require.NoError(t, err)
	c.Title = "Latency"
	return c
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{" SVG ", FormatSVG, false},
		{"jpeg", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("ParseFormat(%q) error = %v, want ErrUnsupportedFormat", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	f, err := FormatFromPath("/tmp/out.Png")
	require.NoError(t, err)
	require.Equal(t, FormatPNG, f)
}

func TestBuild(t *testing.T) {
	c := newChart(t)

	graph, err := Build(c, Options{})
	require.NoError(t, err)
	require.Equal(t, DefaultWidth, graph.Width)
	require.Equal(t, DefaultHeight, graph.Height)
	require.Equal(t, DefaultDPI, graph.DPI)
	require.Len(t, graph.Series, 2, "hidden datasets are skipped")
	require.Equal(t, "p50", graph.Series[0].GetName())
	require.Len(t, graph.Elements, 1)
}

func TestBuildCrosshair(t *testing.T) {
	c := newChart(t)
	at := 5.0

	graph, err := Build(c, Options{Crosshair: &at})
	require.NoError(t, err)
	require.Len(t, graph.Series, 4)
	require.Equal(t, crosshairName, graph.Series[2].GetName())

	annotations, ok := graph.Series[3].(gochart.AnnotationSeries)
	require.True(t, ok)
	labels := make([]string, len(annotations.Annotations))
	for i, a := range annotations.Annotations {
		labels[i] = a.Label
	}
	require.Equal(t, []string{"15", "35"}, labels)

	outside := 100.0
	graph, err = Build(c, Options{Crosshair: &outside})
	require.NoError(t, err)
	require.Len(t, graph.Series, 3, "no annotations outside the data")
}

func TestBuildNothingVisible(t *testing.T) {
	c := newChart(t)
	for i := range c.Datasets() {
		c.SetDatasetVisible(i, false)
	}
	_, err := Build(c, Options{})
	require.True(t, errors.Is(err, ErrNothingVisible))
}

func TestRender(t *testing.T) {
	c := newChart(t)

	var png bytes.Buffer
	require.NoError(t, Render(&png, c, FormatPNG, Options{Width: 320, Height: 200}))
	require.True(t, bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")))

	var svg bytes.Buffer
	require.NoError(t, Render(&svg, c, FormatSVG, Options{Width: 320, Height: 200}))
	require.True(t, strings.Contains(svg.String(), "<svg"))

	require.Error(t, Render(&svg, c, Format("gif"), Options{}))
}

func TestWriteFile(t *testing.T) {
	c := newChart(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "latency.svg")
	require.NoError(t, WriteFile(path, c, Options{Width: 320, Height: 200}))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))

	err = WriteFile(filepath.Join(dir, "latency.bmp"), c, Options{})
	require.True(t, errors.Is(err, ErrUnsupportedFormat))
}
