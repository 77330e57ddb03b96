package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/akasprzok/chartkit/internal/config"
	"github.com/akasprzok/chartkit/internal/source"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

const dataset = `title: requests
datasets:
  - label: api
    points: [[0, 0], [10, 100]]
  - label: web
    points: [[5, 1], [10, 2]]
`

func testContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	out := &bytes.Buffer{}
	return &Context{Timeout: time.Second, Config: &config.Config{}, Log: log, Out: out}, out
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requests.yaml")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o644))
	return path
}

func TestSources(t *testing.T) {
	ctx, _ := testContext(t)

	_, err := (&SourceFlags{}).Sources(ctx)
	require.ErrorIs(t, err, ErrNoSources)

	_, err = (&SourceFlags{Query: []string{"up"}}).Sources(ctx)
	require.ErrorIs(t, err, ErrNoPrometheusURL)

	_, err = (&SourceFlags{PrometheusURL: "http://localhost:9090", Query: []string{"sum(up"}}).Sources(ctx)
	require.Error(t, err)

	_, err = (&SourceFlags{File: []string{"data.csv"}}).Sources(ctx)
	require.ErrorIs(t, err, ErrUnsupportedFileExt)

	ctx.Config.Prometheus.URL = "http://localhost:9090"
	ctx.Config.Prometheus.Range = "2h"
	flags := &SourceFlags{
		Query: []string{"up"},
		File:  []string{"a.yaml", "b.json", "c.xlsx"},
		Sheet: "data",
		Step:  time.Minute,
	}
	sources, err := flags.Sources(ctx)
	require.NoError(t, err)
	require.Len(t, sources, 4)

	prom, ok := sources[0].(*source.Prometheus)
	require.True(t, ok)
	require.Equal(t, 2*time.Hour, prom.Range)
	require.Equal(t, time.Minute, prom.Step)
	require.IsType(t, &source.File{}, sources[1])
	require.IsType(t, &source.File{}, sources[2])
	require.Equal(t, &source.XLSX{Path: "c.xlsx", Sheet: "data"}, sources[3])
}

func TestInterpolateTable(t *testing.T) {
	ctx, out := testContext(t)
	cmd := &InterpolateCmd{SourceFlags: SourceFlags{File: []string{writeDataset(t)}}, At: "5", Output: "table"}

	require.NoError(t, cmd.Run(ctx))
	for _, want := range []string{"requests @ 5", "api", "50", "web"} {
		require.Contains(t, out.String(), want)
	}
}

func TestInterpolateJSON(t *testing.T) {
	ctx, out := testContext(t)
	cmd := &InterpolateCmd{SourceFlags: SourceFlags{File: []string{writeDataset(t)}}, At: "2.5", Output: "json"}
	require.NoError(t, cmd.Run(ctx))

	var got []Interpolation
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "requests", got[0].Title)
	require.Len(t, got[0].Datasets, 2)
	require.NotNil(t, got[0].Datasets[0].Value)
	require.InDelta(t, 25, *got[0].Datasets[0].Value, 1e-9)
	require.Nil(t, got[0].Datasets[1].Value, "web starts at 5")
}

func TestInterpolateYAML(t *testing.T) {
	ctx, out := testContext(t)
	cmd := &InterpolateCmd{SourceFlags: SourceFlags{File: []string{writeDataset(t)}}, At: "7.5", Output: "yaml"}
	require.NoError(t, cmd.Run(ctx))

	var got []Interpolation
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	require.InDelta(t, 1.5, *got[0].Datasets[1].Value, 1e-9)
}

func TestInterpolateBadX(t *testing.T) {
	ctx, _ := testContext(t)
	cmd := &InterpolateCmd{SourceFlags: SourceFlags{File: []string{writeDataset(t)}}, At: "yesterday"}
	require.Error(t, cmd.Run(ctx))
}

func TestExport(t *testing.T) {
	ctx, out := testContext(t)
	path := writeDataset(t)
	target := filepath.Join(t.TempDir(), "chart.svg")

	cmd := &ExportCmd{
		SourceFlags: SourceFlags{File: []string{path, path}},
		Out:         target,
		Width:       400,
		Height:      200,
		Crosshair:   "5",
	}
	require.NoError(t, cmd.Run(ctx))

	for _, n := range []int{1, 2} {
		data, err := os.ReadFile(NumberedPath(target, n))
		require.NoError(t, err)
		require.Contains(t, string(data), "<svg")
	}
	require.Equal(t, 2, strings.Count(out.String(), "\n"))

	cmd.Out = filepath.Join(t.TempDir(), "chart.bmp")
	require.Error(t, cmd.Run(ctx))
}

func TestNumberedPath(t *testing.T) {
	require.Equal(t, "out/chart-2.png", NumberedPath("out/chart.png", 2))
	require.Equal(t, "chart-1", NumberedPath("chart", 1))
}

func TestSchemes(t *testing.T) {
	ctx, out := testContext(t)
	require.NoError(t, (&SchemesCmd{Category: "tol"}).Run(ctx))
	require.Contains(t, out.String(), "tol.qualitative10")
	require.NotContains(t, out.String(), "brewer.")
}

func TestFormatQuery(t *testing.T) {
	ctx, out := testContext(t)
	require.NoError(t, (&FormatQueryCmd{Query: "sum(rate(http_requests_total[5m]))"}).Run(ctx))
	require.Contains(t, out.String(), "http_requests_total")

	require.Error(t, (&FormatQueryCmd{Query: "sum("}).Run(ctx))
}

func TestPluginOptions(t *testing.T) {
	cfg, err := config.Parse([]byte("crosshair:\n  mode: x\n"))
	require.NoError(t, err)
	opts, err := pluginOptions(cfg)
	require.NoError(t, err)
	require.EqualValues(t, "x", opts.Crosshair.Mode)

	cfg, err = config.Parse([]byte("colorschemes:\n  scheme: nope.nope\n"))
	require.NoError(t, err)
	_, err = pluginOptions(cfg)
	require.Error(t, err)

	cfg, err = config.Parse([]byte("selector:\n  modifier_key: shfit\n"))
	require.NoError(t, err)
	_, err = pluginOptions(cfg)
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chartkit.log")
	log, closer, err := NewLogger(path, "debug")
	require.NoError(t, err)
	log.Debug("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello")

	_, _, err = NewLogger("", "loud")
	require.Error(t, err)
}
