package source

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/prometheus"
	"github.com/google/go-cmp/cmp"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeSource struct {
	name  string
	delay time.Duration
	err   error
}

func (f fakeSource) Name() string { return f.name }

func (f fakeSource) Load(ctx context.Context) (*chart.Model, error) {
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return chart.New(f.name, chart.Dataset{Points: []chart.Point{{X: 0, Y: 0}}})
}

func TestLoadAllKeepsOrder(t *testing.T) {
	charts, err := LoadAll(context.Background(),
		fakeSource{name: "slow", delay: 20 * time.Millisecond},
		fakeSource{name: "fast"},
		fakeSource{name: "medium", delay: 5 * time.Millisecond},
	)
	require.NoError(t, err)
	ids := make([]string, len(charts))
	for i, c := range charts {
		ids[i] = c.ID()
	}
	require.Equal(t, []string{"slow", "fast", "medium"}, ids)
}

func TestLoadAllUniqueIDs(t *testing.T) {
	dirs := []string{t.TempDir(), t.TempDir()}
	var sources []Source
	for _, dir := range dirs {
		path := filepath.Join(dir, "data.yaml")
		require.NoError(t, os.WriteFile(path, []byte("datasets:\n  - points: [[0, 1], [1, 2]]\n"), 0o644))
		sources = append(sources, &File{Path: path})
	}
	sources = append(sources, fakeSource{name: "data.yaml#2"}, fakeSource{name: "up"}, fakeSource{name: "up"})

	charts, err := LoadAll(context.Background(), sources...)
	require.NoError(t, err)
	ids := make([]string, len(charts))
	for i, c := range charts {
		ids[i] = c.ID()
	}
	if diff := cmp.Diff([]string{"data.yaml", "data.yaml#2", "data.yaml#2#2", "up", "up#2"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAllError(t *testing.T) {
	boom := errors.New("boom")
	_, err := LoadAll(context.Background(),
		fakeSource{name: "ok", delay: time.Second},
		fakeSource{name: "bad", err: boom},
	)
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	require.Equal(t, "bad", loadErr.Source)
	require.True(t, errors.Is(err, boom))
	require.Equal(t, "loading bad: boom", err.Error())
}

func TestParseX(t *testing.T) {
	tests := []struct {
		in       string
		want     float64
		wantTime bool
		wantErr  bool
	}{
		{"1.5", 1.5, false, false},
		{" 42 ", 42, false, false},
		{"1970-01-01T00:01:00Z", 60, true, false},
		{"yesterday", 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, isTime, err := ParseX(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseX(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want || isTime != tt.wantTime {
				t.Errorf("ParseX(%q) = %v, %v, want %v, %v", tt.in, got, isTime, tt.want, tt.wantTime)
			}
		})
	}
}

func TestFromMatrix(t *testing.T) {
	matrix := model.Matrix{
		&model.SampleStream{
			Metric: model.Metric{"__name__": "up", "job": "api"},
			Values: []model.SamplePair{
				{Timestamp: model.TimeFromUnix(20), Value: 1},
				{Timestamp: model.TimeFromUnix(10), Value: 0},
				{Timestamp: model.TimeFromUnix(30), Value: model.SampleValue(math.NaN())},
			},
		},
	}
	c, err := FromMatrix("up", "up", matrix)
	require.NoError(t, err)
	require.Equal(t, "up", c.Title)

	ds := c.Datasets()[0]
	require.Equal(t, `up{job="api"}`, ds.Label)
	if diff := cmp.Diff([]chart.Point{{X: 10, Y: 0}, {X: 20, Y: 1}}, ds.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	xs, ok := c.Scale(chart.DefaultXScaleID)
	require.True(t, ok)
	require.True(t, xs.Time)

	_, err = FromMatrix("empty", "", model.Matrix{})
	require.True(t, errors.Is(err, ErrNoData))
}

func TestPrometheusLoad(t *testing.T) {
	now := time.Unix(1000, 0)
	var got v1.Range
	client := &prometheus.MockClient{
		QueryRangeFunc: func(_ context.Context, query string, r v1.Range) (model.Matrix, v1.Warnings, error) {
			got = r
			return model.Matrix{&model.SampleStream{
				Metric: model.Metric{"__name__": "up"},
				Values: []model.SamplePair{{Timestamp: model.TimeFromUnix(990), Value: 1}},
			}}, v1.Warnings{"partial"}, nil
		},
	}
	src := &Prometheus{Client: client, Query: "up", Range: time.Minute, Step: time.Second, now: func() time.Time { return now }}

	c, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "up", c.ID())
	require.Equal(t, v1.Range{Start: now.Add(-time.Minute), End: now, Step: time.Second}, got)

	failing := &Prometheus{Client: &prometheus.MockClient{
		QueryRangeFunc: func(context.Context, string, v1.Range) (model.Matrix, v1.Warnings, error) {
			return nil, nil, errors.New("unavailable")
		},
	}, Query: "up"}
	_, err = failing.Load(context.Background())
	require.EqualError(t, err, "unavailable")
}

func TestFromRows(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		want     [][]chart.Point
		wantTime bool
		wantErr  bool
	}{
		{
			name: "numeric",
			rows: [][]string{
				{"x", "a", "b"},
				{"1", "10", "20"},
				{"0", "5"},
				{"2", "", "30"},
			},
			want: [][]chart.Point{
				{{X: 0, Y: 5}, {X: 1, Y: 10}},
				{{X: 1, Y: 20}, {X: 2, Y: 30}},
			},
		},
		{
			name: "timestamps",
			rows: [][]string{
				{"time", "a"},
				{"1970-01-01T00:00:10Z", "1"},
			},
			want:     [][]chart.Point{{{X: 10, Y: 1}}},
			wantTime: true,
		},
		{
			name:    "header only",
			rows:    [][]string{{"x", "a"}},
			wantErr: true,
		},
		{
			name:    "bad value",
			rows:    [][]string{{"x", "a"}, {"1", "many"}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := FromRows("sheet", tt.rows)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromRows() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			got := make([][]chart.Point, len(c.Datasets()))
			for i, ds := range c.Datasets() {
				got[i] = ds.Points
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("points mismatch (-want +got):\n%s", diff)
			}
			xs, _ := c.Scale(chart.DefaultXScaleID)
			require.Equal(t, tt.wantTime, xs.Time)
		})
	}
}

func TestXLSXLoad(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "x")
	f.SetCellValue(sheet, "B1", "load")
	f.SetCellValue(sheet, "A2", 0)
	f.SetCellValue(sheet, "B2", 1.5)
	f.SetCellValue(sheet, "A3", 10)
	f.SetCellValue(sheet, "B3", 3)

	path := filepath.Join(t.TempDir(), "data.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	c, err := (&XLSX{Path: path}).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "data.xlsx", c.ID())
	require.Equal(t, sheet, c.Title)
	require.Equal(t, "load", c.Datasets()[0].Label)
	require.Equal(t, []chart.Point{{X: 0, Y: 1.5}, {X: 10, Y: 3}}, c.Datasets()[0].Points)

	_, err = (&XLSX{Path: filepath.Join(t.TempDir(), "missing.xlsx")}).Load(context.Background())
	require.Error(t, err)
}

func TestParse(t *testing.T) {
	yamlDoc := []byte(`
title: requests
datasets:
  - label: api
    points: [[1, 10], [0, 5]]
  - label: web
    hidden: true
    points: [[0, 1]]
`)
	c, err := Parse("req.yaml", yamlDoc)
	require.NoError(t, err)
	require.Equal(t, "requests", c.Title)
	require.Equal(t, []chart.Point{{X: 0, Y: 5}, {X: 1, Y: 10}}, c.Datasets()[0].Points)
	require.False(t, c.IsDatasetVisible(1))

	jsonDoc := []byte(`{"time": true, "datasets": [{"label": "a", "points": [[60, 1]]}]}`)
	c, err = Parse("a.json", jsonDoc)
	require.NoError(t, err)
	require.Equal(t, "a.json", c.Title)
	xs, _ := c.Scale(chart.DefaultXScaleID)
	require.True(t, xs.Time)

	_, err = Parse("empty", []byte(`title: nothing`))
	require.True(t, errors.Is(err, chart.ErrNoDatasets))

	_, err = Parse("bad", []byte(`datasets: [{points: [[1, 2, 3]]}]`))
	require.Error(t, err)
}
