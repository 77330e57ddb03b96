package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akasprzok/chartkit/internal/chart"
	"gopkg.in/yaml.v2"
)

// Document is the YAML or JSON layout of a dataset file.
//
//	title: requests
//	datasets:
//	  - label: api
//	    points: [[0, 1], [1, 3]]
type Document struct {
	Title    string            `yaml:"title"`
	Time     bool              `yaml:"time"`
	Datasets []DocumentDataset `yaml:"datasets"`
}

type DocumentDataset struct {
	Label  string      `yaml:"label"`
	Hidden bool        `yaml:"hidden"`
	Points [][]float64 `yaml:"points"`
}

// File loads a Document from disk. JSON is read as YAML.
type File struct {
	Path string
}

func (f *File) Name() string {
	return filepath.Base(f.Path)
}

func (f *File) Load(ctx context.Context) (*chart.Model, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Parse(f.Name(), data)
}

// Parse builds a chart from a YAML or JSON document.
func Parse(id string, data []byte) (*chart.Model, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing dataset file: %w", err)
	}
	if len(doc.Datasets) == 0 {
		return nil, chart.ErrNoDatasets
	}
	datasets := make([]chart.Dataset, len(doc.Datasets))
	for i, d := range doc.Datasets {
		points := make([]chart.Point, len(d.Points))
		for j, p := range d.Points {
			if len(p) != 2 {
				return nil, fmt.Errorf("dataset %d point %d: want [x, y], got %d values", i, j, len(p))
			}
			points[j] = chart.Point{X: p[0], Y: p[1]}
		}
		datasets[i] = chart.Dataset{Label: d.Label, Hidden: d.Hidden, Points: points}
	}
	c, err := chart.New(id, datasets...)
	if err != nil {
		return nil, err
	}
	c.Title = doc.Title
	if c.Title == "" {
		c.Title = id
	}
	if doc.Time {
		c.SetTimeAxis()
	}
	return c, nil
}
