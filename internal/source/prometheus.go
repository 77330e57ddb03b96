package source

import (
	"context"
	"time"

	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/prometheus"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"github.com/sirupsen/logrus"
)

// Prometheus loads a range query. Every series becomes a dataset.
type Prometheus struct {
	Client prometheus.Client
	Query  string
	Range  time.Duration
	Step   time.Duration
	Log    logrus.FieldLogger

	// now is replaced in tests.
	now func() time.Time
}

func (p *Prometheus) Name() string {
	return p.Query
}

func (p *Prometheus) Load(ctx context.Context) (*chart.Model, error) {
	now := time.Now
	if p.now != nil {
		now = p.now
	}
	end := now()
	r := v1.Range{Start: end.Add(-p.Range), End: end, Step: p.Step}

	matrix, warnings, err := p.Client.QueryRange(ctx, p.Query, r)
	if err != nil {
		return nil, err
	}
	if p.Log != nil {
		for _, w := range warnings {
			p.Log.WithField("query", p.Query).Warn(w)
		}
	}
	return FromMatrix(p.Query, prometheus.FormatQuery(p.Query), matrix)
}

// FromMatrix turns a range query result into a chart with a time X axis.
func FromMatrix(id, title string, matrix model.Matrix) (*chart.Model, error) {
	datasets := make([]chart.Dataset, 0, len(matrix))
	total := 0
	for _, stream := range matrix {
		points := make([]chart.Point, 0, len(stream.Values))
		for _, sample := range stream.Values {
			v := float64(sample.Value)
			if !isFinite(v) {
				continue
			}
			points = append(points, chart.Point{X: UnixSeconds(sample.Timestamp.Time()), Y: v})
		}
		total += len(points)
		datasets = append(datasets, chart.Dataset{Label: stream.Metric.String(), Points: points})
	}
	if total == 0 {
		return nil, ErrNoData
	}
	c, err := chart.New(id, datasets...)
	if err != nil {
		return nil, err
	}
	c.Title = title
	c.SetTimeAxis()
	return c, nil
}
