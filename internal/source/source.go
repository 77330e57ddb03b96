// Package source loads chart models from Prometheus, spreadsheets and
// dataset files.
package source

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/akasprzok/chartkit/internal/chart"
	"golang.org/x/sync/errgroup"
)

// ErrNoData is returned when a source produced no data points at all.
var ErrNoData = errors.New("no data")

// Source produces one chart.
type Source interface {
	// Name identifies the source. It is also used as the chart id.
	Name() string
	Load(ctx context.Context) (*chart.Model, error)
}

// LoadError wraps a failure of a single source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadAll loads every source concurrently. Charts are returned in the order
// of sources with unique ids: a repeated id gets a "#n" suffix. The first
// failure cancels the remaining loads.
func LoadAll(ctx context.Context, sources ...Source) ([]*chart.Model, error) {
	charts := make([]*chart.Model, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range sources {
		g.Go(func() error {
			c, err := s.Load(ctx)
			if err != nil {
				return &LoadError{Source: s.Name(), Err: err}
			}
			charts[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	uniqueIDs(charts)
	return charts, nil
}

func uniqueIDs(charts []*chart.Model) {
	seen := make(map[string]bool, len(charts))
	for _, c := range charts {
		id := c.ID()
		for n := 2; seen[id]; n++ {
			id = fmt.Sprintf("%s#%d", c.ID(), n)
		}
		seen[id] = true
		c.SetID(id)
	}
}

// ParseX parses an X value given as a number or an RFC 3339 timestamp.
// Timestamps become unix seconds and isTime is set.
func ParseX(s string) (x float64, isTime bool, err error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, false, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, false, fmt.Errorf("x value %q is neither a number nor an RFC 3339 time", s)
	}
	return UnixSeconds(t), true, nil
}

// UnixSeconds converts t to fractional unix seconds.
func UnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
