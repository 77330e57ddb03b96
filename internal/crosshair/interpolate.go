// Package crosshair tracks the pointer over a chart, draws guide lines and
// axis labels at its position and reports the value of every dataset under it.
package crosshair

import (
	"math"

	"github.com/akasprzok/chartkit/internal/chart"
)

// Undefined marks a dataset that has no value at the requested position.
const Undefined = -math.MaxFloat64

// IsUndefined reports whether v is the Undefined marker.
func IsUndefined(v float64) bool {
	return v == Undefined
}

// Interpolate returns one value per dataset of c at the pixel position p.
//
// Hidden datasets and datasets whose elements do not bracket the X value
// under p yield Undefined. Elements must be ordered by ascending X. Only
// p.X is used.
func Interpolate(c chart.Chart, p chart.Point) []float64 {
	datasets := c.Datasets()
	values := make([]float64, len(datasets))
	for i := range datasets {
		values[i] = Undefined
		if !c.IsDatasetVisible(i) {
			continue
		}
		item := c.DatasetItem(i)
		if item == nil || item.XScale() == nil {
			continue
		}
		values[i] = interpolateItem(item, item.XScale().ValueAtPixel(p.X))
	}
	return values
}

func interpolateItem(item chart.DatasetItem, x float64) float64 {
	var prev, next chart.Point
	hasPrev, hasNext := false, false
	for _, el := range item.Elements() {
		d, ok := el.Parsed()
		if !ok {
			continue
		}
		if x > d.X {
			prev, hasPrev = d, true
		} else {
			next, hasNext = d, true
			break
		}
	}
	// The scan yields prev.X < x <= next.X, so duplicate X values never
	// produce a zero-width pair.
	if !hasPrev || !hasNext {
		return Undefined
	}
	return prev.Y + (x-prev.X)*(next.Y-prev.Y)/(next.X-prev.X)
}

// InterpolateAt is Interpolate for a data value instead of a pixel, so the
// result does not depend on the chart layout.
func InterpolateAt(c chart.Chart, x float64) []float64 {
	datasets := c.Datasets()
	values := make([]float64, len(datasets))
	for i := range datasets {
		values[i] = Undefined
		if !c.IsDatasetVisible(i) {
			continue
		}
		if item := c.DatasetItem(i); item != nil {
			values[i] = interpolateItem(item, x)
		}
	}
	return values
}
