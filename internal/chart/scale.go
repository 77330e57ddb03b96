package chart

import (
	"math"
	"strconv"
	"time"
)

const (
	DefaultXScaleID = "x"
	DefaultYScaleID = "y"
)

// Axis is the direction a scale runs along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Position is where a scale is drawn relative to the chart area.
type Position int

const (
	PositionBottom Position = iota
	PositionLeft
	PositionTop
	PositionRight
)

func (p Position) String() string {
	switch p {
	case PositionBottom:
		return "bottom"
	case PositionLeft:
		return "left"
	case PositionTop:
		return "top"
	case PositionRight:
		return "right"
	default:
		return "unknown"
	}
}

// LinearScale maps the pixel range [Start, End] onto the value range [Min, Max].
// Start and End may be in either order; vertical scales usually run bottom to top.
type LinearScale struct {
	ID       string
	Axis     Axis
	Position Position
	Start    float64
	End      float64
	Min      float64
	Max      float64
	Time     bool

	// Format renders a value for tick and crosshair labels.
	Format func(v float64) string
}

// NewLinearScale returns a scale spanning min..max positioned at the default edge for axis.
func NewLinearScale(id string, axis Axis, min, max float64) *LinearScale {
	pos := PositionBottom
	if axis == AxisY {
		pos = PositionLeft
	}
	return &LinearScale{
		ID:       id,
		Axis:     axis,
		Position: pos,
		Min:      min,
		Max:      max,
		Format:   NumberFormat,
	}
}

// ValueAtPixel returns the value under the pixel coordinate.
func (s *LinearScale) ValueAtPixel(pixel float64) float64 {
	if s.End == s.Start {
		return s.Min
	}
	return s.Min + (pixel-s.Start)/(s.End-s.Start)*(s.Max-s.Min)
}

// PixelForValue is the inverse of ValueAtPixel.
func (s *LinearScale) PixelForValue(v float64) float64 {
	if s.Max == s.Min {
		return s.Start
	}
	return s.Start + (v-s.Min)/(s.Max-s.Min)*(s.End-s.Start)
}

// IsHorizontal reports whether the scale runs along the X axis.
func (s *LinearScale) IsHorizontal() bool {
	return s.Axis == AxisX
}

// ContainsPixel reports whether pixel lies within the scale pixel range, inclusive.
func (s *LinearScale) ContainsPixel(pixel float64) bool {
	lo, hi := math.Min(s.Start, s.End), math.Max(s.Start, s.End)
	return pixel >= lo && pixel <= hi
}

// Label formats v with the scale formatter.
func (s *LinearScale) Label(v float64) string {
	if s.Format == nil {
		return NumberFormat(v)
	}
	return s.Format(v)
}

// NumberFormat is the default label formatter.
func NumberFormat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// TimeFormat formats unix seconds as a wall clock time.
func TimeFormat(v float64) string {
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*1e9)).Format("15:04:05")
}
