// Package chart holds the chart model plugins read and mutate: datasets,
// their rendered elements and the scales that map pixels to data values.
package chart

// Point is a position in either pixel space or data space.
type Point struct {
	X float64
	Y float64
}

// ElementKind tags the variant carried by an Element.
type ElementKind int

const (
	KindDataset ElementKind = iota
	KindScale
	KindLegend
)

func (k ElementKind) String() string {
	switch k {
	case KindDataset:
		return "dataset"
	case KindScale:
		return "scale"
	case KindLegend:
		return "legend"
	default:
		return "unknown"
	}
}

// Element is a rendered chart element.
// Only KindDataset elements carry a parsed data point.
type Element struct {
	Kind  ElementKind
	Index int
	Point Point
}

// Parsed returns the element data point and whether the element has one.
func (e Element) Parsed() (Point, bool) {
	if e.Kind != KindDataset {
		return Point{}, false
	}
	return e.Point, true
}

// Scale converts a pixel coordinate into a value on its axis.
type Scale interface {
	ValueAtPixel(pixel float64) float64
}

// DatasetItem exposes the rendered elements of a single dataset.
type DatasetItem interface {
	Elements() []Element
	XScale() Scale
}

// Chart is the read-only view of a chart used by plugins and the interpolator.
type Chart interface {
	ID() string
	Datasets() []Dataset
	IsDatasetVisible(index int) bool
	DatasetItem(index int) DatasetItem
}

// Dataset is one rendered series.
type Dataset struct {
	Label    string
	Points   []Point
	Hidden   bool
	XScaleID string
	YScaleID string

	// Colors assigned by the color scheme plugin. Empty means palette fallback.
	Color           string
	BackgroundColor string
	PointColors     []string
}

type datasetItem struct {
	elements []Element
	xScale   Scale
}

func (d datasetItem) Elements() []Element {
	return d.elements
}

func (d datasetItem) XScale() Scale {
	return d.xScale
}
