package chart

import (
	"errors"
	"math"
	"sort"
)

// ErrNoDatasets is returned when a chart would be built without any dataset.
var ErrNoDatasets = errors.New("chart has no datasets")

// Area is the rectangle, in pixels, where datasets are drawn.
type Area struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (a Area) Width() float64 {
	return a.Right - a.Left
}

func (a Area) Height() float64 {
	return a.Bottom - a.Top
}

// Contains reports whether p lies inside the area, edges included.
func (a Area) Contains(p Point) bool {
	return p.X >= a.Left && p.X <= a.Right && p.Y >= a.Top && p.Y <= a.Bottom
}

// Model is the concrete chart.
type Model struct {
	id       string
	Title    string
	datasets []Dataset
	scales   map[string]*LinearScale
	area     Area
}

// New builds a chart from datasets. Points are sorted ascending by X and
// default x/y scales are fitted to the data.
func New(id string, datasets ...Dataset) (*Model, error) {
	if len(datasets) == 0 {
		return nil, ErrNoDatasets
	}

	m := &Model{
		id:       id,
		datasets: make([]Dataset, len(datasets)),
		scales:   make(map[string]*LinearScale),
	}
	for i, ds := range datasets {
		points := make([]Point, len(ds.Points))
		copy(points, ds.Points)
		sort.SliceStable(points, func(a, b int) bool { return points[a].X < points[b].X })
		ds.Points = points
		if ds.XScaleID == "" {
			ds.XScaleID = DefaultXScaleID
		}
		if ds.YScaleID == "" {
			ds.YScaleID = DefaultYScaleID
		}
		m.datasets[i] = ds
	}

	minX, maxX, minY, maxY := m.bounds()
	for _, ds := range m.datasets {
		if _, ok := m.scales[ds.XScaleID]; !ok {
			m.scales[ds.XScaleID] = NewLinearScale(ds.XScaleID, AxisX, minX, maxX)
		}
		if _, ok := m.scales[ds.YScaleID]; !ok {
			m.scales[ds.YScaleID] = NewLinearScale(ds.YScaleID, AxisY, minY, maxY)
		}
	}
	m.Layout(Area{Right: 1, Bottom: 1})
	return m, nil
}

func (m *Model) ID() string {
	return m.id
}

// SetID renames the chart. It must not be called once the chart is
// registered with a plugin manager.
func (m *Model) SetID(id string) {
	m.id = id
}

// Datasets returns the datasets in chart order.
func (m *Model) Datasets() []Dataset {
	return m.datasets
}

// Dataset returns a pointer to the dataset at index, or nil when out of range.
func (m *Model) Dataset(index int) *Dataset {
	if index < 0 || index >= len(m.datasets) {
		return nil
	}
	return &m.datasets[index]
}

func (m *Model) IsDatasetVisible(index int) bool {
	ds := m.Dataset(index)
	return ds != nil && !ds.Hidden
}

// SetDatasetVisible shows or hides the dataset at index.
func (m *Model) SetDatasetVisible(index int, visible bool) {
	if ds := m.Dataset(index); ds != nil {
		ds.Hidden = !visible
	}
}

// ToggleDataset flips the visibility of the dataset at index.
func (m *Model) ToggleDataset(index int) {
	m.SetDatasetVisible(index, !m.IsDatasetVisible(index))
}

func (m *Model) DatasetItem(index int) DatasetItem {
	ds := m.Dataset(index)
	if ds == nil {
		return nil
	}
	elements := make([]Element, len(ds.Points))
	for i, p := range ds.Points {
		elements[i] = Element{Kind: KindDataset, Index: i, Point: p}
	}
	return datasetItem{elements: elements, xScale: m.scales[ds.XScaleID]}
}

// Scale returns the scale registered under id.
func (m *Model) Scale(id string) (*LinearScale, bool) {
	s, ok := m.scales[id]
	return s, ok
}

// Scales returns every scale ordered by id.
func (m *Model) Scales() []*LinearScale {
	ids := make([]string, 0, len(m.scales))
	for id := range m.scales {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]*LinearScale, len(ids))
	for i, id := range ids {
		result[i] = m.scales[id]
	}
	return result
}

// Area returns the current chart area.
func (m *Model) Area() Area {
	return m.area
}

// Layout places the chart area and stretches every scale across it.
// Vertical scales run from the bottom edge up.
func (m *Model) Layout(area Area) {
	m.area = area
	for _, s := range m.scales {
		if s.IsHorizontal() {
			s.Start, s.End = area.Left, area.Right
		} else {
			s.Start, s.End = area.Bottom, area.Top
		}
	}
}

// SetTimeAxis marks horizontal scales as unix-seconds time axes.
func (m *Model) SetTimeAxis() {
	for _, s := range m.scales {
		if s.IsHorizontal() {
			s.Time = true
			s.Format = TimeFormat
		}
	}
}

func (m *Model) bounds() (minX, maxX, minY, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, ds := range m.datasets {
		for _, p := range ds.Points {
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return 0, 1, 0, 1
	}
	if minY == maxY {
		minY, maxY = minY-1, maxY+1
	}
	return minX, maxX, minY, maxY
}
