package crosshair

import (
	"testing"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/plugin"
	"github.com/stretchr/testify/require"
)

func newChart(t *testing.T, id string, area chart.Area) *chart.Model {
	t.Helper()
	c, err := chart.New(id, chart.Dataset{
		Label:  "a",
		Points: []chart.Point{{X: 0, Y: 10}, {X: 10, Y: 20}, {X: 20, Y: 15}},
	})
	require.NoError(t, err)
	c.Layout(area)
	return c
}

func setup(t *testing.T, opts Options) (*plugin.Manager, *Plugin, *chart.Model, *chart.Model) {
	t.Helper()
	m := plugin.NewManager(nil)
	p := New(m, opts)
	m.Use(p)
	c1 := newChart(t, "c1", chart.Area{Left: 0, Top: 0, Right: 20, Bottom: 10})
	c2 := newChart(t, "c2", chart.Area{Left: 10, Top: 0, Right: 30, Bottom: 20})
	m.Register(c1)
	m.Register(c2)
	return m, p, c1, c2
}

func move(at chart.Point) plugin.Event {
	return plugin.Event{Kind: plugin.EventMove, Point: at, InChartArea: true}
}

func TestMoveStoresPointer(t *testing.T) {
	m, p, c1, _ := setup(t, DefaultOptions())

	require.True(t, m.Dispatch(c1, move(chart.Point{X: 5, Y: 5})))

	at, ok := p.Pointer("c1")
	require.True(t, ok)
	require.Equal(t, chart.Point{X: 5, Y: 5}, at)

	_, ok = p.Pointer("c2")
	require.False(t, ok, "ungrouped charts must not sync")

	require.Equal(t, []float64{15}, p.Values("c1"))
	require.Nil(t, p.Values("c2"))
}

func TestGroupSync(t *testing.T) {
	opts := DefaultOptions()
	opts.Group = "Sync"
	m, p, c1, _ := setup(t, opts)

	m.Dispatch(c1, move(chart.Point{X: 5, Y: 5}))

	at, ok := p.Pointer("c2")
	require.True(t, ok)
	require.Equal(t, chart.Point{X: 15, Y: 10}, at)

	require.True(t, m.Dispatch(c1, plugin.Event{Kind: plugin.EventMove, InChartArea: false}))
	_, ok = p.Pointer("c1")
	require.False(t, ok)
	_, ok = p.Pointer("c2")
	require.False(t, ok)

	require.False(t, m.Dispatch(c1, plugin.Event{Kind: plugin.EventLeave}), "nothing left to clear")
}

func TestModifierKey(t *testing.T) {
	opts := DefaultOptions()
	opts.ModifierKey = plugin.ModifierShift
	m, p, c1, _ := setup(t, opts)

	require.False(t, m.Dispatch(c1, move(chart.Point{X: 5, Y: 5})))
	_, ok := p.Pointer("c1")
	require.False(t, ok)

	ev := move(chart.Point{X: 5, Y: 5})
	ev.Modifiers.Shift = true
	require.True(t, m.Dispatch(c1, ev))
	_, ok = p.Pointer("c1")
	require.True(t, ok)
}

func TestDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.Enabled = false
	m, p, c1, _ := setup(t, opts)

	require.False(t, m.Dispatch(c1, move(chart.Point{X: 5, Y: 5})))
	_, ok := p.Pointer("c1")
	require.False(t, ok)
}

func TestDestroyDropsState(t *testing.T) {
	m, p, c1, _ := setup(t, DefaultOptions())
	m.Dispatch(c1, move(chart.Point{X: 5, Y: 5}))
	m.Destroy(c1)
	_, ok := p.Pointer("c1")
	require.False(t, ok)
}

func TestSetPointer(t *testing.T) {
	_, p, c1, _ := setup(t, DefaultOptions())
	p.SetPointer(c1, chart.Point{X: 15})
	require.Equal(t, []float64{17.5}, p.Values("c1"))
	require.True(t, p.Clear("c1"))
	require.False(t, p.Clear("c1"))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"x", ModeX, false},
		{"Y", ModeY, false},
		{" xy ", ModeXY, false},
		{"", ModeXY, false},
		{"z", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLabelText(t *testing.T) {
	c := newChart(t, "c", chart.Area{Left: 0, Top: 0, Right: 20, Bottom: 10})
	xs, ok := c.Scale(chart.DefaultXScaleID)
	require.True(t, ok)

	text, ok := LabelText(c, xs, Label{Padding: 1}, 5)
	require.True(t, ok)
	require.Equal(t, " 5 ", text)

	skip := Label{Formatter: func(*chart.Model, *chart.LinearScale, float64) string { return "  " }}
	_, ok = LabelText(c, xs, skip, 5)
	require.False(t, ok)

	custom := Label{Formatter: func(_ *chart.Model, _ *chart.LinearScale, v float64) string { return "at" }}
	text, ok = LabelText(c, xs, custom, 5)
	require.True(t, ok)
	require.Equal(t, "at", text)
}

func drawn(t *testing.T, opts Options) canvas.Model {
	t.Helper()
	_, p, _, _ := setup(t, opts)
	c := newChart(t, "draw", chart.Area{Left: 2, Top: 0, Right: 12, Bottom: 5})
	p.OnBeforeUpdate(c)
	p.SetPointer(c, chart.Point{X: 5, Y: 2})

	lc := linechart.New(20, 8, 0, 20, 10, 20)
	p.OnAfterDraw(c, &lc)
	return lc.Canvas
}

func TestDraw(t *testing.T) {
	cv := drawn(t, DefaultOptions())

	require.Equal(t, DefaultLineRune, cv.Cell(canvas.Point{X: 5, Y: 1}).Rune)
	require.Equal(t, DefaultLineRune, cv.Cell(canvas.Point{X: 5, Y: 5}).Rune)
	require.Equal(t, DefaultHorizontalRune, cv.Cell(canvas.Point{X: 8, Y: 2}).Rune)
	require.Equal(t, '6', cv.Cell(canvas.Point{X: 5, Y: 7}).Rune, "x label below the area")
}

func TestDrawModeX(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = ModeX
	cv := drawn(t, opts)

	require.NotEqual(t, DefaultLineRune, cv.Cell(canvas.Point{X: 5, Y: 1}).Rune)
	require.Equal(t, DefaultHorizontalRune, cv.Cell(canvas.Point{X: 8, Y: 2}).Rune)
	require.NotEqual(t, '6', cv.Cell(canvas.Point{X: 5, Y: 7}).Rune)
}

func TestDrawSkipsEmptyLabel(t *testing.T) {
	opts := DefaultOptions()
	opts.XLabel.Formatter = func(*chart.Model, *chart.LinearScale, float64) string { return "" }
	cv := drawn(t, opts)

	require.Equal(t, DefaultLineRune, cv.Cell(canvas.Point{X: 5, Y: 1}).Rune)
	require.NotEqual(t, '6', cv.Cell(canvas.Point{X: 5, Y: 7}).Rune)
}
