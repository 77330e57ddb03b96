package selector

import (
	"testing"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/plugin"
	"github.com/stretchr/testify/require"
)

func newChart(t *testing.T) *chart.Model {
	t.Helper()
	c, err := chart.New("c", chart.Dataset{
		Label:  "a",
		Points: []chart.Point{{X: 0, Y: 1}, {X: 5, Y: 2}, {X: 10, Y: 3}, {X: 15, Y: 4}, {X: 20, Y: 5}},
	})
	require.NoError(t, err)
	c.Layout(chart.Area{Left: 0, Top: 0, Right: 20, Bottom: 4})
	return c
}

func event(kind plugin.EventKind, x float64) plugin.Event {
	return plugin.Event{Kind: kind, Point: chart.Point{X: x, Y: 2}, InChartArea: true}
}

type recorder struct {
	selected []Selection
	cleared  int
}

func newPlugin(t *testing.T, opts Options) (*Plugin, *recorder) {
	t.Helper()
	rec := &recorder{}
	opts.OnSelect = func(_ string, s Selection) { rec.selected = append(rec.selected, s) }
	opts.OnClear = func(string) { rec.cleared++ }
	p, err := New(opts)
	require.NoError(t, err)
	return p, rec
}

func TestDragSelects(t *testing.T) {
	tests := []struct {
		name     string
		from, to float64
		want     Selection
	}{
		{"left to right", 5, 15, Selection{From: 5, To: 15, Start: 1, End: 3}},
		{"right to left", 15, 5, Selection{From: 5, To: 15, Start: 1, End: 3}},
		{"between points", 6, 9, Selection{From: 6, To: 9, Start: -1, End: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newChart(t)
			p, rec := newPlugin(t, DefaultOptions())
			p.OnBeforeUpdate(c)

			require.True(t, p.OnAfterEvent(c, event(plugin.EventPress, tt.from)))
			require.True(t, p.Selecting("c"))
			require.True(t, p.OnAfterEvent(c, event(plugin.EventMove, (tt.from+tt.to)/2)))
			require.True(t, p.OnAfterEvent(c, event(plugin.EventRelease, tt.to)))
			require.False(t, p.Selecting("c"))

			got, ok := p.Selection(c)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
			require.Equal(t, []Selection{tt.want}, rec.selected)
		})
	}
}

func TestZeroWidthIsDiscarded(t *testing.T) {
	c := newChart(t)
	p, rec := newPlugin(t, DefaultOptions())
	p.OnBeforeUpdate(c)

	p.OnAfterEvent(c, event(plugin.EventPress, 5))
	p.OnAfterEvent(c, event(plugin.EventRelease, 5))

	_, ok := p.Selection(c)
	require.False(t, ok)
	require.Empty(t, rec.selected)
}

func TestLeavingTheAreaFinishes(t *testing.T) {
	c := newChart(t)
	p, _ := newPlugin(t, DefaultOptions())
	p.OnBeforeUpdate(c)

	p.OnAfterEvent(c, event(plugin.EventPress, 10))
	p.OnAfterEvent(c, plugin.Event{Kind: plugin.EventMove, Point: chart.Point{X: 40}})

	got, ok := p.Selection(c)
	require.True(t, ok)
	require.Equal(t, 10.0, got.From)
	require.Equal(t, 20.0, got.To)
	require.Equal(t, 2, got.Start)
	require.Equal(t, 4, got.End)
}

func TestEscapeClears(t *testing.T) {
	c := newChart(t)
	p, rec := newPlugin(t, DefaultOptions())
	p.OnBeforeUpdate(c)
	p.SetSelection(c, 0, 10)

	_, ok := p.Selection(c)
	require.True(t, ok)

	esc := plugin.Event{Kind: plugin.EventKey, Key: "esc"}
	require.True(t, p.OnAfterEvent(c, esc))
	require.Equal(t, 1, rec.cleared)
	require.False(t, p.OnAfterEvent(c, esc))

	opts := DefaultOptions()
	opts.ClearByEscape = false
	p, _ = newPlugin(t, opts)
	p.OnBeforeUpdate(c)
	p.SetSelection(c, 0, 10)
	require.False(t, p.OnAfterEvent(c, esc))
	require.True(t, p.Clear("c"))
}

func TestModifierAndDisabled(t *testing.T) {
	c := newChart(t)

	opts := DefaultOptions()
	opts.ModifierKey = plugin.ModifierAlt
	p, _ := newPlugin(t, opts)
	p.OnBeforeUpdate(c)
	require.False(t, p.OnAfterEvent(c, event(plugin.EventPress, 5)))
	ev := event(plugin.EventPress, 5)
	ev.Modifiers.Alt = true
	require.True(t, p.OnAfterEvent(c, ev))

	opts = DefaultOptions()
	opts.Enabled = false
	p, _ = newPlugin(t, opts)
	p.OnBeforeUpdate(c)
	require.False(t, p.OnAfterEvent(c, event(plugin.EventPress, 5)))
}

func TestInvalidAlpha(t *testing.T) {
	opts := DefaultOptions()
	opts.Alpha = 2
	_, err := New(opts)
	require.Error(t, err)
}

func TestDrawShadesBand(t *testing.T) {
	c := newChart(t)
	p, _ := newPlugin(t, DefaultOptions())
	p.OnBeforeUpdate(c)
	p.SetSelection(c, 5, 10)

	lc := linechart.New(30, 8, 0, 20, 0, 5)
	p.OnAfterDraw(c, &lc)

	require.Equal(t, DefaultBorderRune, lc.Canvas.Cell(canvas.Point{X: 5, Y: 2}).Rune)
	require.Equal(t, DefaultBorderRune, lc.Canvas.Cell(canvas.Point{X: 10, Y: 2}).Rune)
	require.Equal(t, p.fill, lc.Canvas.Cell(canvas.Point{X: 7, Y: 2}).Style.GetBackground())
	require.NotEqual(t, p.fill, lc.Canvas.Cell(canvas.Point{X: 15, Y: 2}).Style.GetBackground())
}
