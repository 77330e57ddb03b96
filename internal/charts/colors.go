package charts

import (
	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/colorschemes"
	"github.com/charmbracelet/lipgloss"
)

// SeriesPalette is the fallback palette for datasets without an assigned colour.
var SeriesPalette = colorschemes.TolQualitative.Colors

// AxisColor is the color used for chart axes.
var AxisColor = lipgloss.Color("#CCBB44") // Olive/Yellow - high visibility

// LabelColor is the color used for chart labels.
var LabelColor = lipgloss.Color("#66CCEE") // Cyan - good contrast

// SeriesColor returns the color for a given series index, cycling through the palette.
func SeriesColor(index int) lipgloss.Color {
	return lipgloss.Color(colorschemes.TolQualitative.Color(index, false))
}

// DatasetColor returns the colour assigned to ds, falling back to the palette.
func DatasetColor(ds chart.Dataset, index int) lipgloss.Color {
	if ds.Color != "" {
		return lipgloss.Color(ds.Color)
	}
	return SeriesColor(index)
}

// SeriesStyle returns a lipgloss style with the foreground color for the given series index.
func SeriesStyle(index int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(SeriesColor(index))
}
