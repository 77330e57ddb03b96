// Package paint draws directly on ntcharts canvas cells using chart pixel
// coordinates, where one pixel is one terminal cell.
package paint

import (
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/charmbracelet/lipgloss"
)

// Cell returns the canvas point for a chart pixel, rounding to the nearest cell.
func Cell(x, y float64) canvas.Point {
	return canvas.Point{X: int(math.Round(x)), Y: int(math.Round(y))}
}

// VLine draws r in every row of column x between top and bottom inclusive.
func VLine(c *canvas.Model, x, top, bottom float64, r rune, s lipgloss.Style) {
	col := int(math.Round(x))
	from, to := int(math.Round(top)), int(math.Round(bottom))
	if from > to {
		from, to = to, from
	}
	for row := from; row <= to; row++ {
		c.SetCell(canvas.Point{X: col, Y: row}, canvas.NewCellWithStyle(r, s))
	}
}

// HLine draws r in every column of row y between left and right inclusive.
func HLine(c *canvas.Model, y, left, right float64, r rune, s lipgloss.Style) {
	row := int(math.Round(y))
	from, to := int(math.Round(left)), int(math.Round(right))
	if from > to {
		from, to = to, from
	}
	for col := from; col <= to; col++ {
		c.SetCell(canvas.Point{X: col, Y: row}, canvas.NewCellWithStyle(r, s))
	}
}

// Text writes text starting at x, y. Cells beyond the canvas are dropped by the canvas.
func Text(c *canvas.Model, x, y float64, text string, s lipgloss.Style) {
	p := Cell(x, y)
	for _, r := range text {
		c.SetCell(p, canvas.NewCellWithStyle(r, s))
		p.X++
	}
}

// Shade applies bg as the background of every cell in area, keeping runes.
func Shade(c *canvas.Model, area chart.Area, bg lipgloss.Color) {
	left, right := int(math.Round(area.Left)), int(math.Round(area.Right))
	top, bottom := int(math.Round(area.Top)), int(math.Round(area.Bottom))
	for row := top; row <= bottom; row++ {
		ShadeRow(c, row, left, right, bg)
	}
}

// ShadeRow applies bg to the cells of one row between left and right inclusive.
func ShadeRow(c *canvas.Model, row, left, right int, bg lipgloss.Color) {
	for col := left; col <= right; col++ {
		p := canvas.Point{X: col, Y: row}
		cell := c.Cell(p)
		r := cell.Rune
		if r == 0 {
			r = ' '
		}
		c.SetCell(p, canvas.NewCellWithStyle(r, cell.Style.Background(bg)))
	}
}

// Clamp keeps value within [min, max]. When the range is inverted min wins.
func Clamp(value, min, max float64) float64 {
	if value <= min {
		return min
	}
	if value >= max {
		return max
	}
	return value
}
