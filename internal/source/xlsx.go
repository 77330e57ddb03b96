package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/xuri/excelize/v2"
)

// XLSX loads a worksheet laid out as columns: the first column holds X
// values, every other column one dataset, and the first row the labels.
type XLSX struct {
	Path string
	// Sheet defaults to the first sheet of the workbook.
	Sheet string
}

func (x *XLSX) Name() string {
	if x.Sheet == "" {
		return filepath.Base(x.Path)
	}
	return filepath.Base(x.Path) + ":" + x.Sheet
}

func (x *XLSX) Load(ctx context.Context) (*chart.Model, error) {
	f, err := excelize.OpenFile(x.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := x.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoData
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c, err := FromRows(x.Name(), rows)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	c.Title = sheet
	return c, nil
}

// FromRows builds a chart from a header row followed by data rows. Empty
// cells are skipped.
func FromRows(id string, rows [][]string) (*chart.Model, error) {
	if len(rows) < 2 || len(rows[0]) < 2 {
		return nil, ErrNoData
	}
	header := rows[0]
	datasets := make([]chart.Dataset, len(header)-1)
	for i := range datasets {
		label := strings.TrimSpace(header[i+1])
		if label == "" {
			label = "column " + strconv.Itoa(i+2)
		}
		datasets[i].Label = label
	}

	timeAxis := false
	total := 0
	for r, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		x, isTime, err := ParseX(row[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", r+2, err)
		}
		timeAxis = timeAxis || isTime
		for col := 1; col < len(row) && col < len(header); col++ {
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			y, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", r+2, col+1, err)
			}
			datasets[col-1].Points = append(datasets[col-1].Points, chart.Point{X: x, Y: y})
			total++
		}
	}
	if total == 0 {
		return nil, ErrNoData
	}

	c, err := chart.New(id, datasets...)
	if err != nil {
		return nil, err
	}
	if timeAxis {
		c.SetTimeAxis()
	}
	return c, nil
}
