// Package tables shows the dataset values under the crosshair as a
// filterable table.
package tables

import (
	"strconv"
	"strings"

	"github.com/akasprzok/chartkit/internal/chart"
	"github.com/akasprzok/chartkit/internal/crosshair"
	"github.com/akasprzok/chartkit/internal/legend"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
)

const (
	columnDataset = "dataset"
	columnValue   = "value"
	columnMin     = "min"
	columnMax     = "max"
	columnMean    = "mean"
	columnIndex   = "index"

	// NoValue is shown for datasets without a value under the crosshair.
	NoValue = "-"

	pageSize = 10
)

// Row is the table line of one dataset.
type Row struct {
	Index   int
	Label   string
	Color   string
	Hidden  bool
	Value   float64
	Summary legend.Summary
}

// Rows pairs every dataset of c with its value. values may be nil or
// shorter than the dataset list; missing entries are undefined.
func Rows(c *chart.Model, values []float64) []Row {
	items := legend.Items(c)
	rows := make([]Row, len(items))
	for i, it := range items {
		v := crosshair.Undefined
		if i < len(values) {
			v = values[i]
		}
		rows[i] = Row{
			Index:   it.Index,
			Label:   legend.DefaultItemFormatter(c, it),
			Color:   it.Color,
			Hidden:  it.Hidden,
			Value:   v,
			Summary: it.Summary,
		}
	}
	return rows
}

// FormatValue renders v, or NoValue when it is undefined.
func FormatValue(v float64) string {
	if crosshair.IsUndefined(v) {
		return NoValue
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

type Model struct {
	table           table.Model
	filterTextInput textinput.Model
	ready           bool
}

func New(rows []Row) Model {
	m := Model{filterTextInput: textinput.New()}
	return m.WithRows(rows)
}

// WithRows replaces the rows, keeping the filter and the highlighted row.
func (m Model) WithRows(rows []Row) Model {
	columns, data := build(rows)
	if !m.ready {
		m.table = table.
			New(columns).
			Filtered(true).
			Focused(true).
			WithPageSize(pageSize).
			WithFilterInput(m.filterTextInput)
		m.ready = true
	} else {
		m.table = m.table.WithColumns(columns)
	}
	m.table = m.table.
		WithRows(data).
		WithFooterVisibility(len(rows) > pageSize)
	return m
}

// Render returns rows as a plain table for non-interactive output.
func Render(rows []Row) string {
	columns, data := build(rows)
	return table.New(columns).WithRows(data).View()
}

func build(rows []Row) ([]table.Column, []table.Row) {
	longestLabel := len(columnDataset)
	data := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		if len(r.Label) > longestLabel {
			longestLabel = len(r.Label)
		}
		style := lipgloss.NewStyle().Faint(r.Hidden)
		if r.Color != "" {
			style = style.Foreground(lipgloss.Color(r.Color))
		}
		data = append(data, table.NewRow(table.RowData{
			columnIndex:   r.Index,
			columnDataset: table.NewStyledCell(r.Label, style),
			columnValue:   FormatValue(r.Value),
			columnMin:     FormatValue(r.Summary.Min),
			columnMax:     FormatValue(r.Summary.Max),
			columnMean:    FormatValue(r.Summary.Mean),
		}))
	}

	columns := []table.Column{
		table.NewColumn(columnDataset, "Dataset", max(longestLabel+1, 8)).WithFiltered(true),
		table.NewColumn(columnValue, "Value", 12),
		table.NewColumn(columnMin, "Min", 12),
		table.NewColumn(columnMax, "Max", 12),
		table.NewColumn(columnMean, "Mean", 12),
	}
	return columns, data
}

// Filtering reports whether the filter input has focus.
func (m Model) Filtering() bool {
	return m.filterTextInput.Focused()
}

// HighlightedIndex returns the dataset index of the highlighted row.
func (m Model) HighlightedIndex() (int, bool) {
	row := m.table.HighlightedRow()
	idx, ok := row.Data[columnIndex].(int)
	return idx, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles "/" to start filtering, typing while filtering and table
// navigation otherwise.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	// event to filter
	if m.filterTextInput.Focused() {
		switch keyMsg.String() {
		case "enter", "esc":
			m.filterTextInput.Blur()
		default:
			m.filterTextInput, cmd = m.filterTextInput.Update(msg)
		}
		m.table = m.table.WithFilterInput(m.filterTextInput)
		return m, cmd
	}

	if keyMsg.String() == "/" {
		m.filterTextInput.Focus()
		return m, nil
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	body := strings.Builder{}

	body.WriteString(m.table.View())
	if m.filterTextInput.Focused() {
		body.WriteString("\nfilter: " + m.filterTextInput.View())
	}

	return body.String()
}
