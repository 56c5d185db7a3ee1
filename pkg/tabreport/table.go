// Package tabreport renders tables with grouped two-row headers into
// concrete document formats. The model is format-agnostic: callers
// describe a label column, groups of value columns and data rows, and
// each Renderer owns every format-specific concern (merged cells,
// number formats, frozen panes), so new output formats plug in without
// touching the data producers.
package tabreport

// Column describes one value column of a table.
type Column struct {
	Label  string
	Width  float64
	NumFmt string // spreadsheet number format, e.g. "0" or "0.00%"
	Align  string // "left", "center" or "right"; empty means left
}

// ColumnGroup is a run of contiguous columns presented under a single
// merged label.
type ColumnGroup struct {
	Label   string
	Columns []Column
}

// Row is one data row: its label plus one value per table column, in
// group order.
type Row struct {
	Label  string
	Values []interface{}
}

// Table is a two-row-header report table: a label column spanning both
// header rows, group labels merged across the first row, and the
// per-column labels on the second.
type Table struct {
	SheetName string
	Label     Column
	Groups    []ColumnGroup
	Rows      []Row
}

// ColumnCount returns the number of value columns across all groups.
func (t *Table) ColumnCount() int {
	n := 0
	for _, g := range t.Groups {
		n += len(g.Columns)
	}
	return n
}

// Columns returns every value column flattened in group order.
func (t *Table) Columns() []Column {
	cols := make([]Column, 0, t.ColumnCount())
	for _, g := range t.Groups {
		cols = append(cols, g.Columns...)
	}
	return cols
}

// Renderer serializes a table into one concrete document format.
type Renderer interface {
	Render(t *Table) ([]byte, error)
	ContentType() string
	Ext() string
}
