package tabreport

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVRenderer writes a Table as CSV. The merged spreadsheet headers
// flatten into two records: the first carries each group label in the
// first cell of its block (blank elsewhere), the second the column
// labels. Values render via fmt.
type CSVRenderer struct{}

// NewCSVRenderer creates a CSV renderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// ContentType returns the CSV MIME type.
func (r *CSVRenderer) ContentType() string {
	return "text/csv"
}

// Ext returns the file extension without the dot.
func (r *CSVRenderer) Ext() string {
	return "csv"
}

// Render serializes the table.
func (r *CSVRenderer) Render(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	groupRec := make([]string, 1+t.ColumnCount())
	idx := 1
	for _, g := range t.Groups {
		groupRec[idx] = g.Label
		idx += len(g.Columns)
	}
	if err := w.Write(groupRec); err != nil {
		return nil, err
	}

	labelRec := make([]string, 0, 1+t.ColumnCount())
	labelRec = append(labelRec, t.Label.Label)
	for _, c := range t.Columns() {
		labelRec = append(labelRec, c.Label)
	}
	if err := w.Write(labelRec); err != nil {
		return nil, err
	}

	for _, row := range t.Rows {
		rec := make([]string, 0, 1+len(row.Values))
		rec = append(rec, row.Label)
		for _, v := range row.Values {
			rec = append(rec, fmt.Sprintf("%v", v))
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
