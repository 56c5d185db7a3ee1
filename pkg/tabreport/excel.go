package tabreport

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	headerRows   = 2
	firstDataRow = headerRows + 1
)

// ExcelRenderer writes a Table as a single-sheet .xlsx workbook:
// merged group headers, per-column number formats, thin borders on
// every written cell, and panes frozen at the first data cell.
type ExcelRenderer struct{}

// NewExcelRenderer creates an Excel renderer.
func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{}
}

// ContentType returns the .xlsx MIME type.
func (r *ExcelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Ext returns the file extension without the dot.
func (r *ExcelRenderer) Ext() string {
	return "xlsx"
}

// Render builds the workbook in memory and returns its serialized
// bytes.
func (r *ExcelRenderer) Render(t *Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.SheetName
	if sheet == "" {
		sheet = "Sheet1"
	} else if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(headerCellStyle())
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}
	labelStyle, err := f.NewStyle(dataCellStyle(t.Label.Align, ""))
	if err != nil {
		return nil, fmt.Errorf("creating label style: %w", err)
	}

	cols := t.Columns()
	colStyles, err := columnStyles(f, cols)
	if err != nil {
		return nil, err
	}

	if err := writeHeader(f, sheet, t, headerStyle); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}
	if err := writeRows(f, sheet, t, labelStyle, colStyles); err != nil {
		return nil, fmt.Errorf("writing rows: %w", err)
	}
	if err := applyLayout(f, sheet, t.Label, cols); err != nil {
		return nil, fmt.Errorf("applying layout: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// columnStyles creates one style ID per column, deduplicating
// identical (align, numfmt) pairs.
func columnStyles(f *excelize.File, cols []Column) ([]int, error) {
	ids := make([]int, len(cols))
	cache := make(map[string]int)
	for i, col := range cols {
		key := col.Align + "|" + col.NumFmt
		id, ok := cache[key]
		if !ok {
			var err error
			id, err = f.NewStyle(dataCellStyle(col.Align, col.NumFmt))
			if err != nil {
				return nil, fmt.Errorf("creating style for column %q: %w", col.Label, err)
			}
			cache[key] = id
		}
		ids[i] = id
	}
	return ids, nil
}

func writeHeader(f *excelize.File, sheet string, t *Table, style int) error {
	// The label column spans both header rows.
	if err := f.SetCellValue(sheet, "A1", t.Label.Label); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", "A2"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "A2", style); err != nil {
		return err
	}

	col := 2
	for _, g := range t.Groups {
		start, err := excelize.CoordinatesToCellName(col, 1)
		if err != nil {
			return err
		}
		end, err := excelize.CoordinatesToCellName(col+len(g.Columns)-1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, start, g.Label); err != nil {
			return err
		}
		if len(g.Columns) > 1 {
			if err := f.MergeCell(sheet, start, end); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(sheet, start, end, style); err != nil {
			return err
		}

		for i, c := range g.Columns {
			cell, err := excelize.CoordinatesToCellName(col+i, 2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, c.Label); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return err
			}
		}
		col += len(g.Columns)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, t *Table, labelStyle int, colStyles []int) error {
	for i, row := range t.Rows {
		rowNum := firstDataRow + i

		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, row.Label); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, labelStyle); err != nil {
			return err
		}

		for j, val := range row.Values {
			cell, err := excelize.CoordinatesToCellName(2+j, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return err
			}
			if j < len(colStyles) {
				if err := f.SetCellStyle(sheet, cell, cell, colStyles[j]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// applyLayout sets column widths and freezes the header rows plus the
// label column, leaving the first data cell as the scroll origin.
func applyLayout(f *excelize.File, sheet string, label Column, cols []Column) error {
	if label.Width > 0 {
		if err := f.SetColWidth(sheet, "A", "A", label.Width); err != nil {
			return err
		}
	}
	for i, c := range cols {
		if c.Width <= 0 {
			continue
		}
		name, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, c.Width); err != nil {
			return err
		}
	}

	topLeft, err := excelize.CoordinatesToCellName(2, firstDataRow)
	if err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      headerRows,
		TopLeftCell: topLeft,
		ActivePane:  "bottomRight",
	})
}

func headerCellStyle() *excelize.Style {
	return &excelize.Style{
		Font: &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Border: thinBorder(),
	}
}

func dataCellStyle(align, numFmt string) *excelize.Style {
	if align == "" {
		align = "left"
	}
	style := &excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: align,
			Vertical:   "center",
		},
		Border: thinBorder(),
	}
	if numFmt != "" {
		style.CustomNumFmt = &numFmt
	}
	return style
}

func thinBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
}
