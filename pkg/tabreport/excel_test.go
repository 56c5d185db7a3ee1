package tabreport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func renderWorkbook(t *testing.T, tbl *Table) *excelize.File {
	t.Helper()

	data, err := NewExcelRenderer().Render(tbl)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestExcelRenderHeaderLayout(t *testing.T) {
	f := renderWorkbook(t, sampleTable())

	assert.Equal(t, []string{"Monthly"}, f.GetSheetList())

	for cell, want := range map[string]string{
		"A1": "Tenant Name",
		"B1": "2024-01",
		"D1": "2024-02",
		"B2": "Volume Created",
		"C2": "Tracked Percentage",
		"D2": "Volume Created",
	} {
		got, err := f.GetCellValue("Monthly", cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, "cell %s", cell)
	}

	merges, err := f.GetMergeCells("Monthly")
	require.NoError(t, err)
	ranges := make([]string, 0, len(merges))
	for _, m := range merges {
		ranges = append(ranges, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	assert.Contains(t, ranges, "A1:A2")
	assert.Contains(t, ranges, "B1:C1")
	// Single-column groups stay unmerged.
	assert.Len(t, ranges, 2)
}

func TestExcelRenderValuesAndFormats(t *testing.T) {
	f := renderWorkbook(t, sampleTable())

	// Formats are asserted through rendered values: integer cells pass
	// through the volume format unchanged, percent cells store the raw
	// ratio and render scaled by the percent format.
	for cell, want := range map[string]string{
		"A3": "Acme Corp",
		"B3": "7",
		"C3": "50.00%",
		"D3": "3",
	} {
		got, err := f.GetCellValue("Monthly", cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, "cell %s", cell)
	}

	raw, err := f.GetCellValue("Monthly", "B3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "7", raw)

	raw, err = f.GetCellValue("Monthly", "C3", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "0.5", raw)

	// Volume and percent columns carry distinct styles.
	volumeStyle, err := f.GetCellStyle("Monthly", "B3")
	require.NoError(t, err)
	percentStyle, err := f.GetCellStyle("Monthly", "C3")
	require.NoError(t, err)
	assert.NotEqual(t, volumeStyle, percentStyle)

	style, err := f.GetStyle(percentStyle)
	require.NoError(t, err)
	require.NotNil(t, style.Alignment)
	assert.Equal(t, "right", style.Alignment.Horizontal)
	assert.NotEmpty(t, style.Border)
}

func TestExcelRenderHeaderStyle(t *testing.T) {
	f := renderWorkbook(t, sampleTable())

	for _, cell := range []string{"A1", "B1", "B2"} {
		styleID, err := f.GetCellStyle("Monthly", cell)
		require.NoError(t, err)
		style, err := f.GetStyle(styleID)
		require.NoError(t, err)

		require.NotNil(t, style.Font, "cell %s", cell)
		assert.True(t, style.Font.Bold, "cell %s", cell)
		require.NotNil(t, style.Alignment, "cell %s", cell)
		assert.Equal(t, "center", style.Alignment.Horizontal, "cell %s", cell)
		assert.True(t, style.Alignment.WrapText, "cell %s", cell)
		assert.NotEmpty(t, style.Border, "cell %s", cell)
	}
}

func TestExcelRenderFreezeAndWidths(t *testing.T) {
	f := renderWorkbook(t, sampleTable())

	panes, err := f.GetPanes("Monthly")
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.XSplit)
	assert.Equal(t, 2, panes.YSplit)
	assert.Equal(t, "B3", panes.TopLeftCell)

	width, err := f.GetColWidth("Monthly", "A")
	require.NoError(t, err)
	assert.Equal(t, 36.0, width)

	width, err = f.GetColWidth("Monthly", "B")
	require.NoError(t, err)
	assert.Equal(t, 16.0, width)
}

func TestExcelRenderNoRows(t *testing.T) {
	tbl := sampleTable()
	tbl.Rows = nil

	f := renderWorkbook(t, tbl)

	got, err := f.GetCellValue("Monthly", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Tenant Name", got)

	got, err = f.GetCellValue("Monthly", "A3")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExcelRenderDefaultSheetName(t *testing.T) {
	tbl := sampleTable()
	tbl.SheetName = ""

	data, err := NewExcelRenderer().Render(tbl)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Sheet1"}, f.GetSheetList())
}

func TestExcelRendererMeta(t *testing.T) {
	r := NewExcelRenderer()
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", r.ContentType())
	assert.Equal(t, "xlsx", r.Ext())
}
