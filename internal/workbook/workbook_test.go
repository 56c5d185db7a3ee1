package workbook

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T, sheet string, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))

	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, val))
		}
	}

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestReadTrimsHeaderAndPadsRows(t *testing.T) {
	buf := writeTestWorkbook(t, "Export", [][]interface{}{
		{" Tenant Name ", "Tracked", " Period Date"},
		{"Acme Corp", "yes", "2024-01-05"},
		{"Solo Tenant"}, // short row, missing two trailing cells
	})

	ds, err := Read(buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"Tenant Name", "Tracked", "Period Date"}, ds.Columns)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, []string{"Acme Corp", "yes", "2024-01-05"}, ds.Rows[0])
	assert.Equal(t, []string{"Solo Tenant", "", ""}, ds.Rows[1])
}

func TestReadUsesFirstSheetOnly(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Primary"))
	require.NoError(t, f.SetCellValue("Primary", "A1", "Tenant Name"))
	require.NoError(t, f.SetCellValue("Primary", "A2", "Acme Corp"))

	_, err := f.NewSheet("Secondary")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Secondary", "A1", "Ignored"))

	var buf bytes.Buffer
	_, err = f.WriteTo(&buf)
	require.NoError(t, err)

	ds, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tenant Name"}, ds.Columns)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "Acme Corp", ds.Rows[0][0])
}

func TestReadEmptySheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)

	ds, err := Read(&buf)
	require.NoError(t, err)
	assert.Empty(t, ds.Columns)
	assert.Empty(t, ds.Rows)
}

func TestReadRejectsNonWorkbook(t *testing.T) {
	_, err := Read(strings.NewReader("this is not a spreadsheet"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidWorkbook))
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile("does/not/exist.xlsx")
	require.Error(t, err)
}
