// Package workbook reads uploaded spreadsheet exports into raw
// datasets. It knows nothing about tracking semantics; it only turns
// the first sheet of an .xlsx file into a header row plus data rows.
package workbook

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rdkadakkal/Yusen-Report/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ErrInvalidWorkbook marks uploads that cannot be opened as a
// spreadsheet at all, as opposed to well-formed files with unusable
// content.
var ErrInvalidWorkbook = errors.New("invalid workbook")

// Read parses the first sheet of an .xlsx stream into a Dataset. The
// first row becomes the header with each cell trimmed; data rows
// shorter than the header are padded with empty strings so positional
// access is always safe.
func Read(r io.Reader) (*domain.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: no sheets", ErrInvalidWorkbook)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &domain.Dataset{}, nil
	}

	header := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		header[i] = strings.TrimSpace(c)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		}
		data = append(data, row)
	}

	return &domain.Dataset{Columns: header, Rows: data}, nil
}

// ReadFile is a convenience wrapper around Read for on-disk workbooks.
func ReadFile(path string) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
