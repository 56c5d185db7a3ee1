package domain

import "time"

// Required input columns of the tracking export. Matching is exact
// after the header row is trimmed.
const (
	ColumnTenantName = "Tenant Name"
	ColumnTracked    = "Tracked"
	ColumnPeriodDate = "Period Date"
)

// MonthKeyLayout renders a calendar month bucket, e.g. "2024-01".
const MonthKeyLayout = "2006-01"

// Dataset is a raw tabular dataset as read from an uploaded export:
// the trimmed header row plus data rows padded to header width.
type Dataset struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex returns the position of the named column, or -1 when the
// dataset has no such column.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// TrackingRecord is one shipment row after normalization: tenant name
// trimmed and defaulted, tracked flag coerced, period date parsed.
type TrackingRecord struct {
	TenantName string
	Tracked    bool
	PeriodDate time.Time
}

// YearMonth returns the record's calendar month bucket.
func (r TrackingRecord) YearMonth() string {
	return r.PeriodDate.Format(MonthKeyLayout)
}

// SummaryRow holds the four derived metrics of one (tenant, month)
// cell. TrackedPercentage is a ratio in [0, 1]; formatting it as a
// percentage is a rendering concern.
type SummaryRow struct {
	TenantName        string  `json:"tenant_name"`
	YearMonth         string  `json:"year_month"`
	VolumeCreated     int     `json:"volume_created"`
	VolumeTracked     int     `json:"volume_tracked"`
	VolumeNotTracked  int     `json:"volume_not_tracked"`
	TrackedPercentage float64 `json:"tracked_percentage"`
}

type gridKey struct {
	tenant string
	month  string
}

// SummaryGrid is the complete tenant x month matrix: one SummaryRow
// for every combination, including all-zero rows for tenants with no
// shipments in a month.
type SummaryGrid struct {
	Months  []string     `json:"months"`  // ascending month keys
	Tenants []string     `json:"tenants"` // tenant universe, alphabetical
	Rows    []SummaryRow `json:"rows"`    // full cross product, sorted by (tenant, month)

	// RequiredTenants records the set the grid was zero-filled
	// against, in its declared order. Renderers order rows by it.
	RequiredTenants []string `json:"required_tenants"`

	cells map[gridKey]SummaryRow
}

// NewSummaryGrid assembles a grid and indexes its rows for lookup. The
// required set is copied; the grid owns the remaining slices.
func NewSummaryGrid(months, tenants, required []string, rows []SummaryRow) *SummaryGrid {
	g := &SummaryGrid{
		Months:          months,
		Tenants:         tenants,
		RequiredTenants: append([]string(nil), required...),
		Rows:            rows,
		cells:           make(map[gridKey]SummaryRow, len(rows)),
	}
	for _, r := range rows {
		g.cells[gridKey{tenant: r.TenantName, month: r.YearMonth}] = r
	}
	return g
}

// Cell returns the summary row for (tenant, month), reporting whether
// the combination exists in the grid.
func (g *SummaryGrid) Cell(tenant, month string) (SummaryRow, bool) {
	r, ok := g.cells[gridKey{tenant: tenant, month: month}]
	return r, ok
}
