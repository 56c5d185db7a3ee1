// Package summary aggregates raw tracking exports into the tenant x
// month grid behind every report. Input validation is strict on shape
// (required columns must exist) and lenient on content (bad rows are
// absorbed, never fatal).
package summary

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rdkadakkal/Yusen-Report/internal/domain"
	"github.com/xuri/excelize/v2"
)

// SchemaError reports required input columns absent from a dataset.
// It aborts aggregation before any row is read.
type SchemaError struct {
	MissingColumns []string
	// DateAlternatives lists columns whose names contain "date",
	// hinted at the caller when Period Date itself is missing.
	DateAlternatives []string
}

func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("missing column(s): %s", strings.Join(quoteAll(e.MissingColumns), ", "))
	if len(e.DateAlternatives) > 0 {
		msg += fmt.Sprintf(" (found alternatives: %s)", strings.Join(quoteAll(e.DateAlternatives), ", "))
	}
	return msg
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = "'" + s + "'"
	}
	return out
}

// Build aggregates a dataset into the complete tenant x month summary
// grid. The tenant universe is the union of tenants observed in the
// data and the required set; every (tenant, month) combination gets a
// row, all-zero when no shipments fall into it. Rows whose date cannot
// be parsed are dropped; when nothing survives, the grid covers the
// current month so a report can still be produced.
func Build(ds *domain.Dataset, opts ...Option) (*domain.SummaryGrid, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	tenantIdx, trackedIdx, dateIdx, err := requiredColumns(ds)
	if err != nil {
		return nil, err
	}

	records := canonicalize(ds, tenantIdx, trackedIdx, dateIdx)

	type counts struct {
		created int
		tracked int
	}
	byKey := make(map[gridKey]*counts)
	monthSet := make(map[string]struct{})
	tenantSet := make(map[string]struct{})

	for _, rec := range records {
		key := gridKey{tenant: rec.TenantName, month: rec.YearMonth()}
		c := byKey[key]
		if c == nil {
			c = &counts{}
			byKey[key] = c
		}
		c.created++
		if rec.Tracked {
			c.tracked++
		}
		monthSet[key.month] = struct{}{}
		tenantSet[key.tenant] = struct{}{}
	}

	months := sortedKeys(monthSet)
	if len(months) == 0 {
		months = []string{cfg.Now().Format(domain.MonthKeyLayout)}
	}

	for _, t := range cfg.RequiredTenants {
		tenantSet[t] = struct{}{}
	}
	tenants := sortedKeys(tenantSet)

	rows := make([]domain.SummaryRow, 0, len(tenants)*len(months))
	for _, tenant := range tenants {
		for _, month := range months {
			row := domain.SummaryRow{TenantName: tenant, YearMonth: month}
			if c, ok := byKey[gridKey{tenant: tenant, month: month}]; ok {
				row.VolumeCreated = c.created
				row.VolumeTracked = c.tracked
				row.VolumeNotTracked = c.created - c.tracked
				if c.created > 0 {
					row.TrackedPercentage = float64(c.tracked) / float64(c.created)
				}
			}
			rows = append(rows, row)
		}
	}

	return domain.NewSummaryGrid(months, tenants, cfg.RequiredTenants, rows), nil
}

type gridKey struct {
	tenant string
	month  string
}

func requiredColumns(ds *domain.Dataset) (tenantIdx, trackedIdx, dateIdx int, err error) {
	tenantIdx = ds.ColumnIndex(domain.ColumnTenantName)
	trackedIdx = ds.ColumnIndex(domain.ColumnTracked)
	dateIdx = ds.ColumnIndex(domain.ColumnPeriodDate)

	var missing []string
	if tenantIdx < 0 {
		missing = append(missing, domain.ColumnTenantName)
	}
	if trackedIdx < 0 {
		missing = append(missing, domain.ColumnTracked)
	}
	var alternatives []string
	if dateIdx < 0 {
		missing = append(missing, domain.ColumnPeriodDate)
		for _, c := range ds.Columns {
			if strings.Contains(strings.ToLower(c), "date") {
				alternatives = append(alternatives, c)
			}
		}
	}
	if len(missing) > 0 {
		return 0, 0, 0, &SchemaError{MissingColumns: missing, DateAlternatives: alternatives}
	}
	return tenantIdx, trackedIdx, dateIdx, nil
}

// canonicalize turns raw rows into tracking records: empty tenant
// names become the Unknown sentinel, tracked flags are coerced, and
// rows without a parsable date are discarded.
func canonicalize(ds *domain.Dataset, tenantIdx, trackedIdx, dateIdx int) []domain.TrackingRecord {
	records := make([]domain.TrackingRecord, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		date, ok := parseDate(cell(row, dateIdx))
		if !ok {
			continue
		}
		tenant := strings.TrimSpace(cell(row, tenantIdx))
		if tenant == "" {
			tenant = domain.UnknownTenant
		}
		records = append(records, domain.TrackingRecord{
			TenantName: tenant,
			Tracked:    parseTrackedFlag(cell(row, trackedIdx)),
			PeriodDate: date,
		})
	}
	return records
}

// parseTrackedFlag coerces a raw tracked token to a boolean. The
// vocabulary is fixed and case-insensitive; anything outside it,
// including blanks, counts as not tracked.
func parseTrackedFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "t":
		return true
	}
	return false
}

// dateLayouts covers the text renderings spreadsheet readers produce
// for date cells plus the ISO forms text exports use. Day-first
// layouts are deliberately absent: "01-02-06" style values always
// read month-first here.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01-02-06",
	"1/2/2006",
	"1/2/06",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// Unformatted date cells surface as raw Excel day serials.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
