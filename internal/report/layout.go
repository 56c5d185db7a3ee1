// Package report projects summary grids into renderable tables: month
// column groups, metric columns, tenant row ordering and file naming.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rdkadakkal/Yusen-Report/internal/domain"
	"github.com/rdkadakkal/Yusen-Report/pkg/tabreport"
)

// metric binds one summary grid field to its column rendering.
type metric struct {
	name    string // column label is this name with underscores spaced
	percent bool
	value   func(domain.SummaryRow) interface{}
}

// metrics in their fixed order within every month block.
var metrics = []metric{
	{name: "Volume_Created", value: func(r domain.SummaryRow) interface{} { return r.VolumeCreated }},
	{name: "Volume_Tracked", value: func(r domain.SummaryRow) interface{} { return r.VolumeTracked }},
	{name: "Volume_Not_Tracked", value: func(r domain.SummaryRow) interface{} { return r.VolumeNotTracked }},
	{name: "Tracked_Percentage", percent: true, value: func(r domain.SummaryRow) interface{} { return r.TrackedPercentage }},
}

// BuildTable projects a summary grid into a report table: one row per
// tenant, one column group per month carrying the four metric columns.
// A nil template means the default layout.
func BuildTable(grid *domain.SummaryGrid, tmpl *Template) *tabreport.Table {
	if tmpl == nil {
		tmpl = DefaultTemplate()
	}

	groups := make([]tabreport.ColumnGroup, 0, len(grid.Months))
	for _, month := range grid.Months {
		cols := make([]tabreport.Column, 0, len(metrics))
		for _, m := range metrics {
			numFmt := tmpl.VolumeFormat
			if m.percent {
				numFmt = tmpl.PercentFormat
			}
			cols = append(cols, tabreport.Column{
				Label:  strings.ReplaceAll(m.name, "_", " "),
				Width:  tmpl.MetricColumnWidth,
				NumFmt: numFmt,
				Align:  "right",
			})
		}
		groups = append(groups, tabreport.ColumnGroup{Label: month, Columns: cols})
	}

	tenants := orderTenants(grid, grid.RequiredTenants)
	rows := make([]tabreport.Row, 0, len(tenants))
	for _, tenant := range tenants {
		values := make([]interface{}, 0, len(grid.Months)*len(metrics))
		for _, month := range grid.Months {
			cell, ok := grid.Cell(tenant, month)
			for _, m := range metrics {
				if !ok {
					values = append(values, 0)
					continue
				}
				values = append(values, m.value(cell))
			}
		}
		rows = append(rows, tabreport.Row{Label: tenant, Values: values})
	}

	return &tabreport.Table{
		SheetName: tmpl.SheetName,
		Label: tabreport.Column{
			Label: tmpl.TenantHeader,
			Width: tmpl.TenantColumnWidth,
			Align: "left",
		},
		Groups: groups,
		Rows:   rows,
	}
}

// orderTenants puts the required tenants first, in their declared
// order and filtered to those present in the grid, then every
// remaining tenant alphabetically.
func orderTenants(grid *domain.SummaryGrid, required []string) []string {
	present := make(map[string]bool, len(grid.Tenants))
	for _, tenant := range grid.Tenants {
		present[tenant] = true
	}

	ordered := make([]string, 0, len(grid.Tenants))
	seen := make(map[string]bool, len(grid.Tenants))
	for _, tenant := range required {
		if present[tenant] && !seen[tenant] {
			ordered = append(ordered, tenant)
			seen[tenant] = true
		}
	}

	rest := make([]string, 0, len(grid.Tenants))
	for _, tenant := range grid.Tenants {
		if !seen[tenant] {
			rest = append(rest, tenant)
		}
	}
	sort.Strings(rest)
	return append(ordered, rest...)
}

// SuggestedFilename names a generated report after its processing
// timestamp, e.g. Yusen_Style_Summary_20240105_0930.xlsx.
func SuggestedFilename(tmpl *Template, ts time.Time, ext string) string {
	if tmpl == nil {
		tmpl = DefaultTemplate()
	}
	return fmt.Sprintf("%s_%s.%s", tmpl.FilenamePrefix, ts.Format("20060102_1504"), ext)
}
