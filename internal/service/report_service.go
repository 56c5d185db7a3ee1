package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rdkadakkal/Yusen-Report/internal/domain"
	"github.com/rdkadakkal/Yusen-Report/internal/logger"
	"github.com/rdkadakkal/Yusen-Report/internal/report"
	"github.com/rdkadakkal/Yusen-Report/internal/summary"
	"github.com/rdkadakkal/Yusen-Report/internal/workbook"
	"github.com/rdkadakkal/Yusen-Report/pkg/tabreport"
)

// Report formats accepted by Generate.
const (
	FormatExcel = "xlsx"
	FormatCSV   = "csv"
)

// ErrUnknownFormat marks report format names with no registered
// renderer.
var ErrUnknownFormat = errors.New("unsupported report format")

// DefaultPreviewRows caps preview output when no limit is configured.
const DefaultPreviewRows = 20

// SummaryReportService runs the upload -> aggregate -> render
// pipeline. It holds no per-request state; every call processes one
// uploaded workbook from scratch and nothing is retained afterwards.
type SummaryReportService struct {
	tmpl        *report.Template
	previewRows int
	now         func() time.Time
	renderers   map[string]tabreport.Renderer
}

// Option tunes a SummaryReportService.
type Option func(*SummaryReportService)

// WithPreviewRows caps how many raw and aggregated rows previews
// return.
func WithPreviewRows(n int) Option {
	return func(s *SummaryReportService) {
		if n > 0 {
			s.previewRows = n
		}
	}
}

// WithClock overrides the clock used for fallback months and report
// file names.
func WithClock(now func() time.Time) Option {
	return func(s *SummaryReportService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSummaryReportService creates the service with the given layout
// template (nil means the default layout) and registers the built-in
// renderers.
func NewSummaryReportService(tmpl *report.Template, opts ...Option) *SummaryReportService {
	if tmpl == nil {
		tmpl = report.DefaultTemplate()
	}
	svc := &SummaryReportService{
		tmpl:        tmpl,
		previewRows: DefaultPreviewRows,
		now:         time.Now,
		renderers: map[string]tabreport.Renderer{
			FormatExcel: tabreport.NewExcelRenderer(),
			FormatCSV:   tabreport.NewCSVRenderer(),
		},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// SummaryPreview shows the caller what was understood from an upload:
// the leading raw rows and the leading rows of the aggregated grid.
type SummaryPreview struct {
	Columns       []string            `json:"columns"`
	RawRows       [][]string          `json:"raw_rows"`
	TotalRawRows  int                 `json:"total_raw_rows"`
	Summary       []domain.SummaryRow `json:"summary"`
	TotalGridRows int                 `json:"total_grid_rows"`
	Months        []string            `json:"months"`
}

// ReportArtifact is a rendered report ready for download.
type ReportArtifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Preview parses and aggregates an uploaded workbook without
// rendering it.
func (s *SummaryReportService) Preview(ctx context.Context, r io.Reader) (*SummaryPreview, error) {
	ds, grid, err := s.aggregate(ctx, r)
	if err != nil {
		return nil, err
	}

	return &SummaryPreview{
		Columns:       ds.Columns,
		RawRows:       headRows(ds.Rows, s.previewRows),
		TotalRawRows:  len(ds.Rows),
		Summary:       headSummary(grid.Rows, s.previewRows),
		TotalGridRows: len(grid.Rows),
		Months:        grid.Months,
	}, nil
}

// Generate runs the full pipeline and renders the summary grid in the
// requested format. An empty format means Excel.
func (s *SummaryReportService) Generate(ctx context.Context, r io.Reader, format string) (*ReportArtifact, error) {
	renderer, err := s.renderer(format)
	if err != nil {
		return nil, err
	}

	_, grid, err := s.aggregate(ctx, r)
	if err != nil {
		return nil, err
	}

	table := report.BuildTable(grid, s.tmpl)
	data, err := renderer.Render(table)
	if err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	artifact := &ReportArtifact{
		Filename:    report.SuggestedFilename(s.tmpl, s.now(), renderer.Ext()),
		ContentType: renderer.ContentType(),
		Data:        data,
	}
	logger.InfoLog(ctx, "Report generated: %s (%d bytes, %d tenants x %d months)",
		artifact.Filename, len(data), len(grid.Tenants), len(grid.Months))
	return artifact, nil
}

// RequiredTenants returns the tenants guaranteed a row in every
// report.
func (s *SummaryReportService) RequiredTenants() []string {
	tenants := make([]string, len(domain.RequiredTenants))
	copy(tenants, domain.RequiredTenants)
	return tenants
}

func (s *SummaryReportService) aggregate(ctx context.Context, r io.Reader) (*domain.Dataset, *domain.SummaryGrid, error) {
	ds, err := workbook.Read(r)
	if err != nil {
		return nil, nil, err
	}
	logger.InfoLog(ctx, "Workbook loaded: %d columns, %d rows", len(ds.Columns), len(ds.Rows))

	grid, err := summary.Build(ds, summary.WithClock(s.now))
	if err != nil {
		return nil, nil, err
	}
	logger.InfoLog(ctx, "Summary grid built: %d tenants x %d months", len(grid.Tenants), len(grid.Months))
	return ds, grid, nil
}

func (s *SummaryReportService) renderer(format string) (tabreport.Renderer, error) {
	if format == "" {
		format = FormatExcel
	}
	r, ok := s.renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return r, nil
}

func headRows(rows [][]string, n int) [][]string {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}

func headSummary(rows []domain.SummaryRow, n int) []domain.SummaryRow {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
