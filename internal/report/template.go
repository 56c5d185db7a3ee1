package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template configures the rendered report layout. Fields left at their
// zero value fall back to the fixed defaults the report has always
// shipped with, so a partial YAML file only overrides what it names.
type Template struct {
	SheetName         string  `yaml:"sheet_name"`
	TenantHeader      string  `yaml:"tenant_header"`
	TenantColumnWidth float64 `yaml:"tenant_column_width"`
	MetricColumnWidth float64 `yaml:"metric_column_width"`
	VolumeFormat      string  `yaml:"volume_format"`
	PercentFormat     string  `yaml:"percent_format"`
	FilenamePrefix    string  `yaml:"filename_prefix"`
}

// DefaultTemplate returns the canonical report layout.
func DefaultTemplate() *Template {
	return &Template{
		SheetName:         "Summary",
		TenantHeader:      "Tenant Name",
		TenantColumnWidth: 36,
		MetricColumnWidth: 16,
		VolumeFormat:      "0",
		PercentFormat:     "0.00%",
		FilenamePrefix:    "Yusen_Style_Summary",
	}
}

// LoadTemplate loads a layout template from a YAML file.
func LoadTemplate(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening template file: %w", err)
	}
	defer f.Close()
	return LoadTemplateFromReader(f)
}

// LoadTemplateFromReader loads a layout template from an io.Reader.
func LoadTemplateFromReader(r io.Reader) (*Template, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading template: %w", err)
	}

	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing YAML template: %w", err)
	}

	tmpl.applyDefaults()
	if err := tmpl.validate(); err != nil {
		return nil, fmt.Errorf("validating template: %w", err)
	}
	return &tmpl, nil
}

// LoadTemplateFromString loads a layout template from a YAML string.
func LoadTemplateFromString(yamlContent string) (*Template, error) {
	return LoadTemplateFromReader(strings.NewReader(yamlContent))
}

func (t *Template) applyDefaults() {
	def := DefaultTemplate()
	if t.SheetName == "" {
		t.SheetName = def.SheetName
	}
	if t.TenantHeader == "" {
		t.TenantHeader = def.TenantHeader
	}
	if t.TenantColumnWidth == 0 {
		t.TenantColumnWidth = def.TenantColumnWidth
	}
	if t.MetricColumnWidth == 0 {
		t.MetricColumnWidth = def.MetricColumnWidth
	}
	if t.VolumeFormat == "" {
		t.VolumeFormat = def.VolumeFormat
	}
	if t.PercentFormat == "" {
		t.PercentFormat = def.PercentFormat
	}
	if t.FilenamePrefix == "" {
		t.FilenamePrefix = def.FilenamePrefix
	}
}

func (t *Template) validate() error {
	if t.TenantColumnWidth < 0 {
		return fmt.Errorf("tenant_column_width must be positive, got %v", t.TenantColumnWidth)
	}
	if t.MetricColumnWidth < 0 {
		return fmt.Errorf("metric_column_width must be positive, got %v", t.MetricColumnWidth)
	}
	return nil
}
