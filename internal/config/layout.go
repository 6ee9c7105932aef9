package config

import (
	"fmt"
	"regexp"

	"github.com/andresgonzalez1997/pricefeed/internal/models"
)

// Region is a rectangular bounding box on a page, in page points with the
// origin at the top-left (top, left, bottom, right order).
type Region struct {
	Page   int     `yaml:"page"`
	Top    float64 `yaml:"top"`
	Left   float64 `yaml:"left"`
	Bottom float64 `yaml:"bottom"`
	Right  float64 `yaml:"right"`
}

// IsZero reports whether the region is unset.
func (r Region) IsZero() bool {
	return r.Top == 0 && r.Left == 0 && r.Bottom == 0 && r.Right == 0
}

// Layout describes one price-sheet layout family: the canonical schema,
// the row-classification knobs, and the metadata regions. Layouts are
// selected by the caller per document, never inferred at runtime.
type Layout struct {
	// Columns is the canonical schema of the extracted table, in order.
	Columns models.Schema `yaml:"columns"`

	// HeaderTokens are keyword fragments that identify re-emitted header
	// rows (matched case-insensitively against the first two cells).
	HeaderTokens []string `yaml:"header_tokens"`

	// IDPattern must match the leading cell of a data row. Rows whose
	// leading cell is present but does not match are section markers.
	IDPattern string `yaml:"id_pattern"`

	// MinColumns is the minimum fragment width accepted by the filter.
	// Zero means half the schema arity, rounded up.
	MinColumns int `yaml:"min_columns"`

	// Derived output columns appended after the extracted columns.
	SectionColumn  string `yaml:"section_column"`
	LocationColumn string `yaml:"location_column"`
	DateColumn     string `yaml:"date_column"`
	SourceColumn   string `yaml:"source_column"`

	// SourceTag is the literal provenance value stamped on every record.
	SourceTag string `yaml:"source_tag"`

	// Metadata regions on the first page.
	DateRegion     Region `yaml:"date_region"`
	LocationRegion Region `yaml:"location_region"`

	// KnownLocations are facility names returned verbatim when found
	// anywhere in the location region.
	KnownLocations []string `yaml:"known_locations"`

	// Unit-weight backfill: when WeightColumn lacks WeightHint, the value
	// is recovered from DescColumn via WeightPattern.
	WeightColumn  string `yaml:"weight_column"`
	WeightHint    string `yaml:"weight_hint"`
	WeightPattern string `yaml:"weight_pattern"`
	DescColumn    string `yaml:"desc_column"`

	idRe     *regexp.Regexp
	weightRe *regexp.Regexp
}

// Validate checks the layout's schema and compiles its patterns.
// Schema problems wrap models.ErrSchemaViolation.
func (l *Layout) Validate() error {
	if err := l.Columns.Validate(); err != nil {
		return err
	}
	if err := l.OutputSchema().Validate(); err != nil {
		return fmt.Errorf("output columns: %w", err)
	}
	var err error
	if l.idRe, err = regexp.Compile(l.IDPatternOrDefault()); err != nil {
		return fmt.Errorf("id_pattern: %w", err)
	}
	if l.WeightPattern != "" {
		if l.weightRe, err = regexp.Compile(l.WeightPattern); err != nil {
			return fmt.Errorf("weight_pattern: %w", err)
		}
	}
	return nil
}

// OutputSchema returns the full output column list: the extracted columns
// followed by the derived section, location, date, and source columns.
func (l *Layout) OutputSchema() models.Schema {
	out := append(models.Schema{}, l.Columns...)
	for _, name := range []string{l.SectionColumn, l.LocationColumn, l.DateColumn, l.SourceColumn} {
		if name != "" {
			out = append(out, models.Column{Name: name, Kind: models.KindText})
		}
	}
	return out
}

// IDPatternOrDefault returns the identifier pattern, defaulting to "starts with a digit".
func (l *Layout) IDPatternOrDefault() string {
	if l.IDPattern == "" {
		return `^\d`
	}
	return l.IDPattern
}

// MinColumnsOrDefault returns the fragment arity floor, defaulting to
// half the schema arity, rounded up.
func (l *Layout) MinColumnsOrDefault() int {
	if l.MinColumns > 0 {
		return l.MinColumns
	}
	return (l.Columns.Arity() + 1) / 2
}

// IDRegexp returns the compiled identifier pattern. Validate must have
// been called; falls back to compiling on demand for hand-built layouts.
func (l *Layout) IDRegexp() *regexp.Regexp {
	if l.idRe == nil {
		l.idRe = regexp.MustCompile(l.IDPatternOrDefault())
	}
	return l.idRe
}

// WeightRegexp returns the compiled weight pattern, or nil when backfill
// is not configured.
func (l *Layout) WeightRegexp() *regexp.Regexp {
	if l.weightRe == nil && l.WeightPattern != "" {
		l.weightRe = regexp.MustCompile(l.WeightPattern)
	}
	return l.weightRe
}
