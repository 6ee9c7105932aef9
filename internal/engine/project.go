package engine

import (
	"fmt"
	"strings"

	"github.com/andresgonzalez1997/pricefeed/internal/config"
	"github.com/andresgonzalez1997/pricefeed/internal/models"
	"github.com/andresgonzalez1997/pricefeed/pkg/utils"
)

// Projector maps rows onto the canonical output schema: extracted
// columns in schema order with per-column type coercion, followed by the
// derived section, location, date, and source columns.
type Projector struct {
	layout *config.Layout
	output models.Schema
}

// NewProjector returns a projector for the layout.
func NewProjector(layout *config.Layout) *Projector {
	return &Projector{layout: layout, output: layout.OutputSchema()}
}

// Schema returns the full output schema.
func (p *Projector) Schema() models.Schema {
	return p.output
}

// ProjectRow converts one aligned data row into a record: numeric
// columns are parsed (null on failure), text columns trimmed, and the
// derived columns stamped from the section state and document metadata.
func (p *Projector) ProjectRow(row []models.Cell, section string, meta models.DocumentMetadata) models.Record {
	rec := make(models.Record, 0, p.output.Arity())
	for i, col := range p.layout.Columns {
		cell := row[i]
		if cell.IsBlank() {
			rec = append(rec, models.NullValue(col.Kind))
			continue
		}
		if col.Kind == models.KindNumeric {
			if f, ok := ParseNumeric(cell.Text); ok {
				rec = append(rec, models.NumberValue(f))
			} else {
				rec = append(rec, models.NullValue(models.KindNumeric))
			}
			continue
		}
		rec = append(rec, models.TextValue(utils.CollapseSpaces(cell.Text)))
	}

	if p.layout.SectionColumn != "" {
		rec = append(rec, textOrNull(section))
	}
	if p.layout.LocationColumn != "" {
		rec = append(rec, textOrNull(meta.PlantLocation))
	}
	if p.layout.DateColumn != "" {
		rec = append(rec, textOrNull(meta.DateString()))
	}
	if p.layout.SourceColumn != "" {
		rec = append(rec, textOrNull(p.layout.SourceTag))
	}
	return rec
}

func textOrNull(s string) models.Value {
	if s == "" {
		return models.NullValue(models.KindText)
	}
	return models.TextValue(s)
}

// ProjectTable reprojects an arbitrary named table onto the canonical
// schema: canonical columns missing from the input are created all-null,
// extraneous input columns are dropped, the order is canonical, and
// values are coerced per column kind. Projecting an already-canonical
// table yields an identical table.
//
// A numeric column whose input values are present but none of which can
// be coerced indicates the schema itself disagrees with the data; that
// is the one fatal condition and wraps models.ErrSchemaViolation.
func (p *Projector) ProjectTable(in *models.Table) (*models.Table, error) {
	srcIdx := make([]int, p.output.Arity())
	for i, col := range p.output {
		srcIdx[i] = in.Schema().Index(col.Name)
	}

	out := models.NewTable(p.output)
	present := make([]int, p.output.Arity())
	coerced := make([]int, p.output.Arity())
	for _, row := range in.Rows {
		rec := make(models.Record, p.output.Arity())
		for i, col := range p.output {
			src := srcIdx[i]
			if src < 0 || src >= len(row) {
				rec[i] = models.NullValue(col.Kind)
				continue
			}
			v := row[src]
			if !v.Null {
				present[i]++
			}
			cv, ok := coerceValue(v, col.Kind)
			if ok && !cv.Null {
				coerced[i]++
			}
			rec[i] = cv
		}
		out.Append(rec)
	}

	for i, col := range p.output {
		if present[i] > 0 && coerced[i] == 0 {
			return nil, fmt.Errorf("%w: column %q cannot be coerced to %s",
				models.ErrSchemaViolation, col.Name, col.Kind)
		}
	}
	return out, nil
}

// coerceValue converts v to the target kind. Nulls pass through with the
// target kind; an unparseable numeric becomes null.
func coerceValue(v models.Value, kind models.Kind) (models.Value, bool) {
	if v.Null {
		return models.NullValue(kind), true
	}
	if v.Kind == kind {
		return v, true
	}
	if kind == models.KindText {
		return models.TextValue(v.String()), true
	}
	if f, ok := ParseNumeric(strings.TrimSpace(v.Text)); ok {
		return models.NumberValue(f), true
	}
	return models.NullValue(models.KindNumeric), false
}
