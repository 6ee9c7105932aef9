// Package engine implements the fragment reconciliation and
// normalization pipeline: filter, align, classify, numeric
// normalization, section propagation, and schema projection.
package engine

import (
	"fmt"

	"github.com/andresgonzalez1997/pricefeed/internal/config"
	"github.com/andresgonzalez1997/pricefeed/internal/models"
	"go.uber.org/zap"
)

// Pipeline reconciles one document's raw fragments into a single
// schema-shaped table. A pipeline is safe for concurrent use: each Run
// owns its own transient state, and the layout is read-only.
type Pipeline struct {
	layout     *config.Layout
	classifier *Classifier
	projector  *Projector
	backfill   *weightBackfill
	logger     *zap.Logger // optional; when set, logs debug events
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets a logger for debug output (dropped fragments, row labels, etc.).
func WithLogger(l *zap.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = l }
}

// NewPipeline builds a pipeline for one layout family. The layout's
// schema is validated up front; an inconsistent schema is the one fatal
// configuration error and wraps models.ErrSchemaViolation.
func NewPipeline(layout *config.Layout, opts ...PipelineOption) (*Pipeline, error) {
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}
	p := &Pipeline{
		layout:     layout,
		classifier: NewClassifier(layout),
		projector:  NewProjector(layout),
		backfill:   newWeightBackfill(layout),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Schema returns the pipeline's output schema.
func (p *Pipeline) Schema() models.Schema {
	return p.projector.Schema()
}

// Project reprojects a named table onto the pipeline's output schema.
// See Projector.ProjectTable.
func (p *Pipeline) Project(in *models.Table) (*models.Table, error) {
	return p.projector.ProjectTable(in)
}

// Run reconciles the document's fragments into one table. Fragments
// flow strictly forward: filter, align, classify/strip, normalize,
// propagate section, project. Rejected fragments and unparseable cells
// are absorbed, never errors. Zero usable fragments yields an empty but
// schema-shaped table so callers can treat "found nothing" as a valid
// typed result.
func (p *Pipeline) Run(fragments []models.Fragment, meta models.DocumentMetadata) *models.Table {
	arity := p.layout.Columns.Arity()
	minColumns := p.layout.MinColumnsOrDefault()
	table := models.NewTable(p.projector.Schema())

	var sections Sections
	usable := 0
	for _, frag := range fragments {
		if !UsableFragment(frag, minColumns) {
			if p.logger != nil {
				p.logger.Debug("fragment rejected",
					zap.Int("page", frag.Page),
					zap.Int("width", frag.Width()),
					zap.Int("min_columns", minColumns))
			}
			continue
		}
		usable++
		for _, raw := range frag.Rows {
			row := AlignRow(raw, arity)
			label := p.classifier.Classify(row)
			switch label {
			case LabelHeader, LabelPlaceholder:
				if p.logger != nil {
					p.logger.Debug("row dropped", zap.Int("page", frag.Page), zap.Stringer("label", label))
				}
				continue
			case LabelSection:
				sections.Observe(row[0].Text)
				continue
			}
			if p.backfill != nil {
				row = p.backfill.apply(row)
			}
			table.Append(p.projector.ProjectRow(row, sections.Current(), meta))
		}
	}

	if p.logger != nil {
		p.logger.Debug("pipeline run complete",
			zap.Int("fragments", len(fragments)),
			zap.Int("usable_fragments", usable),
			zap.Int("records", len(table.Rows)))
	}
	return table
}
