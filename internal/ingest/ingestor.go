// Package ingest turns one dropped price-sheet file into warehouse rows.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/andresgonzalez1997/pricefeed/internal/config"
	"github.com/andresgonzalez1997/pricefeed/internal/docid"
	"github.com/andresgonzalez1997/pricefeed/internal/engine"
	"github.com/andresgonzalez1997/pricefeed/internal/extract"
	"github.com/andresgonzalez1997/pricefeed/internal/metadata"
	"github.com/andresgonzalez1997/pricefeed/internal/models"
)

// Uploader loads a finished table into the warehouse and returns the
// number of rows written.
type Uploader interface {
	Upload(ctx context.Context, tbl *models.Table) (int64, error)
}

// Result summarizes one ingested document.
type Result struct {
	DocID         string `json:"doc_id"`
	Path          string `json:"path"`
	Layout        string `json:"layout"`
	Records       int64  `json:"records"`
	EffectiveDate string `json:"effective_date,omitempty"`
	PlantLocation string `json:"plant_location,omitempty"`
}

// Ingestor runs the extract, reconcile and upload steps for files.
type Ingestor struct {
	cfg      *config.Config
	uploader Uploader
	logger   *zap.Logger // optional; when set, logs debug events

	mu        sync.Mutex
	pipelines map[string]*engine.Pipeline
}

// IngestorOption configures an Ingestor.
type IngestorOption func(*Ingestor)

// WithLogger sets a logger for debug output (file ingested, rows uploaded, etc.).
func WithLogger(l *zap.Logger) IngestorOption {
	return func(ing *Ingestor) { ing.logger = l }
}

// NewIngestor creates an ingestor with the given dependencies.
func NewIngestor(cfg *config.Config, uploader Uploader, opts ...IngestorOption) *Ingestor {
	ing := &Ingestor{
		cfg:       cfg,
		uploader:  uploader,
		pipelines: make(map[string]*engine.Pipeline),
	}
	for _, opt := range opts {
		opt(ing)
	}
	return ing
}

// IngestFile reads the price sheet at path, reconciles it under the
// named layout ("" uses the configured default) and uploads the result.
// A sheet that yields zero data rows still uploads: the warehouse table
// is replaced with an empty one, matching what the document said.
func (ing *Ingestor) IngestFile(ctx context.Context, path, layoutName string) (*Result, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file: %s", absPath)
	}

	layout, err := ing.cfg.Layout(layoutName)
	if err != nil {
		return nil, err
	}
	pipeline, err := ing.pipeline(layoutName, layout)
	if err != nil {
		return nil, err
	}

	if ing.logger != nil {
		ing.logger.Debug("ingesting file", zap.String("path", absPath), zap.String("layout", layoutName))
	}

	doc, err := extract.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	fragments, err := doc.Fragments()
	if err != nil {
		return nil, fmt.Errorf("extract fragments: %w", err)
	}
	meta := ing.documentMetadata(doc, layout)

	table := pipeline.Run(fragments, meta)
	// Shape guard before anything touches the warehouse.
	table, err = pipeline.Project(table)
	if err != nil {
		return nil, fmt.Errorf("project table: %w", err)
	}

	count, err := ing.uploader.Upload(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("upload table: %w", err)
	}

	result := &Result{
		DocID:         docid.SheetDocID(absPath),
		Path:          absPath,
		Layout:        layoutName,
		Records:       count,
		EffectiveDate: meta.DateString(),
		PlantLocation: meta.PlantLocation,
	}
	if ing.logger != nil {
		ing.logger.Info("file ingested",
			zap.String("path", absPath),
			zap.Int64("records", count),
			zap.String("effective_date", result.EffectiveDate),
			zap.String("plant_location", result.PlantLocation),
		)
	}
	return result, nil
}

// IngestDirectory ingests each regular file in dir whose extension is
// in allowedExts (all files when empty). Returns the number of files
// ingested and the first error encountered.
func (ing *Ingestor) IngestDirectory(ctx context.Context, dir, layoutName string, allowedExts []string) (n int, err error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return 0, fmt.Errorf("absolute path: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return 0, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("not a directory: %s", absDir)
	}
	err = filepath.WalkDir(absDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if !ExtensionAllowed(filepath.Ext(path), allowedExts) {
			return nil
		}
		finfo, statErr := os.Stat(path)
		if statErr != nil || !finfo.Mode().IsRegular() {
			return nil
		}
		if _, ingestErr := ing.IngestFile(ctx, path, layoutName); ingestErr != nil {
			return ingestErr
		}
		n++
		return nil
	})
	return n, err
}

// documentMetadata reads the date and location regions. Metadata is
// best-effort end to end: a failed region read is logged and the field
// stays null, it never blocks record production.
func (ing *Ingestor) documentMetadata(doc extract.Document, layout *config.Layout) models.DocumentMetadata {
	dateText, err := doc.RegionText(layout.DateRegion)
	if err != nil {
		dateText = ""
		if ing.logger != nil {
			ing.logger.Warn("date region unreadable", zap.Error(err))
		}
	}
	locationText, err := doc.RegionText(layout.LocationRegion)
	if err != nil {
		locationText = ""
		if ing.logger != nil {
			ing.logger.Warn("location region unreadable", zap.Error(err))
		}
	}
	return metadata.Extract(dateText, locationText, layout)
}

// pipeline returns the cached pipeline for a layout, building it on
// first use.
func (ing *Ingestor) pipeline(name string, layout *config.Layout) (*engine.Pipeline, error) {
	ing.mu.Lock()
	defer ing.mu.Unlock()
	if p, ok := ing.pipelines[name]; ok {
		return p, nil
	}
	opts := []engine.PipelineOption{}
	if ing.logger != nil {
		opts = append(opts, engine.WithLogger(ing.logger))
	}
	p, err := engine.NewPipeline(layout, opts...)
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}
	ing.pipelines[name] = p
	return p, nil
}

// ExtensionAllowed reports whether ext is in allowed, ignoring case and
// leading dots. An empty allowed list admits everything.
func ExtensionAllowed(ext string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	extNorm := strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, a := range allowed {
		if strings.ToLower(strings.TrimPrefix(a, ".")) == extNorm {
			return true
		}
	}
	return false
}
