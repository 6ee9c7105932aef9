// Package extract opens price-sheet documents and produces raw table
// fragments plus bounded region text for the pipeline. Producers are
// thin adapters: they report what the format gives them, ragged rows
// and all, and leave reconciliation to the engine.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/andresgonzalez1997/pricefeed/internal/config"
	"github.com/andresgonzalez1997/pricefeed/internal/models"
)

// Document is one opened price sheet.
type Document interface {
	// Fragments returns the page-level cell grids in page order.
	// A legitimate result may be empty.
	Fragments() ([]models.Fragment, error)
	// RegionText returns the text inside region, best-effort. Formats
	// without page geometry approximate with their leading lines.
	RegionText(region config.Region) (string, error)
	// Close releases any resources held by the document.
	Close() error
}

// Open reads the file at path and returns a Document for its extension.
func Open(path string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	return OpenBytes(content, ext)
}

// OpenBytes returns a Document for content with the given extension.
// ext should include the leading dot (e.g. ".pdf").
func OpenBytes(content []byte, ext string) (Document, error) {
	switch ext {
	case ".pdf":
		return openPDF(content)
	case ".xlsx":
		return openExcel(content)
	case ".docx", ".odt", ".rtf":
		return openRich(content)
	default:
		// Unknown extension: treat as delimited plain text
		return openPlain(content), nil
	}
}

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// splitCells splits a text line into cells: on tabs when the line has
// any, otherwise on runs of two or more spaces.
func splitCells(line string) []models.Cell {
	var parts []string
	if strings.Contains(line, "\t") {
		parts = strings.Split(line, "\t")
	} else {
		parts = multiSpaceRe.Split(strings.TrimSpace(line), -1)
	}
	cells := make([]models.Cell, len(parts))
	for i, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed == "" {
			cells[i] = models.NullCell()
		} else {
			cells[i] = models.NewCell(trimmed)
		}
	}
	return cells
}

// headLines returns the first n lines of text.
func headLines(text string, n int) string {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
