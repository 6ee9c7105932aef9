// Package models defines core data structures for fragments, schemas, and price tables.
package models

import "strings"

// Cell is one raw extracted value. Valid is false for a blank cell,
// which keeps "nothing extracted" distinct from a zero-length string.
type Cell struct {
	Text  string
	Valid bool
}

// NewCell returns a valid cell holding text.
func NewCell(text string) Cell {
	return Cell{Text: text, Valid: true}
}

// NullCell returns a blank cell.
func NullCell() Cell {
	return Cell{}
}

// IsBlank reports whether the cell is null or holds only whitespace.
func (c Cell) IsBlank() bool {
	return !c.Valid || strings.TrimSpace(c.Text) == ""
}
