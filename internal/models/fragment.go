package models

// Fragment is one page-level grid of cells as produced by extraction.
// Rows may be ragged; the engine aligns them to the schema arity later.
// Fragments are consumed exactly once and never mutated in place.
type Fragment struct {
	Page int
	Rows [][]Cell
}

// Width returns the widest row length in the fragment.
func (f Fragment) Width() int {
	width := 0
	for _, row := range f.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}
