package engine

import "github.com/andresgonzalez1997/pricefeed/internal/models"

// UsableFragment reports whether a fragment is wide enough to be table
// data. Stray captions and decorative text come back from extraction as
// one- or two-column fragments and must never be concatenated with real
// rows.
func UsableFragment(frag models.Fragment, minColumns int) bool {
	if len(frag.Rows) == 0 {
		return false
	}
	return frag.Width() >= minColumns
}
