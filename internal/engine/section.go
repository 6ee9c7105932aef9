package engine

import "github.com/andresgonzalez1997/pricefeed/pkg/utils"

// Sections carries the most recent section marker forward onto data
// rows. One instance lives for one document run; the current value
// starts empty and updates on every marker row.
type Sections struct {
	current string
}

// Observe records a section marker. The text is uppercased with commas
// stripped, matching how banners are printed on the sheets.
func (s *Sections) Observe(marker string) {
	s.current = utils.CleanUpper(marker)
}

// Current returns the active section, or "" before the first marker.
func (s *Sections) Current() string {
	return s.current
}
