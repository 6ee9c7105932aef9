package engine

import (
	"regexp"
	"strings"

	"github.com/andresgonzalez1997/pricefeed/internal/config"
	"github.com/andresgonzalez1997/pricefeed/internal/models"
)

// weightBackfill recovers a missing unit weight from the product
// description. Some sheets print the weight only inside the description
// text (e.g. "AQUAMAX FINGERLING 300 50 LB"), leaving the weight column
// with a bare count or blank.
type weightBackfill struct {
	weightIdx int
	descIdx   int
	hint      string
	re        *regexp.Regexp
}

// newWeightBackfill returns nil when the layout does not configure
// weight backfill or names columns the schema does not have.
func newWeightBackfill(layout *config.Layout) *weightBackfill {
	re := layout.WeightRegexp()
	if re == nil || layout.WeightColumn == "" || layout.DescColumn == "" {
		return nil
	}
	wIdx := layout.Columns.Index(layout.WeightColumn)
	dIdx := layout.Columns.Index(layout.DescColumn)
	if wIdx < 0 || dIdx < 0 {
		return nil
	}
	return &weightBackfill{
		weightIdx: wIdx,
		descIdx:   dIdx,
		hint:      strings.ToUpper(layout.WeightHint),
		re:        re,
	}
}

// apply returns the row with the weight cell backfilled when it lacks
// the configured hint and the description yields a match. The input row
// is not mutated.
func (b *weightBackfill) apply(row []models.Cell) []models.Cell {
	weight := row[b.weightIdx]
	if !weight.IsBlank() && (b.hint == "" || strings.Contains(strings.ToUpper(weight.Text), b.hint)) {
		return row
	}
	desc := row[b.descIdx]
	if desc.IsBlank() {
		return row
	}
	match := b.re.FindString(strings.ToUpper(desc.Text))
	if match == "" {
		return row
	}
	out := append([]models.Cell(nil), row...)
	out[b.weightIdx] = models.NewCell(strings.TrimSpace(match))
	return out
}
