package engine

import (
	"regexp"
	"strings"

	"github.com/andresgonzalez1997/pricefeed/internal/config"
	"github.com/andresgonzalez1997/pricefeed/internal/models"
	"github.com/andresgonzalez1997/pricefeed/pkg/utils"
)

// Label classifies one aligned row.
type Label int

const (
	// LabelData is a real product row.
	LabelData Label = iota
	// LabelHeader is a column-header row re-emitted on every page.
	LabelHeader
	// LabelPlaceholder is a single-value noise row (e.g. a currency banner).
	LabelPlaceholder
	// LabelSection is a category banner applying to subsequent data rows.
	LabelSection
)

// String returns the label name for logging.
func (l Label) String() string {
	switch l {
	case LabelHeader:
		return "header"
	case LabelPlaceholder:
		return "placeholder"
	case LabelSection:
		return "section_marker"
	default:
		return "data"
	}
}

// Classifier labels aligned rows. Labels are a pure function of row
// content and the layout configuration, never of row position.
type Classifier struct {
	tokens []string
	idRe   *regexp.Regexp
}

// NewClassifier builds a classifier from the layout's header tokens and
// identifier pattern.
func NewClassifier(layout *config.Layout) *Classifier {
	tokens := make([]string, 0, len(layout.HeaderTokens))
	for _, tok := range layout.HeaderTokens {
		if t := utils.CleanUpper(tok); t != "" {
			tokens = append(tokens, t)
		}
	}
	return &Classifier{tokens: tokens, idRe: layout.IDRegexp()}
}

// Classify labels one aligned row. The checks run in fixed precedence:
// header, placeholder, section marker, data.
func (c *Classifier) Classify(row []models.Cell) Label {
	if c.isHeader(row) {
		return LabelHeader
	}
	if isPlaceholder(row) {
		return LabelPlaceholder
	}
	if c.isSection(row) {
		return LabelSection
	}
	return LabelData
}

// isHeader reports whether either of the first two cells matches a
// configured header token. Paginated extraction re-emits the header on
// every page, not just the first.
func (c *Classifier) isHeader(row []models.Cell) bool {
	for i := 0; i < 2 && i < len(row); i++ {
		if row[i].IsBlank() {
			continue
		}
		text := utils.CleanUpper(row[i].Text)
		for _, tok := range c.tokens {
			if strings.Contains(text, tok) {
				return true
			}
		}
	}
	return false
}

// isPlaceholder reports whether exactly one cell is non-blank. Such rows
// carry no record data and would only be padded into junk values.
func isPlaceholder(row []models.Cell) bool {
	filled := 0
	for _, cell := range row {
		if !cell.IsBlank() {
			filled++
		}
	}
	return filled == 1 && len(row) > 1
}

// isSection reports whether the leading cell is present but does not
// look like a product identifier. Some layouts interleave category
// banners directly in the data stream with no dedicated column.
func (c *Classifier) isSection(row []models.Cell) bool {
	if len(row) == 0 || row[0].IsBlank() {
		return false
	}
	return !c.idRe.MatchString(strings.TrimSpace(row[0].Text))
}
