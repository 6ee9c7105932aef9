// Package metadata extracts the per-document effective date and plant
// location from bounded header regions of the first page.
package metadata

import (
	"regexp"
	"strings"
	"time"

	"github.com/andresgonzalez1997/pricefeed/internal/config"
	"github.com/andresgonzalez1997/pricefeed/internal/models"
	"github.com/andresgonzalez1997/pricefeed/pkg/utils"
)

// Four-digit years must come first in the alternation: regexp picks the
// leftmost alternative, so \d{2} first would truncate "2024" to "20".
var dateRe = regexp.MustCompile(`\d{1,2}/\d{1,2}/(\d{4}|\d{2})`)

// Extract returns best-effort metadata from the two region texts. Any
// failure (empty region, no match, unparseable date) yields a nil date
// or empty location; extraction never blocks record production.
func Extract(dateText, locationText string, layout *config.Layout) models.DocumentMetadata {
	return models.DocumentMetadata{
		EffectiveDate: EffectiveDate(dateText),
		PlantLocation: PlantLocation(locationText, layout.KnownLocations),
	}
}

// EffectiveDate finds the first m/d/yyyy or m/d/yy date in text. The
// four-digit format is tried first, then the two-digit one; nil when
// neither parses.
func EffectiveDate(text string) *time.Time {
	match := dateRe.FindString(text)
	if match == "" {
		return nil
	}
	for _, format := range []string{"1/2/2006", "1/2/06"} {
		if t, err := time.Parse(format, match); err == nil {
			return &t
		}
	}
	return nil
}

// PlantLocation returns a known facility name when one appears anywhere
// in text (case-insensitive), else the first non-empty line uppercased
// with commas stripped. Returns "" for an empty region.
func PlantLocation(text string, knownLocations []string) string {
	upper := strings.ToUpper(text)
	for _, known := range knownLocations {
		if known != "" && strings.Contains(upper, strings.ToUpper(known)) {
			return known
		}
	}
	return utils.CleanUpper(utils.FirstNonEmptyLine(text))
}
