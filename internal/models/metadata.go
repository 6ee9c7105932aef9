package models

import "time"

// DocumentMetadata holds the per-document fields read from the first
// page. Both are best-effort: a nil date or empty location means
// extraction found nothing, and records carry nulls for them.
type DocumentMetadata struct {
	EffectiveDate *time.Time `json:"effective_date,omitempty"`
	PlantLocation string     `json:"plant_location,omitempty"`
}

// DateString returns the effective date as YYYY-MM-DD, or "" when absent.
func (m DocumentMetadata) DateString() string {
	if m.EffectiveDate == nil {
		return ""
	}
	return m.EffectiveDate.Format("2006-01-02")
}
