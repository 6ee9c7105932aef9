package engine

import (
	"strconv"
	"strings"
)

// ParseNumeric converts a raw numeric-looking cell to a signed float.
// Thousands separators are stripped, and both negative conventions used
// across source layout generations are honored: parenthesized "(1234.56)"
// and trailing-hyphen "1234.56-". Returns false when no interpretation
// parses; the caller treats that as a null cell, never a failure.
func ParseNumeric(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return 0, false
	}

	negative := false
	switch {
	case strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && len(s) > 2:
		s = strings.TrimSpace(s[1 : len(s)-1])
		negative = true
	case strings.HasSuffix(s, "-") && len(s) > 1:
		s = strings.TrimSpace(s[:len(s)-1])
		negative = true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		f = -f
	}
	return f, true
}
