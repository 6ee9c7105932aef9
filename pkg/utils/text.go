package utils

import "strings"

// CollapseSpaces trims s and collapses runs of whitespace to single spaces.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanUpper uppercases s, strips commas, and collapses whitespace.
// Section markers and plant locations appear in mixed case with stray
// punctuation on the source documents.
func CleanUpper(s string) string {
	return CollapseSpaces(strings.ToUpper(strings.ReplaceAll(s, ",", "")))
}

// FirstNonEmptyLine returns the first line of s that contains any
// non-whitespace text, trimmed. Returns "" when there is none.
func FirstNonEmptyLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Truncate returns s truncated to maxLen characters, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
