package utils

import (
	"testing"
)

func TestCollapseSpaces(t *testing.T) {
	if CollapseSpaces("  a  b  ") != "a b" {
		t.Error("expected trimmed and collapsed spaces")
	}
	if CollapseSpaces("\tx\n y ") != "x y" {
		t.Errorf("got %q", CollapseSpaces("\tx\n y "))
	}
}

func TestCleanUpper(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Statesville, NC", "STATESVILLE NC"},
		{"  aquaculture ", "AQUACULTURE"},
		{"FISH", "FISH"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanUpper(tt.in); got != tt.want {
			t.Errorf("CleanUpper(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFirstNonEmptyLine(t *testing.T) {
	if got := FirstNonEmptyLine("\n  \n Statesville, NC\nmore"); got != "Statesville, NC" {
		t.Errorf("got %q", got)
	}
	if FirstNonEmptyLine("  \n\t\n") != "" {
		t.Error("all-blank input should return empty string")
	}
}

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" {
		t.Error("short string unchanged")
	}
	if Truncate("hello world", 5) != "hello..." {
		t.Errorf("got %s", Truncate("hello world", 5))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
}
