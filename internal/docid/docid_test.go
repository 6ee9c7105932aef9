package docid

import (
	"testing"
)

func TestSheetDocID(t *testing.T) {
	// Deterministic: same path gives same ID
	id1 := SheetDocID("/drop/prices.pdf")
	id2 := SheetDocID("/drop/prices.pdf")
	if id1 != id2 {
		t.Errorf("same path should give same ID: %q vs %q", id1, id2)
	}
	if len(id1) < 10 {
		t.Errorf("ID too short: %q", id1)
	}
	if id1[:len(prefix)] != prefix {
		t.Errorf("ID should have prefix %q: got %q", prefix, id1)
	}
}

func TestSheetDocID_differentPaths(t *testing.T) {
	if SheetDocID("/drop/a.pdf") == SheetDocID("/drop/b.pdf") {
		t.Error("different paths should give different IDs")
	}
}

func TestSheetDocID_normalized(t *testing.T) {
	id1 := SheetDocID("/drop/prices.pdf")
	id2 := SheetDocID("/drop/./prices.pdf")
	id3 := SheetDocID("/drop//prices.pdf")
	if id1 != id2 || id1 != id3 {
		t.Errorf("equivalent paths should normalize to the same ID: %q %q %q", id1, id2, id3)
	}
}
