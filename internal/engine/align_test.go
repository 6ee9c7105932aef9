package engine

import (
	"testing"

	"github.com/andresgonzalez1997/pricefeed/internal/models"
)

// cells builds a row; nil entries become null cells.
func cells(vals ...interface{}) []models.Cell {
	row := make([]models.Cell, len(vals))
	for i, v := range vals {
		if v == nil {
			row[i] = models.NullCell()
		} else {
			row[i] = models.NewCell(v.(string))
		}
	}
	return row
}

func TestAlignRow_Pad(t *testing.T) {
	aligned := AlignRow(cells("a", "b"), 4)
	if len(aligned) != 4 {
		t.Fatalf("len = %d", len(aligned))
	}
	if aligned[0].Text != "a" || aligned[1].Text != "b" {
		t.Error("leading cells should be preserved")
	}
	if aligned[2].Valid || aligned[3].Valid {
		t.Error("padding cells should be null")
	}
}

func TestAlignRow_MergeOverflow(t *testing.T) {
	aligned := AlignRow(cells("a", "b", "c", "d", "e"), 3)
	if len(aligned) != 3 {
		t.Fatalf("len = %d", len(aligned))
	}
	if aligned[2].Text != "c d e" {
		t.Errorf("last cell = %q, want merged overflow", aligned[2].Text)
	}
}

func TestAlignRow_MergeSkipsNulls(t *testing.T) {
	aligned := AlignRow(cells("a", nil, "c", nil, "e"), 2)
	if aligned[1].Text != "c e" {
		t.Errorf("last cell = %q, want %q", aligned[1].Text, "c e")
	}

	aligned = AlignRow(cells("a", nil, nil), 2)
	if aligned[1].Valid {
		t.Error("all-null overflow should leave a null last cell")
	}
}

func TestAlignRow_Exact(t *testing.T) {
	in := cells("a", "b")
	aligned := AlignRow(in, 2)
	if aligned[0].Text != "a" || aligned[1].Text != "b" {
		t.Error("exact-arity row should be unchanged")
	}
	// Input must not be aliased: alignment never mutates its input.
	aligned[0] = models.NullCell()
	if !in[0].Valid {
		t.Error("input row was mutated")
	}
}

func TestUsableFragment(t *testing.T) {
	frag := models.Fragment{Rows: [][]models.Cell{cells("a", "b", "c")}}
	if !UsableFragment(frag, 3) {
		t.Error("3-wide fragment with min 3 should be usable")
	}
	if UsableFragment(frag, 4) {
		t.Error("3-wide fragment with min 4 should be rejected")
	}
	if UsableFragment(models.Fragment{}, 1) {
		t.Error("empty fragment should be rejected")
	}
}
