package engine

import (
	"strings"

	"github.com/andresgonzalez1997/pricefeed/internal/models"
)

// AlignRow returns a copy of row with exactly arity cells. Short rows are
// padded with trailing nulls. Excess trailing cells are joined into the
// last column with single spaces: overflow is assumed to belong to the
// last (free-text) column, so content is preserved rather than truncated.
func AlignRow(row []models.Cell, arity int) []models.Cell {
	aligned := make([]models.Cell, arity)
	for i := 0; i < arity && i < len(row); i++ {
		aligned[i] = row[i]
	}
	if len(row) <= arity {
		return aligned
	}

	parts := make([]string, 0, len(row)-arity+1)
	if last := aligned[arity-1]; !last.IsBlank() {
		parts = append(parts, strings.TrimSpace(last.Text))
	}
	for _, cell := range row[arity:] {
		if !cell.IsBlank() {
			parts = append(parts, strings.TrimSpace(cell.Text))
		}
	}
	if len(parts) == 0 {
		aligned[arity-1] = models.NullCell()
	} else {
		aligned[arity-1] = models.NewCell(strings.Join(parts, " "))
	}
	return aligned
}
