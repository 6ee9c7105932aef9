// Package cli provides output utilities for the pricefeed command.
package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/andresgonzalez1997/pricefeed/internal/models"
	"github.com/andresgonzalez1997/pricefeed/pkg/utils"
)

// TableOutputFormat is the format for table output.
type TableOutputFormat string

const (
	// OutputText is human-readable aligned text (default).
	OutputText TableOutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON TableOutputFormat = "json"
	// OutputCSV is comma-separated values with a header row.
	OutputCSV TableOutputFormat = "csv"
)

// maxTextCell keeps aligned text output readable when product names run long.
const maxTextCell = 28

// WriteTable writes a reconciled table to w in the given format.
// Null values render as empty fields in every format.
func WriteTable(w io.Writer, table *models.Table, format TableOutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(table)
	case OutputCSV:
		return writeTableCSV(w, table)
	default:
		writeTableText(w, table)
		return nil
	}
}

func writeTableCSV(w io.Writer, table *models.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Schema().Names()); err != nil {
		return err
	}
	record := make([]string, len(table.Columns))
	for _, row := range table.Rows {
		for i, v := range row {
			record[i] = v.String()
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeTableText(w io.Writer, table *models.Table) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, col := range table.Columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, col.Name)
	}
	fmt.Fprintln(tw)
	for _, row := range table.Rows {
		for i, v := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, utils.Truncate(v.String(), maxTextCell))
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "\n%d rows\n", len(table.Rows))
}

// PrintTable prints a table to stdout in text format.
func PrintTable(table *models.Table) {
	_ = WriteTable(os.Stdout, table, OutputText)
}
