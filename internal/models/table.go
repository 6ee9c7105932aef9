package models

import "strconv"

// Value is one typed output cell. Kind is always set; Null marks an
// absent or unparseable value.
type Value struct {
	Kind   Kind
	Text   string
	Number float64
	Null   bool
}

// TextValue returns a non-null text value.
func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

// NumberValue returns a non-null numeric value.
func NumberValue(f float64) Value {
	return Value{Kind: KindNumeric, Number: f}
}

// NullValue returns a null value of the given kind.
func NullValue(kind Kind) Value {
	return Value{Kind: kind, Null: true}
}

// String renders the value for serialization: "" for null, the text, or
// the shortest float representation.
func (v Value) String() string {
	if v.Null {
		return ""
	}
	if v.Kind == KindNumeric {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}

// Record is one normalized output row, immutable once produced.
type Record []Value

// Table is the final schema-shaped output of one document. A zero-row
// table with the canonical columns is the valid "found nothing" result.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Record `json:"rows"`
}

// NewTable returns an empty table shaped by schema.
func NewTable(schema Schema) *Table {
	return &Table{Columns: append([]Column(nil), schema...)}
}

// Append adds a record to the table.
func (t *Table) Append(rec Record) {
	t.Rows = append(t.Rows, rec)
}

// Schema returns the table's column list as a Schema.
func (t *Table) Schema() Schema {
	return Schema(t.Columns)
}
