package models

import (
	"errors"
	"fmt"
)

// Kind is the value kind of a schema column.
type Kind string

const (
	// KindText columns hold free text.
	KindText Kind = "text"
	// KindNumeric columns hold signed floating-point values.
	KindNumeric Kind = "numeric"
)

// ErrSchemaViolation marks a canonical schema that is inconsistent in
// itself. Unlike per-cell anomalies, this is fatal and surfaced to the
// caller: it means the configuration is wrong, not the data.
var ErrSchemaViolation = errors.New("schema violation")

// Column is one canonical output column.
type Column struct {
	Name string `yaml:"name" json:"name"`
	Kind Kind   `yaml:"kind" json:"kind"`
}

// Schema is the ordered canonical column list. Every output record has
// exactly these columns, in this order.
type Schema []Column

// Arity returns the number of columns.
func (s Schema) Arity() int {
	return len(s)
}

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, col := range s {
		names[i] = col.Name
	}
	return names
}

// Index returns the position of the named column, or -1.
func (s Schema) Index(name string) int {
	for i, col := range s {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Validate checks the schema for internal consistency: non-empty, unique
// non-blank names, known kinds. Failures wrap ErrSchemaViolation.
func (s Schema) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: schema has no columns", ErrSchemaViolation)
	}
	seen := make(map[string]bool, len(s))
	for i, col := range s {
		if col.Name == "" {
			return fmt.Errorf("%w: column %d has no name", ErrSchemaViolation, i)
		}
		if seen[col.Name] {
			return fmt.Errorf("%w: duplicate column %q", ErrSchemaViolation, col.Name)
		}
		seen[col.Name] = true
		if col.Kind != KindText && col.Kind != KindNumeric {
			return fmt.Errorf("%w: column %q has unknown kind %q", ErrSchemaViolation, col.Name, col.Kind)
		}
	}
	return nil
}
