package models

import (
	"errors"
	"testing"
)

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		wantErr bool
	}{
		{"valid", Schema{{Name: "a", Kind: KindText}, {Name: "b", Kind: KindNumeric}}, false},
		{"empty", Schema{}, true},
		{"blank name", Schema{{Name: "", Kind: KindText}}, true},
		{"duplicate name", Schema{{Name: "a", Kind: KindText}, {Name: "a", Kind: KindNumeric}}, true},
		{"unknown kind", Schema{{Name: "a", Kind: "integer"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schema.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrSchemaViolation) {
				t.Errorf("error should wrap ErrSchemaViolation, got %v", err)
			}
		})
	}
}

func TestSchema_Index(t *testing.T) {
	s := Schema{{Name: "a", Kind: KindText}, {Name: "b", Kind: KindNumeric}}
	if s.Index("b") != 1 {
		t.Errorf("Index(b) = %d", s.Index("b"))
	}
	if s.Index("missing") != -1 {
		t.Error("missing column should return -1")
	}
}

func TestFragment_Width(t *testing.T) {
	f := Fragment{Rows: [][]Cell{
		{NewCell("a")},
		{NewCell("a"), NewCell("b"), NullCell()},
		{},
	}}
	if f.Width() != 3 {
		t.Errorf("Width() = %d, want 3", f.Width())
	}
	if (Fragment{}).Width() != 0 {
		t.Error("empty fragment width should be 0")
	}
}

func TestCell_IsBlank(t *testing.T) {
	if !NullCell().IsBlank() {
		t.Error("null cell is blank")
	}
	if !NewCell("   ").IsBlank() {
		t.Error("whitespace-only cell is blank")
	}
	if NewCell("x").IsBlank() {
		t.Error("non-empty cell is not blank")
	}
}

func TestValue_String(t *testing.T) {
	if NullValue(KindNumeric).String() != "" {
		t.Error("null renders empty")
	}
	if NumberValue(-12.34).String() != "-12.34" {
		t.Errorf("got %q", NumberValue(-12.34).String())
	}
	if TextValue("BAG").String() != "BAG" {
		t.Errorf("got %q", TextValue("BAG").String())
	}
}
