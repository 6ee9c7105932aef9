package engine

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/andresgonzalez1997/pricefeed/internal/models"
)

func testMeta() models.DocumentMetadata {
	date := time.Date(2024, 10, 7, 0, 0, 0, 0, time.UTC)
	return models.DocumentMetadata{EffectiveDate: &date, PlantLocation: "STATESVILLE NC"}
}

func TestProjector_ProjectRow(t *testing.T) {
	p := NewProjector(testLayout())

	rec := p.ProjectRow(cells("5555", "  AQUAMAX   FINGERLING ", "(12.34)"), "FISH", testMeta())
	if len(rec) != 7 {
		t.Fatalf("record arity = %d, want 7", len(rec))
	}
	if rec[0].Text != "5555" || rec[0].Kind != models.KindText {
		t.Errorf("product_number = %+v", rec[0])
	}
	if rec[1].Text != "AQUAMAX FINGERLING" {
		t.Errorf("product_desc = %q, want collapsed spaces", rec[1].Text)
	}
	if rec[2].Null || rec[2].Number != -12.34 {
		t.Errorf("list_price = %+v, want -12.34", rec[2])
	}
	if rec[3].Text != "FISH" {
		t.Errorf("species = %+v", rec[3])
	}
	if rec[4].Text != "STATESVILLE NC" {
		t.Errorf("plant_location = %+v", rec[4])
	}
	if rec[5].Text != "2024-10-07" {
		t.Errorf("date_inserted = %+v", rec[5])
	}
	if rec[6].Text != "pdf" {
		t.Errorf("source = %+v", rec[6])
	}
}

func TestProjector_ProjectRow_Nulls(t *testing.T) {
	p := NewProjector(testLayout())

	rec := p.ProjectRow(cells("5555", nil, "abc"), "", models.DocumentMetadata{})
	if !rec[1].Null {
		t.Error("blank text cell should project to null")
	}
	if !rec[2].Null {
		t.Error("unparseable numeric cell should project to null, not error")
	}
	if !rec[3].Null || !rec[4].Null || !rec[5].Null {
		t.Error("absent section and metadata should project to null")
	}
	if rec[6].Text != "pdf" {
		t.Error("source tag is stamped unconditionally")
	}
}

func TestProjector_ProjectTable_Idempotent(t *testing.T) {
	p := NewProjector(testLayout())
	in := models.NewTable(p.Schema())
	in.Append(p.ProjectRow(cells("5555", "AQUAMAX", "12.34"), "FISH", testMeta()))
	in.Append(p.ProjectRow(cells("5556", nil, "abc"), "", models.DocumentMetadata{}))

	out, err := p.ProjectTable(in)
	if err != nil {
		t.Fatalf("ProjectTable() error: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Error("projecting a canonical table should yield an identical table")
	}
}

func TestProjector_ProjectTable_FillReorderDrop(t *testing.T) {
	p := NewProjector(testLayout())

	// Input has a subset of columns, out of order, plus an extraneous one.
	in := &models.Table{
		Columns: []models.Column{
			{Name: "list_price", Kind: models.KindText},
			{Name: "product_number", Kind: models.KindText},
			{Name: "internal_notes", Kind: models.KindText},
		},
	}
	in.Append(models.Record{models.TextValue("(9.99)"), models.TextValue("5555"), models.TextValue("x")})

	out, err := p.ProjectTable(in)
	if err != nil {
		t.Fatalf("ProjectTable() error: %v", err)
	}
	if got := out.Schema().Names(); !reflect.DeepEqual(got, p.Schema().Names()) {
		t.Fatalf("columns = %v", got)
	}
	rec := out.Rows[0]
	if rec[0].Text != "5555" {
		t.Errorf("product_number = %+v, want reordered value", rec[0])
	}
	if !rec[1].Null {
		t.Error("missing canonical column should be all-null")
	}
	if rec[2].Null || rec[2].Number != -9.99 {
		t.Errorf("list_price = %+v, want coerced -9.99", rec[2])
	}
	for _, col := range out.Columns {
		if col.Name == "internal_notes" {
			t.Error("extraneous column should be dropped")
		}
	}
}

func TestProjector_ProjectTable_SchemaViolation(t *testing.T) {
	p := NewProjector(testLayout())

	// Every present value in a numeric column fails coercion: the schema
	// disagrees with the data, which is fatal.
	in := &models.Table{Columns: []models.Column{{Name: "list_price", Kind: models.KindText}}}
	in.Append(models.Record{models.TextValue("NET")})
	in.Append(models.Record{models.TextValue("GROSS")})

	if _, err := p.ProjectTable(in); !errors.Is(err, models.ErrSchemaViolation) {
		t.Errorf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestProjector_ProjectTable_MixedParses(t *testing.T) {
	p := NewProjector(testLayout())

	// One bad cell among good ones is a per-cell null, not fatal.
	in := &models.Table{Columns: []models.Column{{Name: "list_price", Kind: models.KindText}}}
	in.Append(models.Record{models.TextValue("12.34")})
	in.Append(models.Record{models.TextValue("n/a")})

	out, err := p.ProjectTable(in)
	if err != nil {
		t.Fatalf("ProjectTable() error: %v", err)
	}
	priceIdx := out.Schema().Index("list_price")
	if out.Rows[0][priceIdx].Number != 12.34 {
		t.Errorf("row 0 price = %+v", out.Rows[0][priceIdx])
	}
	if !out.Rows[1][priceIdx].Null {
		t.Errorf("row 1 price should be null, got %+v", out.Rows[1][priceIdx])
	}
}
