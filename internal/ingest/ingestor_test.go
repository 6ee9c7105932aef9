package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andresgonzalez1997/pricefeed/internal/config"
	"github.com/andresgonzalez1997/pricefeed/internal/models"
)

type fakeUploader struct {
	table *models.Table
	calls int
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, tbl *models.Table) (int64, error) {
	f.calls++
	f.table = tbl
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(tbl.Rows)), nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	config.ApplyDefaults(cfg)
	return cfg
}

// sheetText is a tab-separated price sheet with a location and date
// banner, a header row, a section marker, and two data rows.
const sheetText = `Statesville, NC
Effective 10/07/24

PRODUCT NUMBER	FORMULA CODE	PRODUCT DESC.	PRODUCT FORM	UNIT WEIGHT	PALLET QUANTITY	STOCKING STATUS	MIN ORDER QUANTITY	DAYS LEAD TIME	FOB OR DLV	CHANGE IN PRICE	LIST PRICE	FULL PALLET PRICE	HALF LOAD FULL PALLET PRICE	FULL LOAD FULL PALLET PRICE	FULL LOAD BEST PRICE
AQUACULTURE	FEEDS
1001	F1	TROUT CHOW	BAG	50 LB	40	ACTIVE	1	2	DLV	0	(12.34)	9.00	8.00	7.00	6.00
1002	F2	CATFISH CHOW	BAG	50 LB	40	ACTIVE	1	2	DLV	0	5.00-	9.00	8.00	7.00	6.00
`

func writeSheet(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIngestFile(t *testing.T) {
	uploader := &fakeUploader{}
	ing := NewIngestor(testConfig(), uploader)
	path := writeSheet(t, "prices.txt", sheetText)

	result, err := ing.IngestFile(context.Background(), path, "")
	if err != nil {
		t.Fatal(err)
	}
	if result.Records != 2 {
		t.Errorf("records = %d, want 2", result.Records)
	}
	if result.EffectiveDate != "2024-10-07" {
		t.Errorf("effective date = %q, want 2024-10-07", result.EffectiveDate)
	}
	if result.PlantLocation != "STATESVILLE" {
		t.Errorf("plant location = %q, want STATESVILLE", result.PlantLocation)
	}
	if !strings.HasPrefix(result.DocID, "sheet:") {
		t.Errorf("doc ID = %q, want sheet: prefix", result.DocID)
	}

	if uploader.table == nil {
		t.Fatal("uploader never received a table")
	}
	schema := uploader.table.Schema()
	priceIdx := schema.Index("list_price")
	if got := uploader.table.Rows[0][priceIdx]; got.Null || got.Number != -12.34 {
		t.Errorf("row 0 list_price = %+v, want -12.34", got)
	}
	if got := uploader.table.Rows[1][priceIdx]; got.Null || got.Number != -5 {
		t.Errorf("row 1 list_price = %+v, want -5", got)
	}
	speciesIdx := schema.Index("species")
	for i := range uploader.table.Rows {
		if got := uploader.table.Rows[i][speciesIdx].Text; got != "AQUACULTURE" {
			t.Errorf("row %d species = %q, want AQUACULTURE", i, got)
		}
	}
}

func TestIngestFile_EmptySheetStillUploads(t *testing.T) {
	uploader := &fakeUploader{}
	ing := NewIngestor(testConfig(), uploader)
	path := writeSheet(t, "empty.txt", "nothing tabular here\n")

	result, err := ing.IngestFile(context.Background(), path, "")
	if err != nil {
		t.Fatal(err)
	}
	if result.Records != 0 {
		t.Errorf("records = %d, want 0", result.Records)
	}
	if uploader.calls != 1 {
		t.Errorf("upload calls = %d, want 1 (empty result still replaces the table)", uploader.calls)
	}
}

func TestIngestFile_UnknownLayout(t *testing.T) {
	ing := NewIngestor(testConfig(), &fakeUploader{})
	path := writeSheet(t, "prices.txt", sheetText)

	if _, err := ing.IngestFile(context.Background(), path, "no_such_layout"); err == nil {
		t.Error("expected error for unknown layout")
	}
}

func TestIngestFile_MissingFile(t *testing.T) {
	ing := NewIngestor(testConfig(), &fakeUploader{})
	if _, err := ing.IngestFile(context.Background(), "/no/such/file.txt", ""); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestIngestFile_UploadFailure(t *testing.T) {
	wantErr := errors.New("warehouse down")
	ing := NewIngestor(testConfig(), &fakeUploader{err: wantErr})
	path := writeSheet(t, "prices.txt", sheetText)

	if _, err := ing.IngestFile(context.Background(), path, ""); !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped %v", err, wantErr)
	}
}

type brokenRegionDoc struct{}

func (brokenRegionDoc) Fragments() ([]models.Fragment, error) { return nil, nil }
func (brokenRegionDoc) RegionText(config.Region) (string, error) {
	return "", errors.New("region read failed")
}
func (brokenRegionDoc) Close() error { return nil }

func TestDocumentMetadata_RegionFailureYieldsNulls(t *testing.T) {
	cfg := testConfig()
	ing := NewIngestor(cfg, &fakeUploader{})
	layout, err := cfg.Layout("")
	if err != nil {
		t.Fatal(err)
	}

	meta := ing.documentMetadata(brokenRegionDoc{}, layout)
	if meta.EffectiveDate != nil {
		t.Errorf("effective date = %v, want nil when the region is unreadable", meta.EffectiveDate)
	}
	if meta.PlantLocation != "" {
		t.Errorf("plant location = %q, want empty when the region is unreadable", meta.PlantLocation)
	}
}

func TestIngestDirectory(t *testing.T) {
	uploader := &fakeUploader{}
	ing := NewIngestor(testConfig(), uploader)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte(sheetText), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "skip.png"), []byte("binary"), 0644); err != nil {
		t.Fatal(err)
	}

	n, err := ing.IngestDirectory(context.Background(), dir, "", []string{".txt"})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("ingested = %d, want 1 (png filtered out)", n)
	}
}

func TestExtensionAllowed(t *testing.T) {
	allowed := []string{".pdf", "xlsx"}
	tests := []struct {
		ext  string
		want bool
	}{
		{".pdf", true},
		{".PDF", true},
		{"pdf", true},
		{".xlsx", true},
		{".png", false},
	}
	for _, tt := range tests {
		if got := ExtensionAllowed(tt.ext, allowed); got != tt.want {
			t.Errorf("ExtensionAllowed(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
	if !ExtensionAllowed(".anything", nil) {
		t.Error("empty allowed list should admit everything")
	}
}
