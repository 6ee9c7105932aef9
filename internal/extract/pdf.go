package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/andresgonzalez1997/pricefeed/internal/config"
	"github.com/andresgonzalez1997/pricefeed/internal/models"
)

// columnGap is the horizontal gap, in page points, that separates two
// cells on a text row. Smaller gaps are word spacing within one cell.
const columnGap = 10.0

// wordGap is the gap above which adjacent words in one cell get a space.
const wordGap = 1.0

type pdfDocument struct {
	reader *pdf.Reader
}

func openPDF(content []byte) (Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}
	return &pdfDocument{reader: r}, nil
}

// Fragments returns one fragment per page with any text rows, cells
// split on column-sized horizontal gaps.
func (d *pdfDocument) Fragments() ([]models.Fragment, error) {
	var frags []models.Fragment
	numPages := d.reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := d.reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("page %d rows: %w", i, err)
		}
		frag := models.Fragment{Page: i}
		for _, row := range rows {
			if cells := cellsFromTexts(row.Content); len(cells) > 0 {
				frag.Rows = append(frag.Rows, cells)
			}
		}
		if len(frag.Rows) > 0 {
			frags = append(frags, frag)
		}
	}
	return frags, nil
}

// cellsFromTexts groups positioned text chunks into cells. Chunks are
// assumed ordered left to right within the row.
func cellsFromTexts(texts []pdf.Text) []models.Cell {
	var cells []models.Cell
	var b strings.Builder
	lastEnd := 0.0
	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			cells = append(cells, models.NewCell(s))
		}
		b.Reset()
	}
	for i, t := range texts {
		if i > 0 {
			gap := t.X - lastEnd
			if gap > columnGap {
				flush()
			} else if gap > wordGap {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
		lastEnd = t.X + t.W
	}
	flush()
	return cells
}

// RegionText returns the text whose chunks fall inside region on the
// region's page. Region coordinates use a top-left origin (tabula
// order); PDF text coordinates use a bottom-left origin, so Y is
// flipped against the page height.
func (d *pdfDocument) RegionText(region config.Region) (string, error) {
	pageNum := region.Page
	if pageNum == 0 {
		pageNum = 1
	}
	if pageNum > d.reader.NumPage() {
		return "", nil
	}
	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return "", nil
	}
	rows, err := page.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("page %d rows: %w", pageNum, err)
	}

	height := pageHeight(page)
	var lines []string
	for _, row := range rows {
		var words []string
		for _, t := range row.Content {
			if region.IsZero() || inRegion(t, region, height) {
				words = append(words, t.S)
			}
		}
		if len(words) > 0 {
			lines = append(lines, strings.Join(words, " "))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (d *pdfDocument) Close() error {
	return nil
}

func inRegion(t pdf.Text, region config.Region, pageHeight float64) bool {
	top := pageHeight - t.Y
	return t.X >= region.Left && t.X <= region.Right &&
		top >= region.Top && top <= region.Bottom
}

// pageHeight reads the MediaBox height, defaulting to US Letter.
func pageHeight(page pdf.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.Len() == 4 {
		if h := box.Index(3).Float64() - box.Index(1).Float64(); h > 0 {
			return h
		}
	}
	return 792
}
