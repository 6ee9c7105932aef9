package extract

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lu4p/cat"

	"github.com/andresgonzalez1997/pricefeed/internal/config"
	"github.com/andresgonzalez1997/pricefeed/internal/models"
)

// textDocument serves plain text and any rich format already reduced
// to text. The whole body is one page-1 fragment.
type textDocument struct {
	text string
}

func openPlain(content []byte) Document {
	text := string(content)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	return &textDocument{text: text}
}

// openRich converts docx, odt and rtf bodies to plain text.
func openRich(content []byte) (Document, error) {
	text, err := cat.FromBytes(content)
	if err != nil {
		return nil, fmt.Errorf("convert document: %w", err)
	}
	return &textDocument{text: text}, nil
}

func (d *textDocument) Fragments() ([]models.Fragment, error) {
	frag := models.Fragment{Page: 1}
	for _, line := range strings.Split(d.text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		frag.Rows = append(frag.Rows, splitCells(line))
	}
	if len(frag.Rows) == 0 {
		return nil, nil
	}
	return []models.Fragment{frag}, nil
}

// RegionText approximates the region with the document's leading lines.
func (d *textDocument) RegionText(region config.Region) (string, error) {
	return headLines(d.text, regionHeadRows), nil
}

func (d *textDocument) Close() error {
	return nil
}
