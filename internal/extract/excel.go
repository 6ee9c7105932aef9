package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/andresgonzalez1997/pricefeed/internal/config"
	"github.com/andresgonzalez1997/pricefeed/internal/models"
)

// regionHeadRows approximates a first-page header region for formats
// without page geometry.
const regionHeadRows = 10

type excelDocument struct {
	file *excelize.File
}

func openExcel(content []byte) (Document, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &excelDocument{file: f}, nil
}

// Fragments returns one fragment per sheet in workbook order. Sheets
// stand in for pages. Rows come back ragged exactly as excelize reports
// them; all-blank rows are dropped.
func (d *excelDocument) Fragments() ([]models.Fragment, error) {
	var frags []models.Fragment
	for i, sheet := range d.file.GetSheetList() {
		rows, err := d.file.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("sheet %q rows: %w", sheet, err)
		}
		frag := models.Fragment{Page: i + 1}
		for _, raw := range rows {
			cells := make([]models.Cell, len(raw))
			blank := true
			for j, v := range raw {
				if trimmed := strings.TrimSpace(v); trimmed == "" {
					cells[j] = models.NullCell()
				} else {
					cells[j] = models.NewCell(trimmed)
					blank = false
				}
			}
			if !blank {
				frag.Rows = append(frag.Rows, cells)
			}
		}
		if len(frag.Rows) > 0 {
			frags = append(frags, frag)
		}
	}
	return frags, nil
}

// RegionText has no point geometry to honor here, so it approximates
// the region with the leading rows of the first sheet.
func (d *excelDocument) RegionText(region config.Region) (string, error) {
	sheets := d.file.GetSheetList()
	if len(sheets) == 0 {
		return "", nil
	}
	rows, err := d.file.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("sheet %q rows: %w", sheets[0], err)
	}
	if len(rows) > regionHeadRows {
		rows = rows[:regionHeadRows]
	}
	var lines []string
	for _, raw := range rows {
		if line := strings.TrimSpace(strings.Join(raw, " ")); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (d *excelDocument) Close() error {
	return d.file.Close()
}
