// Package excelize renders batch results as XLSX workbooks.
package excelize

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	docxconv "github.com/yshk0402/docx-converter"
)

// Ensure Exporter implements docxconv.RecordExporter at compile time.
var _ docxconv.RecordExporter = (*Exporter)(nil)

// Exporter writes records to a spreadsheet, highlighting rows whose
// document produced errors and sizing columns to their content.
type Exporter struct {
	settings docxconv.ExcelSettings
}

// NewExporter creates an Exporter with the given settings.
func NewExporter(settings docxconv.ExcelSettings) *Exporter {
	return &Exporter{settings: settings}
}

// Export renders the records as XLSX bytes. Columns follow the given
// order; rows for documents present in errs get the highlight fill.
func (e *Exporter) Export(records []*docxconv.Record, columns []string, errs []docxconv.ProcessingError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := e.settings.SheetName
	if sheet == "" {
		sheet = "データ"
	}
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("drop default sheet: %w", err)
		}
	}

	highlight, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{e.settings.ErrorHighlightColor},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("highlight style: %w", err)
	}

	// Documents with at least one error get their row highlighted.
	flagged := make(map[int]bool, len(errs))
	for _, pe := range errs {
		flagged[pe.DocumentIndex] = true
	}

	widths := make([]float64, len(columns))
	for i, column := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, column); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
		widths[i] = cellWidth(column)
	}

	for row, rec := range records {
		for col, column := range columns {
			value, _ := rec.Get(column)
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
			if w := cellWidth(value); w > widths[col] {
				widths[col] = w
			}
		}

		if id, ok := rec.Get(docxconv.ColumnID); ok && flagged[recordDocumentIndex(id)] {
			start, _ := excelize.CoordinatesToCellName(1, row+2)
			end, _ := excelize.CoordinatesToCellName(len(columns), row+2)
			if err := f.SetCellStyle(sheet, start, end, highlight); err != nil {
				return nil, fmt.Errorf("highlight row %d: %w", row+2, err)
			}
		}
	}

	for i := range columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, name, name, e.clampWidth(widths[i])); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// recordDocumentIndex maps the identifier column value back to the
// zero-based document index used by ProcessingError.
func recordDocumentIndex(id string) int {
	n := 0
	for _, r := range id {
		if r < '0' || r > '9' {
			return -1
		}
		n = n*10 + int(r-'0')
	}
	return n - 1
}

// cellWidth estimates the display width of a value. CJK characters are
// counted double.
func cellWidth(value string) float64 {
	var w float64
	for _, r := range value {
		if utf8.RuneLen(r) > 1 {
			w += 2
		} else {
			w++
		}
	}
	return w + 2
}

func (e *Exporter) clampWidth(w float64) float64 {
	if e.settings.MinColumnWidth > 0 && w < e.settings.MinColumnWidth {
		return e.settings.MinColumnWidth
	}
	if e.settings.MaxColumnWidth > 0 && w > e.settings.MaxColumnWidth {
		return e.settings.MaxColumnWidth
	}
	return w
}
