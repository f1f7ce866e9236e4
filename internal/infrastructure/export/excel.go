// Package export renders report sheets into xlsx workbooks.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	reportapp "github.com/propmanager/backend/internal/application/report"
	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the MIME type of an xlsx workbook
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	defaultSheet = "Sheet1"
	minColWidth  = 10.0
	maxColWidth  = 60.0
)

// ExcelRenderer implements reportapp.WorkbookRenderer with excelize
type ExcelRenderer struct{}

// NewExcelRenderer creates a new ExcelRenderer
func NewExcelRenderer() *ExcelRenderer {
	return &ExcelRenderer{}
}

var _ reportapp.WorkbookRenderer = (*ExcelRenderer)(nil)

// ContentType returns the xlsx MIME type
func (r *ExcelRenderer) ContentType() string { return XLSXContentType }

// Extension returns "xlsx"
func (r *ExcelRenderer) Extension() string { return "xlsx" }

// Render writes each sheet with a bold frozen header row
func (r *ExcelRenderer) Render(sheets ...reportapp.Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, errors.New("at least one sheet is required")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sheet := range sheets {
		if err := writeSheet(f, sheet, headerStyle); err != nil {
			return nil, err
		}
		if i == 0 {
			idx, err := f.GetSheetIndex(sheet.Name)
			if err != nil {
				return nil, fmt.Errorf("failed to look up sheet %q: %w", sheet.Name, err)
			}
			f.SetActiveSheet(idx)
		}
	}

	if !hasSheet(sheets, defaultSheet) {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet reportapp.Sheet, headerStyle int) error {
	if sheet.Name == "" {
		return errors.New("sheet name is required")
	}
	if sheet.Name != defaultSheet {
		if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", sheet.Name, err)
		}
	}

	widths := make([]int, len(sheet.Headers))
	header := make([]any, len(sheet.Headers))
	for i, h := range sheet.Headers {
		header[i] = h
		widths[i] = utf8.RuneCountInString(h)
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := append([]any(nil), row...)
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
		for col, v := range row {
			if col < len(widths) {
				if n := utf8.RuneCountInString(fmt.Sprint(v)); n > widths[col] {
					widths[col] = n
				}
			}
		}
	}

	if len(sheet.Headers) == 0 {
		return nil
	}

	last, err := excelize.CoordinatesToCellName(len(sheet.Headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := float64(w) + 2
		if width < minColWidth {
			width = minColWidth
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := f.SetColWidth(sheet.Name, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	return f.SetPanes(sheet.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func hasSheet(sheets []reportapp.Sheet, name string) bool {
	for _, s := range sheets {
		if s.Name == name {
			return true
		}
	}
	return false
}
