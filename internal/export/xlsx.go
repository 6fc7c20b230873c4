package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes a table as a single-sheet workbook at path. The header
// row is bold with an autofilter so the file is usable as-is.
func WriteXLSX(path, sheet string, table Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for col, h := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("resolving header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("writing header %q: %w", h, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	lastCol, err := excelize.CoordinatesToCellName(len(table.Headers), 1)
	if err != nil {
		return fmt.Errorf("resolving header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol, headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	if err := f.AutoFilter(sheet, "A1:"+lastCol, nil); err != nil {
		return fmt.Errorf("setting autofilter: %w", err)
	}

	for r, row := range table.Rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("resolving cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("writing row %d: %w", r+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
