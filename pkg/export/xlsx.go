package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet is one named worksheet in a workbook export.
type Sheet struct {
	Name  string
	Table *Table
}

// XLSX renders the sheets as a workbook, headers bold and centered.
func XLSX(sheets []Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	for i, sheet := range sheets {
		name := sheet.Name
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, err
			}
		}

		for col, h := range sheet.Table.Headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(name, cell, h); err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
				return nil, err
			}
		}

		for r, row := range sheet.Table.Rows {
			for col, v := range row {
				cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
				if err := f.SetCellValue(name, cell, v); err != nil {
					return nil, err
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
