// Package parser reads workbooks into the ordered sheet and row model the
// reader validates and projects.
package parser

import (
	"io"

	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/models"
	"github.com/xuri/excelize/v2"
)

// Open parses a workbook from r. The whole stream is consumed.
func Open(r io.Reader) (*excelize.File, error) {
	return excelize.OpenReader(r)
}

// ReadWorkbook extracts every sheet of f in workbook order.
func ReadWorkbook(f *excelize.File, includeFormulas bool) (*models.WorkbookData, error) {
	sheetList := f.GetSheetList()
	wb := &models.WorkbookData{
		Sheets: make([]models.SheetData, 0, len(sheetList)),
	}

	for _, sheetName := range sheetList {
		rows, err := ExtractRows(f, sheetName, includeFormulas)
		if err != nil {
			return nil, err
		}
		wb.Sheets = append(wb.Sheets, models.SheetData{
			Name: sheetName,
			Rows: rows,
		})
	}

	return wb, nil
}
