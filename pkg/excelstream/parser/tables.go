package parser

import (
	"fmt"

	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/models"
	"github.com/xuri/excelize/v2"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	DensityMin       float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 3,
	}
}

// Bounds is the bounding box of the populated cells of a sheet (1-based, inclusive).
type Bounds struct {
	MinRow, MaxRow int
	MinCol, MaxCol int
}

// Range returns the bounds in Excel range notation, e.g. "A1:D10".
func (b Bounds) Range() string {
	startCell, _ := excelize.CoordinatesToCellName(b.MinCol, b.MinRow)
	endCell, _ := excelize.CoordinatesToCellName(b.MaxCol, b.MaxRow)
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// DetectTable returns the bounding box of a sheet's data if it looks like
// a table, i.e. has enough populated cells at a high enough density.
func DetectTable(sheet models.SheetData, params TableDetectionParams) (Bounds, bool) {
	b, ok := findDataBounds(sheet.Rows)
	if !ok {
		return Bounds{}, false
	}

	nonEmptyCells := countNonEmptyCells(sheet.Rows)
	if nonEmptyCells < params.MinNonemptyCells {
		return Bounds{}, false
	}

	totalCells := (b.MaxRow - b.MinRow + 1) * (b.MaxCol - b.MinCol + 1)
	density := float64(nonEmptyCells) / float64(totalCells)
	if density < params.DensityMin {
		return Bounds{}, false
	}

	return b, true
}

// DetectHeaderRow guesses the header row of a sheet: the first row of its
// table region holding as many cells as its widest row, so that title rows
// above a table are passed over. It returns 0 when the sheet has no table.
func DetectHeaderRow(sheet models.SheetData, params TableDetectionParams) int {
	if _, ok := DetectTable(sheet, params); !ok {
		return 0
	}

	widest := 0
	for _, row := range sheet.Rows {
		if len(row.Cells) > widest {
			widest = len(row.Cells)
		}
	}
	for _, row := range sheet.Rows {
		if len(row.Cells) == widest {
			return row.R
		}
	}
	return 0
}

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows []models.CellRow) (Bounds, bool) {
	b := Bounds{MinRow: -1, MaxRow: -1, MinCol: -1, MaxCol: -1}

	for _, row := range rows {
		for _, cell := range row.Cells {
			if b.MinRow < 0 || row.R < b.MinRow {
				b.MinRow = row.R
			}
			if b.MaxRow < 0 || row.R > b.MaxRow {
				b.MaxRow = row.R
			}
			if b.MinCol < 0 || cell.Col < b.MinCol {
				b.MinCol = cell.Col
			}
			if b.MaxCol < 0 || cell.Col > b.MaxCol {
				b.MaxCol = cell.Col
			}
		}
	}

	return b, b.MinRow > 0
}

// countNonEmptyCells counts populated cells. Extracted rows only hold
// populated cells, so every cell lies within the bounds.
func countNonEmptyCells(rows []models.CellRow) int {
	count := 0
	for _, row := range rows {
		count += len(row.Cells)
	}
	return count
}
