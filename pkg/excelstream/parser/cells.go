package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/models"
	"github.com/xuri/excelize/v2"
)

// ExtractRows extracts the non-empty rows of a sheet.
// Values are read raw, without number formats applied. For formula cells
// the cached result is returned; the formula text is only recorded when
// includeFormulas is set.
func ExtractRows(f *excelize.File, sheetName string, includeFormulas bool) ([]models.CellRow, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	var result []models.CellRow
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		var cells []models.Cell

		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			cell := models.Cell{
				Col:   colIdx + 1,
				Value: cellValue,
			}

			if includeFormulas {
				cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowNum)
				formula, err := f.GetCellFormula(sheetName, cellName)
				if err == nil && formula != "" {
					cell.Formula = formula
				}
			}
			cells = append(cells, cell)
		}

		if len(cells) > 0 {
			result = append(result, models.CellRow{
				R:     rowNum,
				Cells: cells,
			})
		}
	}

	return result, nil
}

// HeaderText returns the header text of a cell. Whitespace-only cells
// count as empty.
func HeaderText(c models.Cell) string {
	if strings.TrimSpace(c.Value) == "" {
		return ""
	}
	return c.Value
}

// ResolveValue returns the record value of a cell: the literal value for
// plain cells and the cached result for formula cells, coerced by
// ParseValue. It returns nil for cells without a value.
func ResolveValue(c models.Cell) interface{} {
	if c.Value == "" {
		return nil
	}
	return ParseValue(c.Value)
}

// decimalPattern matches plain decimal notation with an optional exponent.
// strconv.ParseFloat also accepts "inf", "nan" and hex floats, which are
// words or codes in a sheet, not numbers.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for finite decimals, or the original string.
func ParseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if !decimalPattern.MatchString(s) {
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}
