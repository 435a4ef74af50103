package excelstream

import (
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/models"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/parser"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/schema"
)

// sheetPlan is a workbook sheet matched to its schema, with the header
// row resolved to header schemas by column.
type sheetPlan struct {
	schema  schema.SheetSchema
	data    models.SheetData
	headers map[int]schema.HeaderSchema
}

func (p sheetPlan) headerRow() int {
	return p.schema.Rows.HeaderRowIndex()
}

// planSheets validates every sheet of wb against cfg, in workbook order,
// and stops at the first violation. The sheet count is checked first.
func planSheets(cfg schema.Config, wb *models.WorkbookData) ([]sheetPlan, error) {
	if cfg.TotalSheets != nil && len(wb.Sheets) != *cfg.TotalSheets {
		return nil, &SheetCountError{Expected: *cfg.TotalSheets, Actual: len(wb.Sheets)}
	}

	allowed := cfg.AllowedSheetNames()
	plans := make([]sheetPlan, 0, len(wb.Sheets))

	for _, sheet := range wb.Sheets {
		if len(allowed) > 0 && !contains(allowed, sheet.Name) {
			return nil, &SheetNameNotAllowedError{Sheet: sheet.Name, Allowed: allowed}
		}

		s, ok := cfg.FindSheet(sheet.Name)
		if !ok {
			return nil, &SchemaNotFoundError{Sheet: sheet.Name}
		}

		headers, err := resolveHeaders(s, sheet)
		if err != nil {
			return nil, err
		}

		plans = append(plans, sheetPlan{
			schema:  s,
			data:    sheet,
			headers: headers,
		})
	}

	return plans, nil
}

// resolveHeaders maps each populated header-row column to its header
// schema. Header texts missing from allowedHeaders fail the sheet; allowed
// headers missing from the sheet are fine.
func resolveHeaders(s schema.SheetSchema, sheet models.SheetData) (map[int]schema.HeaderSchema, error) {
	headerRow := s.Rows.HeaderRowIndex()
	headers := make(map[int]schema.HeaderSchema)

	row, ok := sheet.Row(headerRow)
	if !ok {
		return headers, nil
	}

	var unknown []string
	for _, c := range row.Cells {
		text := parser.HeaderText(c)
		if text == "" {
			continue
		}
		h, ok := s.Rows.FindHeader(text)
		if !ok {
			unknown = append(unknown, text)
			continue
		}
		headers[c.Col] = h
	}

	if len(unknown) > 0 {
		return nil, &InvalidHeaderError{
			Sheet:     sheet.Name,
			HeaderRow: headerRow,
			Headers:   unknown,
			Allowed:   s.Rows.HeaderNames(),
		}
	}
	return headers, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
