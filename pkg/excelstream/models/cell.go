// Package models defines the data structures shared by the reader and writer.
package models

// Cell is a single populated cell of a sheet row.
type Cell struct {
	// Col is the column index (1-based).
	Col int `json:"col"`
	// Value is the raw cell text. For formula cells this is the cached result.
	Value string `json:"value"`
	// Formula is the formula expression, only set when formulas were requested.
	Formula string `json:"formula,omitempty"`
}

// CellRow represents a single non-empty row of cells.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// Cells holds the populated cells in column order.
	Cells []Cell `json:"cells"`
}

// Text returns the raw text of the cell in column col, or "" if absent.
func (r CellRow) Text(col int) string {
	for _, c := range r.Cells {
		if c.Col == col {
			return c.Value
		}
	}
	return ""
}
