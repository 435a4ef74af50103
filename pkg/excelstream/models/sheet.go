package models

// SheetData represents the rows of a single sheet.
type SheetData struct {
	// Name is the sheet display name.
	Name string `json:"name"`
	// Rows contains the non-empty rows in ascending order.
	Rows []CellRow `json:"rows,omitempty"`
}

// Row returns the row with physical index r (1-based).
func (s SheetData) Row(r int) (CellRow, bool) {
	for _, row := range s.Rows {
		if row.R == r {
			return row, true
		}
		if row.R > r {
			break
		}
	}
	return CellRow{}, false
}
