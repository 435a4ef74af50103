package models

// WorkbookData represents a fully parsed workbook.
type WorkbookData struct {
	// BookName is the workbook file name (no path), if known.
	BookName string `json:"book_name,omitempty"`
	// Sheets holds every sheet in workbook order.
	Sheets []SheetData `json:"sheets"`
}

// SheetNames returns the sheet names in workbook order.
func (w *WorkbookData) SheetNames() []string {
	names := make([]string, 0, len(w.Sheets))
	for _, s := range w.Sheets {
		names = append(names, s.Name)
	}
	return names
}
