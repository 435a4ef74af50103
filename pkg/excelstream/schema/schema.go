// Package schema describes the sheets, header rows and header-to-field
// mappings a workbook is read with or written to.
package schema

// Mode selects which pipeline a Config is validated for.
type Mode string

const (
	// ModeRead validates a Config for the reader. Missing sheet keys default to the sheet name.
	ModeRead Mode = "read"
	// ModeWrite validates a Config for the writer. Every sheet needs an explicit key.
	ModeWrite Mode = "write"
)

// DefaultHeaderRow is the header row used when RowSchema.HeaderRow is nil.
const DefaultHeaderRow = 1

// Config is the full workbook schema plus diagnostic switches.
type Config struct {
	// Sheets lists the expected sheets. Order decides sheet creation order on write.
	Sheets []SheetSchema `json:"sheets" toml:"sheets"`
	// TotalSheets, when set, is the exact number of sheets a workbook must
	// have to be read. Ignored on write.
	TotalSheets *int `json:"totalSheets,omitempty" toml:"totalSheets,omitempty"`
	// Debug enables diagnostic logging of sheet and row counts.
	Debug bool `json:"debug,omitempty" toml:"debug,omitempty"`
}

// SheetSchema identifies one sheet by its display name.
type SheetSchema struct {
	// Name is the sheet display name, matched exactly.
	Name string `json:"name" toml:"name"`
	// Key identifies the sheet to callers. Defaults to Name on read.
	Key string `json:"key,omitempty" toml:"key,omitempty"`
	// AllowedNames restricts the sheet names a workbook may contain.
	AllowedNames []string `json:"allowedNames,omitempty" toml:"allowedNames,omitempty"`
	// Rows describes the header row and the allowed headers.
	Rows RowSchema `json:"rows" toml:"rows"`
}

// RowSchema describes the header row of a sheet.
type RowSchema struct {
	// HeaderRow is the 1-based header row index. If nil, DefaultHeaderRow is used.
	HeaderRow *int `json:"headerRow,omitempty" toml:"headerRow,omitempty"`
	// AllowedHeaders lists the headers the sheet may contain, in column order for writing.
	AllowedHeaders []HeaderSchema `json:"allowedHeaders" toml:"allowedHeaders"`
}

// HeaderSchema maps a header cell text to a record field.
type HeaderSchema struct {
	// Name is the literal header cell text.
	Name string `json:"name" toml:"name"`
	// Key is the record field name.
	Key string `json:"key" toml:"key"`
	// Default is written when a record has no value for Key.
	Default interface{} `json:"default,omitempty" toml:"default,omitempty"`
}

// HeaderRowIndex returns the 1-based header row.
func (r RowSchema) HeaderRowIndex() int {
	if r.HeaderRow != nil {
		return *r.HeaderRow
	}
	return DefaultHeaderRow
}

// HeaderNames returns the header names in declared order.
func (r RowSchema) HeaderNames() []string {
	names := make([]string, len(r.AllowedHeaders))
	for i, h := range r.AllowedHeaders {
		names[i] = h.Name
	}
	return names
}

// FindHeader returns the first header whose Name equals name.
func (r RowSchema) FindHeader(name string) (HeaderSchema, bool) {
	for _, h := range r.AllowedHeaders {
		if h.Name == name {
			return h, true
		}
	}
	return HeaderSchema{}, false
}

// SheetKey returns Key, or Name when no key is declared.
func (s SheetSchema) SheetKey() string {
	if s.Key != "" {
		return s.Key
	}
	return s.Name
}

// FindSheet returns the sheet schema named name.
func (c Config) FindSheet(name string) (SheetSchema, bool) {
	for _, s := range c.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return SheetSchema{}, false
}

// AllowedSheetNames returns the union of every sheet's AllowedNames in
// declaration order. An empty result means sheet names are unrestricted.
func (c Config) AllowedSheetNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range c.Sheets {
		for _, n := range s.AllowedNames {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

// IntPtr returns a pointer to v, for setting optional fields.
func IntPtr(v int) *int {
	return &v
}
