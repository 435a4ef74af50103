package schema

import (
	"fmt"
)

// ConfigError reports a malformed or incomplete schema.
type ConfigError struct {
	// Field is the path of the offending field, e.g. "sheets[0].rows.headerRow".
	Field string
	// Constraint describes what the field violates.
	Constraint string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid config: %s", e.Constraint)
	}
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Constraint)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, constraint string) *ConfigError {
	return &ConfigError{
		Field:      field,
		Constraint: constraint,
	}
}

// Validate checks c for the given pipeline mode. It returns the first
// violation found as a *ConfigError.
func (c Config) Validate(mode Mode) error {
	if mode != ModeRead && mode != ModeWrite {
		return NewConfigError("", fmt.Sprintf("unknown mode %q", mode))
	}
	if c.TotalSheets != nil && *c.TotalSheets < 1 {
		return NewConfigError("totalSheets", "must be ≥ 1")
	}

	names := make(map[string]int)
	keys := make(map[string]int)

	for i, s := range c.Sheets {
		path := fmt.Sprintf("sheets[%d]", i)

		if s.Name == "" {
			return NewConfigError(path+".name", "must not be empty")
		}
		if prev, ok := names[s.Name]; ok {
			return NewConfigError(path+".name", fmt.Sprintf("duplicates sheets[%d].name %q", prev, s.Name))
		}
		names[s.Name] = i

		if mode == ModeWrite && s.Key == "" {
			return NewConfigError(path+".key", fmt.Sprintf("is required: no key specified for sheet %s", s.Name))
		}
		key := s.SheetKey()
		if prev, ok := keys[key]; ok {
			return NewConfigError(path+".key", fmt.Sprintf("duplicates the key %q of sheets[%d]", key, prev))
		}
		keys[key] = i

		for j, n := range s.AllowedNames {
			if n == "" {
				return NewConfigError(fmt.Sprintf("%s.allowedNames[%d]", path, j), "must not be empty")
			}
		}

		if err := s.Rows.validate(path + ".rows"); err != nil {
			return err
		}
	}

	return nil
}

func (r RowSchema) validate(path string) error {
	if r.HeaderRow != nil && *r.HeaderRow < 1 {
		return NewConfigError(path+".headerRow", "must be ≥ 1")
	}

	keys := make(map[string]int)
	for i, h := range r.AllowedHeaders {
		hpath := fmt.Sprintf("%s.allowedHeaders[%d]", path, i)
		if h.Name == "" {
			return NewConfigError(hpath+".name", "must not be empty")
		}
		if h.Key == "" {
			return NewConfigError(hpath+".key", "must not be empty")
		}
		if prev, ok := keys[h.Key]; ok {
			return NewConfigError(hpath+".key", fmt.Sprintf("duplicates allowedHeaders[%d].key %q", prev, h.Key))
		}
		keys[h.Key] = i
	}
	return nil
}

// Normalize validates c for mode and returns a copy with defaults applied:
// every HeaderRow is set and, on read, every Key is filled in.
// The receiver is not modified.
func (c Config) Normalize(mode Mode) (Config, error) {
	if err := c.Validate(mode); err != nil {
		return Config{}, err
	}

	out := Config{
		Debug:  c.Debug,
		Sheets: make([]SheetSchema, len(c.Sheets)),
	}
	if c.TotalSheets != nil {
		out.TotalSheets = IntPtr(*c.TotalSheets)
	}
	for i, s := range c.Sheets {
		ns := SheetSchema{
			Name:         s.Name,
			Key:          s.SheetKey(),
			AllowedNames: append([]string(nil), s.AllowedNames...),
			Rows: RowSchema{
				HeaderRow:      IntPtr(s.Rows.HeaderRowIndex()),
				AllowedHeaders: append([]HeaderSchema(nil), s.Rows.AllowedHeaders...),
			},
		}
		out.Sheets[i] = ns
	}
	return out, nil
}
