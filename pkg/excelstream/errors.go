package excelstream

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/schema"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not a valid xlsx workbook.
// Every *ParseError matches it with errors.Is.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrWriterClosed is returned by Writer operations after Save.
var ErrWriterClosed = errors.New("writer already saved")

// ConfigError reports a malformed or incomplete schema.
//
// Example:
//
//	var cfgErr *excelstream.ConfigError
//	if errors.As(err, &cfgErr) {
//	    fmt.Printf("bad option %s: %s\n", cfgErr.Field, cfgErr.Constraint)
//	}
type ConfigError = schema.ConfigError

// SchemaNotFoundError reports a workbook sheet without a matching schema.
type SchemaNotFoundError struct {
	Sheet string
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("schema not found for sheet %q", e.Sheet)
}

// SheetCountError reports a workbook whose number of sheets differs from
// the configured totalSheets.
type SheetCountError struct {
	Expected int
	Actual   int
}

func (e *SheetCountError) Error() string {
	return fmt.Sprintf("total number of sheets must be %d, workbook has %d", e.Expected, e.Actual)
}

// SheetNameNotAllowedError reports a workbook sheet whose name is not in
// the allowedNames declared by the schema.
type SheetNameNotAllowedError struct {
	Sheet   string
	Allowed []string
}

func (e *SheetNameNotAllowedError) Error() string {
	return fmt.Sprintf("sheet name %q is not allowed; only these sheet names are allowed: %s",
		e.Sheet, strings.Join(e.Allowed, ", "))
}

// InvalidHeaderError reports header cells not declared in allowedHeaders.
type InvalidHeaderError struct {
	Sheet     string
	HeaderRow int
	// Headers are the offending header texts in column order.
	Headers []string
	Allowed []string
}

func (e *InvalidHeaderError) Error() string {
	return fmt.Sprintf("sheet %q row %d contains unknown headers [%s]; only these header values are allowed: %s",
		e.Sheet, e.HeaderRow, strings.Join(e.Headers, ", "), strings.Join(e.Allowed, ", "))
}

// KeyNotFoundError reports a sheet key unknown to the writer.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("no such sheet key: %s", e.Key)
}

// ParseError wraps a failure of the workbook codec while reading.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse workbook: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidFormat.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// WriteError wraps a failure of the workbook codec while writing.
type WriteError struct {
	// Sheet is empty for workbook-level failures.
	Sheet string
	Err   error
}

func (e *WriteError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("write workbook: %v", e.Err)
	}
	return fmt.Sprintf("write sheet %q: %v", e.Sheet, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
