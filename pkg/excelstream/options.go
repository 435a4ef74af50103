// Package excelstream maps workbook sheets to schema-validated records and
// back.
//
// A Reader validates each sheet of a workbook against a schema.Config and
// calls back once per data row with a keyed record. A Writer creates one
// sheet per schema, writes the header rows up front and streams records
// into them in declared column order.
package excelstream

import (
	"log/slog"
)

// Options configures a Reader or Writer.
type Options struct {
	// Logger receives diagnostics when the schema enables debug.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
	// MaxConcurrentSheets bounds how many sheets a Reader iterates at once.
	// If zero or negative, all sheets run concurrently.
	MaxConcurrentSheets int
}

// DefaultOptions returns default options.
func DefaultOptions() Options {
	return Options{}
}

// logger returns the logger to use. Without debug nothing is logged.
func (o Options) logger(debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.DiscardHandler)
	}
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// concurrency returns the errgroup limit, -1 meaning unlimited.
func (o Options) concurrency() int {
	if o.MaxConcurrentSheets > 0 {
		return o.MaxConcurrentSheets
	}
	return -1
}
