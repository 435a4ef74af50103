package excelstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/models"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/schema"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/sink"
)

// Stats holds the number of data rows written, excluding header rows.
type Stats struct {
	Rows      int
	SheetRows map[string]int
}

type writerSheet struct {
	schema schema.SheetSchema
	sink   *sink.Sheet
}

// Writer streams records into a new workbook.
//
// Sheets and their header rows are created in the background as soon as
// the Writer is created; column order is fixed by the declared headers.
// Configuration errors surface on the first call to Ready, AddData or Save.
type Writer struct {
	id   string
	opts Options
	log  *slog.Logger
	gate *gate
	book *sink.Workbook

	// set by init, read-only afterwards
	sheets map[string]*writerSheet

	mu    sync.Mutex
	saved bool
	stats Stats
}

// NewWriter starts laying out a workbook for cfg.
func NewWriter(cfg schema.Config, opts Options) *Writer {
	w := &Writer{
		id:     uuid.New().String(),
		opts:   opts,
		book:   sink.NewWorkbook(),
		sheets: make(map[string]*writerSheet),
		stats:  Stats{SheetRows: make(map[string]int)},
	}
	w.log = opts.logger(cfg.Debug).With("writer_id", w.id)
	w.gate = newGate(func() error { return w.init(cfg) })
	return w
}

func (w *Writer) init(cfg schema.Config) error {
	norm, err := cfg.Normalize(schema.ModeWrite)
	if err != nil {
		return err
	}

	for i, s := range norm.Sheets {
		w.log.Info("creating sheet", "sheet", s.Name, "key", s.Key)

		sh, err := w.book.AddSheet(s.Name)
		if err != nil {
			return schema.NewConfigError(fmt.Sprintf("sheets[%d].name", i), fmt.Sprintf("is not a usable sheet name: %v", err))
		}
		if err := sh.Skip(s.Rows.HeaderRowIndex() - 1); err != nil {
			return &WriteError{Sheet: s.Name, Err: err}
		}

		names := s.Rows.HeaderNames()
		header := make([]interface{}, len(names))
		for j, n := range names {
			header[j] = n
		}
		if err := sh.AppendRow(header); err != nil {
			return &WriteError{Sheet: s.Name, Err: err}
		}

		w.sheets[s.Key] = &writerSheet{schema: s, sink: sh}
	}
	return nil
}

// Ready waits until every sheet and header row has been created.
func (w *Writer) Ready(ctx context.Context) error {
	return w.gate.wait(ctx)
}

// AddData appends rec to the sheet identified by key. Values are written
// in declared header order; a missing or nil value is replaced by the
// header default, or left empty.
//
// Rows appended before a failure stay in the workbook.
func (w *Writer) AddData(ctx context.Context, key string, rec models.Record) error {
	if err := w.gate.wait(ctx); err != nil {
		return err
	}

	w.mu.Lock()
	saved := w.saved
	w.mu.Unlock()
	if saved {
		return ErrWriterClosed
	}

	ws, ok := w.sheets[key]
	if !ok {
		return &KeyNotFoundError{Key: key}
	}

	row := assembleRow(ws.schema.Rows.AllowedHeaders, rec)
	if err := ws.sink.AppendRow(row); err != nil {
		if errors.Is(err, sink.ErrClosed) {
			return ErrWriterClosed
		}
		return &WriteError{Sheet: ws.schema.Name, Err: err}
	}

	w.mu.Lock()
	w.stats.Rows++
	w.stats.SheetRows[key]++
	w.mu.Unlock()
	return nil
}

// Save finalizes the workbook and returns its bytes.
// Only the first call succeeds; later calls return ErrWriterClosed.
func (w *Writer) Save(ctx context.Context) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := w.SaveTo(ctx, &buf); err != nil {
		return nil, err
	}
	return &buf, nil
}

// SaveTo finalizes the workbook and writes it to dst.
// Only the first call succeeds; later calls return ErrWriterClosed.
func (w *Writer) SaveTo(ctx context.Context, dst io.Writer) error {
	if err := w.gate.wait(ctx); err != nil {
		return err
	}

	w.mu.Lock()
	if w.saved {
		w.mu.Unlock()
		return ErrWriterClosed
	}
	w.saved = true
	stats := w.statsLocked()
	w.mu.Unlock()

	w.log.Info("written rows in total", "rows", stats.Rows)
	w.log.Info("written rows in each sheet", "sheet_rows", stats.SheetRows)
	w.log.Info("committing and closing the workbook")

	if err := w.book.Finalize(dst); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// Stats returns the number of rows written so far.
func (w *Writer) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.statsLocked()
}

func (w *Writer) statsLocked() Stats {
	s := Stats{
		Rows:      w.stats.Rows,
		SheetRows: make(map[string]int, len(w.stats.SheetRows)),
	}
	for k, v := range w.stats.SheetRows {
		s.SheetRows[k] = v
	}
	return s
}
