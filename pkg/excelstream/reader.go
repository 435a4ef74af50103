package excelstream

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/models"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/parser"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/schema"
)

// RowFunc receives one data row. row is 1-based and relative to the
// sheet's header row; sheetKey is the schema key of the sheet.
// Returning an error stops the iteration.
type RowFunc func(ctx context.Context, rec models.Record, row int, sheetKey string) error

// SheetInfo describes a workbook sheet matched to its schema.
type SheetInfo struct {
	Name      string
	Key       string
	HeaderRow int
	// DataRows counts the non-empty rows below the header row.
	DataRows int
}

// Reader projects the rows of a workbook into records.
//
// The workbook is parsed and validated in the background as soon as the
// Reader is created. Every method waits for that to finish and reports
// its error, if any.
type Reader struct {
	id     string
	src    io.Reader
	closer io.Closer
	opts   Options
	log    *slog.Logger
	gate   *gate

	// set by init
	plans []sheetPlan
}

// NewReader starts reading the workbook from src against cfg.
func NewReader(src io.Reader, cfg schema.Config, opts Options) *Reader {
	return newReader(src, nil, "", cfg, opts)
}

// OpenFile starts reading the workbook at path against cfg. The file is
// closed once it has been parsed.
func OpenFile(path string, cfg schema.Config, opts Options) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	return newReader(f, f, filepath.Base(path), cfg, opts), nil
}

func newReader(src io.Reader, closer io.Closer, bookName string, cfg schema.Config, opts Options) *Reader {
	r := &Reader{
		id:     uuid.New().String(),
		src:    src,
		closer: closer,
		opts:   opts,
	}
	r.log = opts.logger(cfg.Debug).With("reader_id", r.id)
	if bookName != "" {
		r.log = r.log.With("book", bookName)
	}
	r.gate = newGate(func() error { return r.init(cfg) })
	return r
}

func (r *Reader) init(cfg schema.Config) error {
	if r.closer != nil {
		defer r.closer.Close()
	}

	norm, err := cfg.Normalize(schema.ModeRead)
	if err != nil {
		return err
	}

	f, err := parser.Open(r.src)
	if err != nil {
		return &ParseError{Err: err}
	}
	defer f.Close()

	wb, err := parser.ReadWorkbook(f, false)
	if err != nil {
		return &ParseError{Err: err}
	}

	plans, err := planSheets(norm, wb)
	if err != nil {
		return err
	}
	r.plans = plans

	r.log.Info("workbook validated", "sheets", len(plans))
	return nil
}

// Ready waits until the workbook is parsed and validated.
func (r *Reader) Ready(ctx context.Context) error {
	return r.gate.wait(ctx)
}

// Sheets returns the matched sheets in workbook order.
func (r *Reader) Sheets(ctx context.Context) ([]SheetInfo, error) {
	if err := r.gate.wait(ctx); err != nil {
		return nil, err
	}

	infos := make([]SheetInfo, 0, len(r.plans))
	for _, p := range r.plans {
		info := SheetInfo{
			Name:      p.schema.Name,
			Key:       p.schema.Key,
			HeaderRow: p.headerRow(),
		}
		for _, row := range p.data.Rows {
			if row.R > info.HeaderRow {
				info.DataRows++
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// ForEachRow calls fn once for every data row of every sheet. Sheets are
// processed concurrently; rows of one sheet are delivered in order, one
// at a time. Rows without populated cells are skipped.
//
// If validation failed, fn is never called and the validation error is
// returned. Otherwise the first error returned by fn cancels the context
// passed to the other sheets and is returned.
func (r *Reader) ForEachRow(ctx context.Context, fn RowFunc) error {
	if err := r.gate.wait(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.concurrency())

	counts := make([]int, len(r.plans))
	for i, p := range r.plans {
		g.Go(func() error {
			n, err := r.eachSheetRow(gctx, p, fn)
			counts[i] = n
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	r.log.Info("rows read", "rows", total)
	return nil
}

func (r *Reader) eachSheetRow(ctx context.Context, p sheetPlan, fn RowFunc) (int, error) {
	headerRow := p.headerRow()
	count := 0

	for _, row := range p.data.Rows {
		if row.R <= headerRow {
			continue
		}
		if err := ctx.Err(); err != nil {
			return count, err
		}

		rec := projectRow(row, p.headers)
		if err := fn(ctx, rec, row.R-headerRow, p.schema.Key); err != nil {
			return count, err
		}
		count++
	}

	r.log.Info("sheet read", "sheet", p.schema.Name, "key", p.schema.Key, "rows", count)
	return count, nil
}
