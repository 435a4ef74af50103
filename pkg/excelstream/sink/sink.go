// Package sink streams rows into an xlsx workbook. Each sheet is
// append-only and the workbook is finalized exactly once.
package sink

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// ErrClosed is returned when appending to a closed sheet or using a
// finalized workbook.
var ErrClosed = errors.New("sink closed")

// Workbook is an xlsx workbook under construction.
type Workbook struct {
	// mu serializes access to the shared excelize file.
	mu        sync.Mutex
	file      *excelize.File
	sheets    []*Sheet
	finalized bool
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() *Workbook {
	return &Workbook{file: excelize.NewFile()}
}

// AddSheet creates a sheet and opens a stream writer on it. The first
// sheet replaces the default sheet of a new file.
func (wb *Workbook) AddSheet(name string) (*Sheet, error) {
	wb.mu.Lock()
	defer wb.mu.Unlock()

	if wb.finalized {
		return nil, ErrClosed
	}
	for _, s := range wb.sheets {
		// excelize compares sheet names case-insensitively
		if strings.EqualFold(s.name, name) {
			return nil, fmt.Errorf("sheet %q already exists", name)
		}
	}

	if len(wb.sheets) == 0 {
		if err := wb.file.SetSheetName(wb.file.GetSheetName(0), name); err != nil {
			return nil, err
		}
	} else if _, err := wb.file.NewSheet(name); err != nil {
		return nil, err
	}

	sw, err := wb.file.NewStreamWriter(name)
	if err != nil {
		return nil, err
	}

	s := &Sheet{wb: wb, name: name, sw: sw}
	wb.sheets = append(wb.sheets, s)
	return s, nil
}

// Finalize closes every sheet that is still open and writes the workbook
// to w. A workbook can only be finalized once.
func (wb *Workbook) Finalize(w io.Writer) error {
	wb.mu.Lock()
	if wb.finalized {
		wb.mu.Unlock()
		return ErrClosed
	}
	wb.finalized = true
	sheets := append([]*Sheet(nil), wb.sheets...)
	wb.mu.Unlock()

	for _, s := range sheets {
		if err := s.Close(); err != nil {
			return fmt.Errorf("close sheet %q: %w", s.name, err)
		}
	}

	wb.mu.Lock()
	defer wb.mu.Unlock()

	if err := wb.file.Write(w); err != nil {
		wb.file.Close()
		return err
	}
	return wb.file.Close()
}

// Sheet is an append-only sheet of a Workbook.
type Sheet struct {
	wb   *Workbook
	name string

	// mu keeps row numbering and writes of one sheet in order.
	mu     sync.Mutex
	sw     *excelize.StreamWriter
	rows   int
	closed bool
}

// Name returns the sheet name.
func (s *Sheet) Name() string {
	return s.name
}

// Rows returns the index of the last row appended or skipped.
func (s *Sheet) Rows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows
}

// AppendRow writes values as the next row, starting at column A.
func (s *Sheet) AppendRow(values []interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	cell, err := excelize.CoordinatesToCellName(1, s.rows+1)
	if err != nil {
		return err
	}

	s.wb.mu.Lock()
	err = s.sw.SetRow(cell, values)
	s.wb.mu.Unlock()
	if err != nil {
		return err
	}

	s.rows++
	return nil
}

// Skip leaves the next n rows empty.
func (s *Sheet) Skip(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if n > 0 {
		s.rows += n
	}
	return nil
}

// Close flushes the sheet. Further appends fail with ErrClosed.
// Closing an already closed sheet is a no-op.
func (s *Sheet) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()
	return s.sw.Flush()
}
