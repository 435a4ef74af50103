package excelstream

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/models"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/schema"
)

// testSheet is a sheet fixture: physical row index to cell values.
type testSheet struct {
	name string
	rows map[int][]interface{}
}

// buildWorkbook writes the fixture sheets, in order, into an xlsx buffer.
func buildWorkbook(t *testing.T, sheets ...testSheet) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				t.Fatalf("SetSheetName failed: %v", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			t.Fatalf("NewSheet failed: %v", err)
		}
		for r, values := range s.rows {
			values := values
			if err := f.SetSheetRow(s.name, fmt.Sprintf("A%d", r), &values); err != nil {
				t.Fatalf("SetSheetRow failed: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf
}

// singleSheetFirstRowHeader mirrors a one-sheet workbook with headers in row 1.
func singleSheetFirstRowHeader() testSheet {
	return testSheet{
		name: "Data",
		rows: map[int][]interface{}{
			1: {"Sr No", "Name", "X Value", "Y Value", "Z Value", "Total"},
			2: {1, "First Entry", 25, 30, 45, 100},
			3: {2, "Second Entry", 20, 20, 20, 60},
			4: {3, "Third Entry", 15, 10, 8, 33},
			5: {4, "Fourth Entry", 22, 39, 65, 126},
			6: {5, "Fifth Entry", 42, 8, "invalid num", 50},
		},
	}
}

func singleSheetFirstRowHeaderSchema() schema.SheetSchema {
	return schema.SheetSchema{
		Name: "Data",
		Rows: schema.RowSchema{
			AllowedHeaders: []schema.HeaderSchema{
				{Name: "Sr No", Key: "index"},
				{Name: "Name", Key: "name"},
				{Name: "X Value", Key: "x"},
				{Name: "Y Value", Key: "y"},
				{Name: "Z Value", Key: "z"},
				{Name: "Total", Key: "total"},
			},
		},
	}
}

func singleSheetFirstRowHeaderRecords() []models.Record {
	return []models.Record{
		{"index": int64(1), "name": "First Entry", "x": int64(25), "y": int64(30), "z": int64(45), "total": int64(100)},
		{"index": int64(2), "name": "Second Entry", "x": int64(20), "y": int64(20), "z": int64(20), "total": int64(60)},
		{"index": int64(3), "name": "Third Entry", "x": int64(15), "y": int64(10), "z": int64(8), "total": int64(33)},
		{"index": int64(4), "name": "Fourth Entry", "x": int64(22), "y": int64(39), "z": int64(65), "total": int64(126)},
		{"index": int64(5), "name": "Fifth Entry", "x": int64(42), "y": int64(8), "z": "invalid num", "total": int64(50)},
	}
}

// singleSheetNRowHeader has a title block above a header in row 6.
func singleSheetNRowHeader() testSheet {
	return testSheet{
		name: "Data",
		rows: map[int][]interface{}{
			1: {"Quarterly report"},
			3: {"Generated by", "finance"},
			6: {"Sr No", "Name", "X Value", "Y Value"},
			7: {1, "First Entry", 6, 68},
			8: {2, "Second Entry", 34, 57},
		},
	}
}

func multiSheetNRowHeader() []testSheet {
	return []testSheet{
		{
			name: "First Sheet",
			rows: map[int][]interface{}{
				1: {"Summary of first sheet"},
				4: {"Sr No", "Name", "X Value", "Y Value", "Total"},
				5: {1, "First Entry", 25, 5, 30},
				6: {2, "Second Entry", 20, 20, 40},
				7: {3, "Third Entry", 15, 10, 25},
				8: {4, "Fourth Entry", 22, "error", 22},
			},
		},
		{
			name: "Second Sheet",
			rows: map[int][]interface{}{
				3: {"Name", "Z Value", "Total"},
				4: {"First Entry", 43, 73},
				5: {"Second Entry", 77, 117},
				6: {"Second Entry", 51, 76},
			},
		},
	}
}

func multiSheetNRowHeaderConfig() schema.Config {
	return schema.Config{
		Sheets: []schema.SheetSchema{
			{
				Name: "First Sheet",
				Key:  "sheet1",
				Rows: schema.RowSchema{
					HeaderRow: schema.IntPtr(4),
					AllowedHeaders: []schema.HeaderSchema{
						{Name: "Sr No", Key: "index"},
						{Name: "Name", Key: "name"},
						{Name: "X Value", Key: "x"},
						{Name: "Y Value", Key: "y"},
						{Name: "Total", Key: "total"},
					},
				},
			},
			{
				Name: "Second Sheet",
				Key:  "sheet2",
				Rows: schema.RowSchema{
					HeaderRow: schema.IntPtr(3),
					AllowedHeaders: []schema.HeaderSchema{
						{Name: "Name", Key: "name"},
						{Name: "Z Value", Key: "z"},
						{Name: "Total", Key: "total"},
					},
				},
			},
		},
	}
}
