package excelstream

import (
	"reflect"
	"testing"

	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/models"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/schema"
)

func TestAssembleRow(t *testing.T) {
	headers := []schema.HeaderSchema{
		{Name: "A", Key: "a", Default: "X"},
		{Name: "B", Key: "b"},
		{Name: "C", Key: "c", Default: 0},
	}
	var nilPtr *int

	tests := []struct {
		name     string
		rec      models.Record
		expected []interface{}
	}{
		{"empty record", models.Record{}, []interface{}{"X", "", 0}},
		{"values win", models.Record{"a": "y", "b": 2, "c": 3}, []interface{}{"y", 2, 3}},
		{"nil uses default", models.Record{"a": nil, "b": nilPtr}, []interface{}{"X", "", 0}},
		{"falsy values kept", models.Record{"a": "", "b": false, "c": 0}, []interface{}{"", false, 0}},
		{"unknown keys ignored", models.Record{"z": 1}, []interface{}{"X", "", 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assembleRow(headers, tt.rec)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("assembleRow() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestProjectRow(t *testing.T) {
	headers := map[int]schema.HeaderSchema{
		1: {Name: "Sr No", Key: "index"},
		3: {Name: "Total", Key: "total"},
	}
	row := models.CellRow{
		R: 5,
		Cells: []models.Cell{
			{Col: 1, Value: "4"},
			{Col: 2, Value: "no header"},
			{Col: 3, Value: "126", Formula: "SUM(A5:B5)"},
			{Col: 4, Value: "beyond headers"},
		},
	}

	got := projectRow(row, headers)
	expected := models.Record{"index": int64(4), "total": int64(126)}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("projectRow() = %v, expected %v", got, expected)
	}
}

func TestResolveHeaders(t *testing.T) {
	s := schema.SheetSchema{
		Name: "Data",
		Rows: schema.RowSchema{AllowedHeaders: []schema.HeaderSchema{
			{Name: "Name", Key: "name"},
			{Name: "Total", Key: "total"},
			{Name: "Unused", Key: "unused"},
		}},
	}
	sheet := models.SheetData{
		Name: "Data",
		Rows: []models.CellRow{{R: 1, Cells: []models.Cell{
			{Col: 2, Value: "Name"},
			{Col: 3, Value: "   "},
			{Col: 4, Value: "Total"},
		}}},
	}

	headers, err := resolveHeaders(s, sheet)
	if err != nil {
		t.Fatalf("resolveHeaders failed: %v", err)
	}
	if len(headers) != 2 || headers[2].Key != "name" || headers[4].Key != "total" {
		t.Errorf("unexpected headers: %v", headers)
	}

	// a missing header row yields no headers
	s.Rows.HeaderRow = schema.IntPtr(9)
	headers, err = resolveHeaders(s, sheet)
	if err != nil || len(headers) != 0 {
		t.Errorf("resolveHeaders() = %v, %v; expected empty", headers, err)
	}
}
