package output

import (
	"strings"
	"testing"

	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/models"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/schema"
)

func TestToJSON(t *testing.T) {
	recs := Records{"data": {{Row: 1, Record: models.Record{"name": "A"}}}}

	compact, err := ToJSON(recs, false)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if string(compact) != `{"data":[{"row":1,"record":{"name":"A"}}]}` {
		t.Errorf("unexpected JSON: %s", compact)
	}

	pretty, err := ToJSON(recs, true)
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}
	if !strings.Contains(string(pretty), "\n  ") {
		t.Errorf("expected indented JSON, got %s", pretty)
	}
}

func TestWorkbookToJSON(t *testing.T) {
	wb := &models.WorkbookData{
		BookName: "book.xlsx",
		Sheets: []models.SheetData{{
			Name: "Data",
			Rows: []models.CellRow{{R: 1, Cells: []models.Cell{{Col: 1, Value: "x", Formula: "A2"}}}},
		}},
	}
	data, err := WorkbookToJSON(wb, false)
	if err != nil {
		t.Fatalf("WorkbookToJSON failed: %v", err)
	}
	for _, want := range []string{`"book_name":"book.xlsx"`, `"name":"Data"`, `"formula":"A2"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("%s missing from %s", want, data)
		}
	}
}

func TestSchemaToTOMLRoundTrip(t *testing.T) {
	cfg := schema.Config{Sheets: []schema.SheetSchema{{
		Name: "Data",
		Key:  "data",
		Rows: schema.RowSchema{
			HeaderRow: schema.IntPtr(2),
			AllowedHeaders: []schema.HeaderSchema{
				{Name: "Sr No", Key: "sr_no"},
				{Name: "Name", Key: "name", Default: "n/a"},
			},
		},
	}}}

	data, err := SchemaToTOML(cfg)
	if err != nil {
		t.Fatalf("SchemaToTOML failed: %v", err)
	}

	back, err := schema.Parse(data, schema.FormatTOML)
	if err != nil {
		t.Fatalf("Parse failed: %v\n%s", err, data)
	}
	s := back.Sheets[0]
	if s.Key != "data" || s.Rows.HeaderRowIndex() != 2 || len(s.Rows.AllowedHeaders) != 2 {
		t.Errorf("unexpected sheet after round trip: %+v", s)
	}
	if s.Rows.AllowedHeaders[1].Default != "n/a" {
		t.Errorf("Default = %v, expected n/a", s.Rows.AllowedHeaders[1].Default)
	}
}

func TestDecodeRecords(t *testing.T) {
	data := []byte(`{"data":[{"index":1,"ratio":1.5,"name":"A","flag":true,"none":null}]}`)
	got, err := DecodeRecords(data)
	if err != nil {
		t.Fatalf("DecodeRecords failed: %v", err)
	}
	rec := got["data"][0]
	if rec["index"] != int64(1) {
		t.Errorf("index = %v (%T), expected int64(1)", rec["index"], rec["index"])
	}
	if rec["ratio"] != 1.5 {
		t.Errorf("ratio = %v (%T), expected 1.5", rec["ratio"], rec["ratio"])
	}
	if rec["name"] != "A" || rec["flag"] != true {
		t.Errorf("unexpected record: %v", rec)
	}
	if v, ok := rec["none"]; !ok || v != nil {
		t.Errorf("none = %v, %v; expected present nil", v, ok)
	}

	if _, err := DecodeRecords([]byte(`[1,2]`)); err == nil {
		t.Errorf("expected error for non-object input")
	}
}
