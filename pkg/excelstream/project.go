package excelstream

import (
	"reflect"

	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/models"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/parser"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/schema"
)

// projectRow builds the record of a data row. Cells in columns without a
// resolved header are skipped.
func projectRow(row models.CellRow, headers map[int]schema.HeaderSchema) models.Record {
	rec := make(models.Record, len(headers))
	for _, c := range row.Cells {
		h, ok := headers[c.Col]
		if !ok {
			continue
		}
		v := parser.ResolveValue(c)
		if v == nil {
			continue
		}
		rec[h.Key] = v
	}
	return rec
}

// assembleRow orders the values of rec by the declared headers. Missing
// or nil values fall back to the header default, then to "".
func assembleRow(headers []schema.HeaderSchema, rec models.Record) []interface{} {
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		if v, ok := rec[h.Key]; ok && !isNil(v) {
			row[i] = v
			continue
		}
		if !isNil(h.Default) {
			row[i] = h.Default
			continue
		}
		row[i] = ""
	}
	return row
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
