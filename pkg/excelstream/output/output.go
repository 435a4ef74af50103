// Package output serializes workbook data, records and schemas for the
// command line.
package output

import (
	"bytes"
	"encoding/json"

	"github.com/pelletier/go-toml/v2"

	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/models"
	"github.com/vikramthyagarajan/excelstream/pkg/excelstream/schema"
)

// RecordRow is a record together with its data row number.
type RecordRow struct {
	Row    int           `json:"row"`
	Record models.Record `json:"record"`
}

// Records groups record rows by sheet key.
type Records map[string][]RecordRow

// ToJSON serializes v to JSON.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WorkbookToJSON serializes the raw contents of a workbook.
func WorkbookToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return ToJSON(wb, pretty)
}

// SchemaToTOML serializes a schema configuration in the format read by
// schema.Parse.
func SchemaToTOML(cfg schema.Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// DecodeRecords reads the input of the write command: records grouped by
// sheet key. Numbers are kept as json.Number so integers stay integers.
func DecodeRecords(data []byte) (map[string][]models.Record, error) {
	var raw map[string][]map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	out := make(map[string][]models.Record, len(raw))
	for key, rows := range raw {
		recs := make([]models.Record, len(rows))
		for i, row := range rows {
			rec := make(models.Record, len(row))
			for k, v := range row {
				rec[k] = normalizeNumber(v)
			}
			recs[i] = rec
		}
		out[key] = recs
	}
	return out, nil
}

func normalizeNumber(v interface{}) interface{} {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
