package models

// Record maps a header key to a cell value.
//
// On read, values are int64, float64 or string. On write, any value the
// workbook sink accepts may be used (numbers, strings, bools, time.Time).
type Record map[string]interface{}
