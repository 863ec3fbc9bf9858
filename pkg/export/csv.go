package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// utf8BOM makes Excel read the file as UTF-8. Without it Thai headers
// open as mojibake.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is tabular data ready to export, header row first.
type Table struct {
	Headers []string
	Rows    [][]interface{}
}

// AddRow appends one row of cells.
func (t *Table) AddRow(cells ...interface{}) {
	t.Rows = append(t.Rows, cells)
}

// CSV renders the table as comma-separated UTF-8 with a BOM.
func CSV(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(t.Headers); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	record := make([]string, 0, len(t.Headers))
	for _, row := range t.Rows {
		record = record[:0]
		for _, cell := range row {
			record = append(record, cellString(cell))
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case nil:
		return ""
	case float64:
		// Quantities keep their precision without trailing noise.
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}
