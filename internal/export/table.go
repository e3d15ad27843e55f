// Package export renders one page of list records as a spreadsheet or PDF.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Column maps a record's JSON field to an output column.
type Column struct {
	Header string
	Key    string
}

// Table is the data to render.
type Table struct {
	Title   string
	Columns []Column
	Rows    []map[string]any
}

// Rows converts records to generic JSON objects keyed by their JSON field
// names. Numbers are kept as json.Number so ids and money do not lose digits.
func Rows[T any](items []T) ([]map[string]any, error) {
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return rows, nil
}

// CellText formats a JSON value for display.
func CellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		if x {
			return "yes"
		}
		return "no"
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

// cellValue returns a typed spreadsheet value for v.
func cellValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case bool, float64, int, int64:
		return x
	default:
		return CellText(v)
	}
}

func (t Table) headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Header
		if out[i] == "" {
			out[i] = c.Key
		}
	}
	return out
}
