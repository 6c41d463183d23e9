// Package tabular reads spreadsheet, CSV and zip uploads into in-memory
// tables and writes tables back out as downloadable files.
package tabular

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Row maps a column name to its value. A missing key or a nil value is null.
type Row map[string]any

// Table is an ordered set of named columns and the rows that fill them.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(name string, columns ...string) *Table {
	return &Table{Name: name, Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Append adds a row. Keys not declared as columns are ignored on export.
func (t *Table) Append(row Row) {
	t.Rows = append(t.Rows, row)
}

// Values returns the row's cells in column order.
func (t *Table) Values(row Row) []any {
	out := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = row[c]
	}
	return out
}

// Text returns the cell as a string. Null cells return "" and false.
func Text(row Row, column string) (string, bool) {
	v, ok := row[column]
	if !ok || v == nil {
		return "", false
	}
	return FormatValue(v), true
}

// Number coerces the cell to a float64. Null, non-numeric and non-finite
// cells report false.
func Number(row Row, column string) (float64, bool) {
	v, ok := row[column]
	if !ok || v == nil {
		return 0, false
	}

	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// FormatValue renders a cell for display and CSV output.
func FormatValue(v any) string {
	switch n := v.(type) {
	case nil:
		return ""
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	default:
		return fmt.Sprint(v)
	}
}
