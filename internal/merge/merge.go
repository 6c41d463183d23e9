// Package merge concatenates independently uploaded tables into one,
// tagging every row with the file it came from.
package merge

import (
	"path"
	"slices"
	"strings"

	"kwbrand/internal/models"
	"kwbrand/internal/tabular"
)

// DefaultColumn is the default provenance column name ("time").
const DefaultColumn = "时间"

// Mode selects where the provenance column goes.
type Mode int

const (
	// ModeAppend adds the provenance column after each table's own columns.
	ModeAppend Mode = iota
	// ModeLeading forces the provenance column to be the first column.
	ModeLeading
)

// Options configures a merge.
type Options struct {
	Mode   Mode
	Column string
}

func (o Options) column() string {
	if o.Column == "" {
		return DefaultColumn
	}
	return o.Column
}

// Source is one table paired with its provenance label.
type Source struct {
	Label string
	Table *tabular.Table
}

// Label derives a provenance label from a file name by dropping any
// directory and the last extension.
func Label(fileName string) string {
	base := path.Base(strings.ReplaceAll(fileName, `\`, "/"))
	if i := strings.LastIndex(base, "."); i > 0 {
		return base[:i]
	}
	return base
}

// Merge stacks the sources in order. Columns are the union of all source
// columns in first-seen order; rows from a source lacking a column get null.
// Source tables are not modified.
func Merge(sources []Source, opts Options) *tabular.Table {
	col := opts.column()
	out := &tabular.Table{Name: "merged"}
	seen := make(map[string]struct{})
	addColumn := func(c string) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out.Columns = append(out.Columns, c)
	}

	if opts.Mode == ModeLeading {
		addColumn(col)
	}
	for _, src := range sources {
		for _, c := range src.Table.Columns {
			if c != col {
				addColumn(c)
			}
		}
		addColumn(col)
	}

	for _, src := range sources {
		for _, row := range src.Table.Rows {
			merged := make(tabular.Row, len(out.Columns))
			for _, c := range out.Columns {
				merged[c] = nil
			}
			for _, c := range src.Table.Columns {
				merged[c] = row[c]
			}
			merged[col] = src.Label
			out.Rows = append(out.Rows, merged)
		}
	}
	return out
}

// LabelCounts tallies rows per provenance label, most rows first; ties keep
// first-seen order.
func LabelCounts(t *tabular.Table, column string) []models.LabelCount {
	if column == "" {
		column = DefaultColumn
	}
	index := make(map[string]int)
	var counts []models.LabelCount
	for _, row := range t.Rows {
		label, _ := tabular.Text(row, column)
		i, ok := index[label]
		if !ok {
			i = len(counts)
			index[label] = i
			counts = append(counts, models.LabelCount{Label: label})
		}
		counts[i].Rows++
	}
	slices.SortStableFunc(counts, func(a, b models.LabelCount) int { return b.Rows - a.Rows })
	return counts
}
