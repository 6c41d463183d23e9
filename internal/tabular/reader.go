package tabular

import (
	"fmt"
	"path/filepath"
	"strings"

	"kwbrand/internal/models"
)

// ReadOptions controls how an upload is turned into a table.
type ReadOptions struct {
	// SkipRows drops this many leading rows before the header row.
	SkipRows int
	// MaxEntryBytes caps the extracted size of an archive entry. Zero means
	// DefaultMaxEntryBytes.
	MaxEntryBytes int64
}

// DefaultMaxEntryBytes is the extracted size limit for archive entries when
// ReadOptions does not set one.
const DefaultMaxEntryBytes = 256 << 20

// Supported tabular extensions, lower-cased.
const (
	ExtXLSX = ".xlsx"
	ExtCSV  = ".csv"
	ExtZIP  = ".zip"
)

// IsTabular reports whether the file name carries a readable tabular extension.
func IsTabular(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ExtXLSX, ExtCSV:
		return true
	}
	return false
}

// Read parses an upload according to its file extension.
func Read(name string, data []byte, opts ReadOptions) (*Table, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ExtXLSX:
		return ReadXLSX(name, data, opts)
	case ExtCSV:
		return ReadCSV(name, data, opts)
	default:
		return nil, &models.UnparsableFileError{
			File: name,
			Err:  fmt.Errorf("unsupported file type %q (expected .xlsx or .csv)", ext),
		}
	}
}

// buildTable turns raw records into a Table. The first record after skipRows
// is the header. Fully blank data rows are dropped and empty cells become null.
func buildTable(name string, records [][]string, skipRows int) (*Table, error) {
	if skipRows < 0 {
		skipRows = 0
	}
	if len(records) <= skipRows {
		return nil, &models.UnparsableFileError{File: name, Err: fmt.Errorf("no header row after skipping %d rows", skipRows)}
	}
	records = records[skipRows:]

	header := records[0]
	data := records[1:]

	width := len(header)
	for _, r := range data {
		if len(r) > width {
			width = len(r)
		}
	}
	padded := make([]string, width)
	copy(padded, header)
	columns := makeUniqueColumnNames(padded)

	t := &Table{Name: name, Columns: columns, Rows: make([]Row, 0, len(data))}
	for _, record := range data {
		if isBlank(record) {
			continue
		}
		row := make(Row, width)
		for i, col := range columns {
			if i < len(record) && record[i] != "" {
				row[col] = record[i]
			} else {
				row[col] = nil
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// makeUniqueColumnNames trims header cells, names blank ones "Unnamed: i"
// and suffixes repeats with ".1", ".2", ...
func makeUniqueColumnNames(header []string) []string {
	result := make([]string, 0, len(header))
	used := map[string]bool{}
	repeats := map[string]int{}
	for i, raw := range header {
		base := strings.TrimSpace(raw)
		if base == "" {
			base = fmt.Sprintf("Unnamed: %d", i)
		}
		name := base
		for used[name] {
			repeats[base]++
			name = fmt.Sprintf("%s.%d", base, repeats[base])
		}
		used[name] = true
		result = append(result, name)
	}
	return result
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
