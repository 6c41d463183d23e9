package tabular

import (
	"strings"

	"kwbrand/internal/models"
)

// RequireColumns checks that every named column is present.
func RequireColumns(t *Table, columns ...string) error {
	var missing []string
	for _, c := range columns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &models.MissingColumnError{
			Missing:  missing,
			Detected: append([]string(nil), t.Columns...),
		}
	}
	return nil
}

// KeywordRecords extracts keyword rows whose volume is a finite number > 0.
// It returns the records and the number of rows dropped for bad volumes.
func KeywordRecords(t *Table, cols models.KeywordColumns) ([]models.KeywordRecord, int, error) {
	if err := RequireColumns(t, cols.Keyword, cols.Volume); err != nil {
		return nil, 0, err
	}

	records := make([]models.KeywordRecord, 0, len(t.Rows))
	dropped := 0
	for i, row := range t.Rows {
		volume, ok := Number(row, cols.Volume)
		if !ok || volume <= 0 {
			dropped++
			continue
		}
		keyword, _ := Text(row, cols.Keyword)
		records = append(records, models.KeywordRecord{
			Keyword: keyword,
			Volume:  volume,
			Row:     i,
		})
	}

	if len(records) == 0 {
		return nil, dropped, models.ErrEmptyDataset
	}
	return records, dropped, nil
}

// Brands extracts the brand list, skipping null names and keeping only the
// first of any names that are equal ignoring case.
func Brands(t *Table, column string) ([]models.Brand, error) {
	if err := RequireColumns(t, column); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(t.Rows))
	brands := make([]models.Brand, 0, len(t.Rows))
	for _, row := range t.Rows {
		name, ok := Text(row, column)
		if !ok {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		brands = append(brands, models.Brand{Name: name})
	}
	return brands, nil
}
