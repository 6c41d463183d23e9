package tabular

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"kwbrand/internal/models"
)

// ReadXLSX reads the first worksheet of a workbook. Cell values are read raw,
// so numbers come through without display formatting.
func ReadXLSX(name string, data []byte, opts ReadOptions) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &models.UnparsableFileError{File: name, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &models.UnparsableFileError{File: name, Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &models.UnparsableFileError{File: name, Err: fmt.Errorf("read sheet %q: %w", sheets[0], err)}
	}

	return buildTable(name, rows, opts.SkipRows)
}
