package merge

import (
	"errors"

	"kwbrand/internal/models"
	"kwbrand/internal/tabular"
)

// Upload is one file received from the browser.
type Upload struct {
	Name string
	Data []byte
}

// Result is the outcome of a batch merge. Table is nil when no file could
// be read.
type Result struct {
	Table  *tabular.Table
	Merged int
	Failed []models.FileFailure
}

// Empty reports whether nothing was merged.
func (r *Result) Empty() bool {
	return r.Table == nil || r.Merged == 0
}

// FailedNames lists the names of the files that were left out.
func (r *Result) FailedNames() []string {
	names := make([]string, len(r.Failed))
	for i, f := range r.Failed {
		names[i] = f.Name
	}
	return names
}

type readFunc func(name string, data []byte, opts tabular.ReadOptions) (*tabular.Table, error)

// Files merges spreadsheet and CSV uploads with the provenance column first.
func Files(uploads []Upload, column string, read tabular.ReadOptions) *Result {
	return batch(uploads, tabular.Read, read, Options{Mode: ModeLeading, Column: column})
}

// Archives merges zip uploads, each holding one CSV or XLSX file, appending
// the provenance column. read.MaxEntryBytes bounds each extracted file.
func Archives(uploads []Upload, column string, read tabular.ReadOptions) *Result {
	return batch(uploads, tabular.ReadArchive, read, Options{Mode: ModeAppend, Column: column})
}

// batch reads every upload independently. A file that fails to read is
// recorded and skipped; the rest are still merged.
func batch(uploads []Upload, read readFunc, readOpts tabular.ReadOptions, opts Options) *Result {
	res := &Result{}
	sources := make([]Source, 0, len(uploads))
	for _, u := range uploads {
		t, err := read(u.Name, u.Data, readOpts)
		if err != nil {
			res.Failed = append(res.Failed, models.FileFailure{Name: u.Name, Reason: failureReason(err)})
			continue
		}
		sources = append(sources, Source{Label: Label(u.Name), Table: t})
	}

	res.Merged = len(sources)
	if len(sources) > 0 {
		res.Table = Merge(sources, opts)
	}
	return res
}

func failureReason(err error) string {
	var ufe *models.UnparsableFileError
	if errors.As(err, &ufe) && ufe.Err != nil {
		return ufe.Err.Error()
	}
	return err.Error()
}
