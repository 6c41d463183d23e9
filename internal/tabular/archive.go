package tabular

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"kwbrand/internal/models"
)

// ReadArchive opens a zip upload and reads the first entry with a tabular
// extension. The returned table is named after the archive, not the entry.
func ReadArchive(name string, data []byte, opts ReadOptions) (*Table, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &models.UnparsableFileError{File: name, Err: fmt.Errorf("open archive: %w", err)}
	}

	entry := firstTabularEntry(zr.File)
	if entry == nil {
		return nil, &models.UnparsableFileError{File: name, Err: fmt.Errorf("archive contains no .csv or .xlsx file")}
	}

	limit := opts.MaxEntryBytes
	if limit <= 0 {
		limit = DefaultMaxEntryBytes
	}
	tooLarge := &models.UnparsableFileError{
		File: name,
		Err:  fmt.Errorf("%s is larger than %d MB once extracted", entry.Name, limit>>20),
	}
	if entry.UncompressedSize64 > uint64(limit) {
		return nil, tooLarge
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, &models.UnparsableFileError{File: name, Err: fmt.Errorf("open %s: %w", entry.Name, err)}
	}
	defer rc.Close()

	// The header size can lie; the reader is capped as well.
	content, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, &models.UnparsableFileError{File: name, Err: fmt.Errorf("read %s: %w", entry.Name, err)}
	}
	if int64(len(content)) > limit {
		return nil, tooLarge
	}

	t, err := Read(entry.Name, content, opts)
	if err != nil {
		return nil, &models.UnparsableFileError{File: name, Err: err}
	}
	t.Name = name
	return t, nil
}

// firstTabularEntry returns the first regular file in archive order with a
// .csv or .xlsx extension. macOS resource-fork entries are skipped.
func firstTabularEntry(files []*zip.File) *zip.File {
	for _, f := range files {
		if f.FileInfo().IsDir() {
			continue
		}
		if strings.HasPrefix(f.Name, "__MACOSX/") || strings.HasPrefix(path.Base(f.Name), "._") {
			continue
		}
		if IsTabular(f.Name) {
			return f
		}
	}
	return nil
}
