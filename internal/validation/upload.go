package validation

import (
	"fmt"
	"io"
	"mime/multipart"

	"kwbrand/internal/merge"
	"kwbrand/internal/models"
)

// ReadUpload validates a multipart file and reads it into memory. Validation
// failures wrap models.ErrInvalidUpload.
func ReadUpload(fh *multipart.FileHeader, maxBytes int64, allowed []string) ([]byte, error) {
	if fh == nil {
		return nil, fmt.Errorf("%w: no file was uploaded", models.ErrInvalidUpload)
	}
	if ok, msg := ValidateUpload(fh.Filename, fh.Size, maxBytes, allowed); !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidUpload, msg)
	}
	return readFile(fh)
}

// ReadAll reads every file without validating it. Batch merges use this so
// that a bad file is reported per file instead of failing the request.
func ReadAll(files []*multipart.FileHeader) ([]merge.Upload, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: upload at least one file", models.ErrInvalidUpload)
	}
	uploads := make([]merge.Upload, 0, len(files))
	for _, fh := range files {
		data, err := readFile(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, merge.Upload{Name: fh.Filename, Data: data})
	}
	return uploads, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return data, nil
}
