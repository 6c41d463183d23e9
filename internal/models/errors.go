package models

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds surfaced by ingestion and the engines.
var (
	ErrMissingColumn  = errors.New("required column missing")
	ErrEmptyDataset   = errors.New("no rows with a valid search volume")
	ErrMissingInput   = errors.New("keyword and brand tables are both required")
	ErrUnparsableFile = errors.New("file could not be parsed")
	ErrEmptyInput     = errors.New("input is empty")
	ErrInvalidUpload  = errors.New("invalid upload")
)

// IsInputError reports whether err was caused by the user's input rather
// than by the server.
func IsInputError(err error) bool {
	for _, target := range []error{ErrMissingColumn, ErrEmptyDataset, ErrMissingInput, ErrUnparsableFile, ErrEmptyInput, ErrInvalidUpload} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// MissingColumnError lists the required columns that were absent together
// with the columns that were actually detected, so the user can fix the file.
type MissingColumnError struct {
	Missing  []string
	Detected []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required columns [%s]; detected columns: [%s]",
		strings.Join(e.Missing, ", "), strings.Join(e.Detected, ", "))
}

// Is makes errors.Is(err, ErrMissingColumn) hold.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// UnparsableFileError records which file failed and why.
type UnparsableFileError struct {
	File string
	Err  error
}

func (e *UnparsableFileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.File, ErrUnparsableFile)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *UnparsableFileError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrUnparsableFile) hold.
func (e *UnparsableFileError) Is(target error) bool {
	return target == ErrUnparsableFile
}
