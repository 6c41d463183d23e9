package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"

	"kwbrand/internal/models"
)

type textDecoder struct {
	name   string
	decode func([]byte) (string, error)
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("invalid utf-8")
	}
	// The BOM-aware decoder strips a leading byte order mark if present.
	return unicode.UTF8BOM.NewDecoder().String(string(data))
}

// Spreadsheet exports from Chinese-locale Excel are usually GB18030; Western
// Excel writes Windows-1252. UTF-8 is tried first since it is self-validating.
func defaultTextDecoders() []textDecoder {
	return []textDecoder{
		{name: "utf-8", decode: decodeUTF8},
		{name: "gb18030", decode: func(b []byte) (string, error) { return simplifiedchinese.GB18030.NewDecoder().String(string(b)) }},
		{name: "windows-1252", decode: func(b []byte) (string, error) { return charmap.Windows1252.NewDecoder().String(string(b)) }},
	}
}

func decodeText(data []byte) (string, string, error) {
	decoders := defaultTextDecoders()
	for i, dec := range decoders {
		text, err := dec.decode(data)
		if err != nil {
			continue
		}
		// Lossy decoders substitute U+FFFD; let a later candidate try instead.
		if i < len(decoders)-1 && strings.ContainsRune(text, utf8.RuneError) {
			continue
		}
		return text, dec.name, nil
	}
	return "", "", fmt.Errorf("unable to decode text with supported encodings")
}

// ReadCSV reads comma-separated text with a header row.
func ReadCSV(name string, data []byte, opts ReadOptions) (*Table, error) {
	text, _, err := decodeText(data)
	if err != nil {
		return nil, &models.UnparsableFileError{File: name, Err: err}
	}

	r := csv.NewReader(bytes.NewReader([]byte(text)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, &models.UnparsableFileError{File: name, Err: fmt.Errorf("parse csv: %w", err)}
	}

	return buildTable(name, records, opts.SkipRows)
}
