// Package testutil provides test utilities and helpers.
package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"mime/multipart"
	"testing"

	"github.com/xuri/excelize/v2"
)

// XLSX builds an in-memory workbook whose first sheet holds the given rows.
func XLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("failed to compute cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("failed to write fixture row %d: %v", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to encode fixture workbook: %v", err)
	}
	return buf.Bytes()
}

// CSV builds comma-separated bytes from string rows.
func CSV(t *testing.T, rows [][]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("failed to encode fixture csv: %v", err)
	}
	return buf.Bytes()
}

// ZipEntry is one file placed inside a fixture archive.
type ZipEntry struct {
	Name string
	Data []byte
}

// Zip builds an archive holding the entries in order.
func Zip(t *testing.T, entries ...ZipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", e.Name, err)
		}
		if _, err := w.Write(e.Data); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

// FormFile is one file part of a multipart request body.
type FormFile struct {
	Field string
	Name  string
	Data  []byte
}

// Multipart builds a multipart/form-data body and returns it with its
// Content-Type header value.
func Multipart(t *testing.T, fields map[string]string, files ...FormFile) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("failed to write form field %s: %v", k, err)
		}
	}
	for _, f := range files {
		w, err := mw.CreateFormFile(f.Field, f.Name)
		if err != nil {
			t.Fatalf("failed to create form file %s: %v", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			t.Fatalf("failed to write form file %s: %v", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return body, mw.FormDataContentType()
}
