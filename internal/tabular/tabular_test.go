package tabular

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"kwbrand/internal/models"
	"kwbrand/internal/testutil"
)

func TestReadXLSX_SkipRows(t *testing.T) {
	data := testutil.XLSX(t, [][]any{
		{"Keyword research export"},
		{"generated 2026-10-01"},
		{"关键词", "月搜索量"},
		{"wireless mouse", 1000},
		{"mouse pad", 100.5},
	})

	table, err := ReadXLSX("keywords.xlsx", data, ReadOptions{SkipRows: 2})
	if err != nil {
		t.Fatalf("ReadXLSX() error = %v", err)
	}

	if want := []string{"关键词", "月搜索量"}; !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("Columns = %v, want %v", table.Columns, want)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	if got, _ := Text(table.Rows[0], "关键词"); got != "wireless mouse" {
		t.Errorf("row 0 keyword = %q, want %q", got, "wireless mouse")
	}
	if got, ok := Number(table.Rows[1], "月搜索量"); !ok || got != 100.5 {
		t.Errorf("row 1 volume = %v, %v, want 100.5, true", got, ok)
	}
}

func TestReadXLSX_Corrupt(t *testing.T) {
	_, err := ReadXLSX("broken.xlsx", []byte("definitely not a workbook"), ReadOptions{})
	if !errors.Is(err, models.ErrUnparsableFile) {
		t.Errorf("ReadXLSX() error = %v, want ErrUnparsableFile", err)
	}
}

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name      string
		data      []byte
		columns   []string
		rows      int
		firstCell string
	}{
		{
			name:      "plain utf-8",
			data:      []byte("a,b\n1,2\n3,4\n"),
			columns:   []string{"a", "b"},
			rows:      2,
			firstCell: "1",
		},
		{
			name:      "utf-8 with bom",
			data:      []byte("\xef\xbb\xbfkeyword,volume\nmouse,10\n"),
			columns:   []string{"keyword", "volume"},
			rows:      1,
			firstCell: "mouse",
		},
		{
			name:      "gb18030 header",
			data:      []byte("\xb9\xd8\xbc\xfc\xb4\xca,x\nmouse,1\n"),
			columns:   []string{"关键词", "x"},
			rows:      1,
			firstCell: "mouse",
		},
		{
			name:      "duplicate and blank headers",
			data:      []byte("a,a,,a\n1,2,3,4\n"),
			columns:   []string{"a", "a.1", "Unnamed: 2", "a.2"},
			rows:      1,
			firstCell: "1",
		},
		{
			name:      "ragged rows widen the table and blank rows drop",
			data:      []byte("a\n1,extra\n,\n2\n"),
			columns:   []string{"a", "Unnamed: 1"},
			rows:      2,
			firstCell: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ReadCSV("in.csv", tt.data, ReadOptions{})
			if err != nil {
				t.Fatalf("ReadCSV() error = %v", err)
			}
			if !reflect.DeepEqual(table.Columns, tt.columns) {
				t.Errorf("Columns = %v, want %v", table.Columns, tt.columns)
			}
			if table.Len() != tt.rows {
				t.Fatalf("Len() = %d, want %d", table.Len(), tt.rows)
			}
			if got, _ := Text(table.Rows[0], tt.columns[0]); got != tt.firstCell {
				t.Errorf("first cell = %q, want %q", got, tt.firstCell)
			}
		})
	}
}

func TestReadCSV_EmptyCellsAreNull(t *testing.T) {
	table, err := ReadCSV("in.csv", []byte("a,b\nx,\n"), ReadOptions{})
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if v, present := table.Rows[0]["b"]; !present || v != nil {
		t.Errorf("row[b] = %v (present %v), want nil present", v, present)
	}
}

func TestRead_UnsupportedExtension(t *testing.T) {
	for _, name := range []string{"legacy.xls", "notes.txt", "noext"} {
		t.Run(name, func(t *testing.T) {
			_, err := Read(name, []byte("x"), ReadOptions{})
			var ufe *models.UnparsableFileError
			if !errors.As(err, &ufe) {
				t.Fatalf("Read() error = %v, want *UnparsableFileError", err)
			}
			if ufe.File != name {
				t.Errorf("File = %q, want %q", ufe.File, name)
			}
		})
	}
}

func TestReadArchive(t *testing.T) {
	inner := testutil.CSV(t, [][]string{{"sku", "sales"}, {"A1", "3"}})

	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{
			name: "first tabular entry is used",
			data: testutil.Zip(t,
				testutil.ZipEntry{Name: "readme.txt", Data: []byte("hello")},
				testutil.ZipEntry{Name: "__MACOSX/._data.csv", Data: []byte{0, 1, 2}},
				testutil.ZipEntry{Name: "data/DATA.CSV", Data: inner},
				testutil.ZipEntry{Name: "other.csv", Data: []byte("zzz\n1\n")},
			),
		},
		{
			name:    "no tabular entry",
			data:    testutil.Zip(t, testutil.ZipEntry{Name: "readme.txt", Data: []byte("hello")}),
			wantErr: true,
		},
		{
			name:    "not an archive",
			data:    []byte("PK but not really"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ReadArchive("2026-09.zip", tt.data, ReadOptions{})
			if tt.wantErr {
				if !errors.Is(err, models.ErrUnparsableFile) {
					t.Errorf("ReadArchive() error = %v, want ErrUnparsableFile", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadArchive() error = %v", err)
			}
			if table.Name != "2026-09.zip" {
				t.Errorf("Name = %q, want archive name", table.Name)
			}
			if !reflect.DeepEqual(table.Columns, []string{"sku", "sales"}) {
				t.Errorf("Columns = %v, want [sku sales]", table.Columns)
			}
		})
	}
}

func TestReadArchive_EntryLimit(t *testing.T) {
	// Compresses to a few KB, extracts to 2 MB.
	bomb := []byte("sku\n" + strings.Repeat("A\n", 1<<20))
	inner := []byte("sku\nA\n")

	tests := []struct {
		name    string
		data    []byte
		limit   int64
		wantErr bool
	}{
		{"entry over the limit", bomb, 64 << 10, true},
		{"entry at the limit", inner, int64(len(inner)), false},
		{"default limit", bomb, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive := testutil.Zip(t, testutil.ZipEntry{Name: "export.csv", Data: tt.data})
			_, err := ReadArchive("w40.zip", archive, ReadOptions{MaxEntryBytes: tt.limit})
			if tt.wantErr {
				if !errors.Is(err, models.ErrUnparsableFile) {
					t.Errorf("ReadArchive() error = %v, want ErrUnparsableFile", err)
				}
				return
			}
			if err != nil {
				t.Errorf("ReadArchive() error = %v", err)
			}
		})
	}
}

func TestRequireColumns(t *testing.T) {
	table := NewTable("k.xlsx", "keyword", "clicks")

	err := RequireColumns(table, "keyword", "volume")
	var mce *models.MissingColumnError
	if !errors.As(err, &mce) {
		t.Fatalf("RequireColumns() error = %v, want *MissingColumnError", err)
	}
	if !reflect.DeepEqual(mce.Missing, []string{"volume"}) {
		t.Errorf("Missing = %v, want [volume]", mce.Missing)
	}
	if !reflect.DeepEqual(mce.Detected, []string{"keyword", "clicks"}) {
		t.Errorf("Detected = %v, want [keyword clicks]", mce.Detected)
	}

	if err := RequireColumns(table, "clicks"); err != nil {
		t.Errorf("RequireColumns(clicks) error = %v, want nil", err)
	}
}

func TestKeywordRecords(t *testing.T) {
	cols := models.KeywordColumns{Keyword: "kw", Volume: "vol"}
	table := &Table{
		Columns: []string{"kw", "vol"},
		Rows: []Row{
			{"kw": "a", "vol": "100"},
			{"kw": "b", "vol": "n/a"},
			{"kw": "c", "vol": "0"},
			{"kw": "d", "vol": nil},
			{"kw": "e", "vol": "-5"},
			{"kw": "f", "vol": 20.0},
			{"kw": "g", "vol": "inf"},
			{"kw": nil, "vol": "7"},
		},
	}

	records, dropped, err := KeywordRecords(table, cols)
	if err != nil {
		t.Fatalf("KeywordRecords() error = %v", err)
	}
	if dropped != 5 {
		t.Errorf("dropped = %d, want 5", dropped)
	}
	want := []models.KeywordRecord{
		{Keyword: "a", Volume: 100, Row: 0},
		{Keyword: "f", Volume: 20, Row: 5},
		{Keyword: "", Volume: 7, Row: 7},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records = %+v, want %+v", records, want)
	}
}

func TestKeywordRecords_Errors(t *testing.T) {
	cols := models.KeywordColumns{Keyword: "kw", Volume: "vol"}

	_, _, err := KeywordRecords(NewTable("x", "kw"), cols)
	if !errors.Is(err, models.ErrMissingColumn) {
		t.Errorf("missing column: error = %v, want ErrMissingColumn", err)
	}

	zeroes := &Table{Columns: []string{"kw", "vol"}, Rows: []Row{{"kw": "a", "vol": "0"}}}
	_, dropped, err := KeywordRecords(zeroes, cols)
	if !errors.Is(err, models.ErrEmptyDataset) {
		t.Errorf("zero volume: error = %v, want ErrEmptyDataset", err)
	}
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
}

func TestBrands(t *testing.T) {
	table := &Table{
		Columns: []string{"品牌名称"},
		Rows: []Row{
			{"品牌名称": "Anker"},
			{"品牌名称": nil},
			{"品牌名称": "anker"},
			{"品牌名称": "Logitech"},
			{"品牌名称": "ANKER"},
		},
	}

	brands, err := Brands(table, "品牌名称")
	if err != nil {
		t.Fatalf("Brands() error = %v", err)
	}
	want := []models.Brand{{Name: "Anker"}, {Name: "Logitech"}}
	if !reflect.DeepEqual(brands, want) {
		t.Errorf("Brands() = %v, want %v", brands, want)
	}

	if _, err := Brands(table, "brand"); !errors.Is(err, models.ErrMissingColumn) {
		t.Errorf("Brands(brand) error = %v, want ErrMissingColumn", err)
	}
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	table := &Table{
		Columns: []string{"时间", "a", "b"},
		Rows: []Row{
			{"时间": "week1", "a": "1", "b": nil},
			{"时间": "week2", "a": nil, "b": 2.5},
			{"时间": "week2", "a": "0123", "b": "x"},
		},
	}

	data, err := WriteXLSX(table, "merge/result")
	if err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()
	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != "merge_result" {
		t.Errorf("sheets = %v, want [merge_result]", sheets)
	}

	back, err := ReadXLSX("out.xlsx", data, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadXLSX() error = %v", err)
	}
	if !reflect.DeepEqual(back.Columns, table.Columns) {
		t.Errorf("Columns = %v, want %v", back.Columns, table.Columns)
	}
	if back.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", back.Len())
	}
	if v := back.Rows[0]["b"]; v != nil {
		t.Errorf("row 0 b = %v, want nil", v)
	}
	if got, _ := Text(back.Rows[1], "b"); got != "2.5" {
		t.Errorf("row 1 b = %q, want %q", got, "2.5")
	}
	if got, _ := Text(back.Rows[2], "a"); got != "0123" {
		t.Errorf("row 2 a = %q, want leading zero kept", got)
	}
}

func TestWriteCSV(t *testing.T) {
	table := &Table{
		Columns: []string{"time", "a"},
		Rows: []Row{
			{"time": "w1", "a": 3.0},
			{"time": "w2"},
		},
	}

	data, err := WriteCSV(table)
	if err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}
	want := "\ufefftime,a\nw1,3\nw2,\n"
	if string(data) != want {
		t.Errorf("WriteCSV() = %q, want %q", data, want)
	}
}
