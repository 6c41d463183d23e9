package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestClassification_String(t *testing.T) {
	tests := []struct {
		name     string
		class    Classification
		expected string
	}{
		{"branded", Branded, "Branded KWs"},
		{"non-branded", NonBranded, "Non-Branded KWs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.class.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseClassification(t *testing.T) {
	tests := []struct {
		input    string
		expected Classification
		ok       bool
	}{
		{"Branded KWs", Branded, true},
		{"branded", Branded, true},
		{"Non-Branded KWs", NonBranded, true},
		{"non-branded", NonBranded, true},
		{"", NonBranded, false},
		{"all", NonBranded, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseClassification(tt.input)
			if got != tt.expected || ok != tt.ok {
				t.Errorf("ParseClassification(%q) = %v, %v, want %v, %v", tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestMatchResult_JSONClassification(t *testing.T) {
	brand := "Logitech"
	r := MatchResult{
		KeywordRecord:  KeywordRecord{Keyword: "logitech mouse", Volume: 500},
		MatchedBrand:   &brand,
		Classification: Branded,
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["classification"] != "Branded KWs" {
		t.Errorf("classification = %v, want %q", decoded["classification"], "Branded KWs")
	}
	if decoded["keyword"] != "logitech mouse" {
		t.Errorf("keyword = %v, want %q", decoded["keyword"], "logitech mouse")
	}
	if decoded["matched_term"] != nil {
		t.Errorf("matched_term = %v, want nil", decoded["matched_term"])
	}
	if !r.IsBranded() {
		t.Error("IsBranded() = false, want true")
	}

	var back MatchResult
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal(MatchResult) error = %v", err)
	}
	if back.Classification != Branded {
		t.Errorf("decoded Classification = %v, want Branded", back.Classification)
	}

	var bad Classification
	if err := json.Unmarshal([]byte(`"sometimes"`), &bad); err == nil {
		t.Error("Unmarshal(unknown label) error = nil")
	}
}

func TestTypedErrors_Is(t *testing.T) {
	missing := fmt.Errorf("keyword file: %w", &MissingColumnError{
		Missing:  []string{"volume"},
		Detected: []string{"keyword", "clicks"},
	})
	if !errors.Is(missing, ErrMissingColumn) {
		t.Error("errors.Is(missing, ErrMissingColumn) = false, want true")
	}

	var mce *MissingColumnError
	if !errors.As(missing, &mce) {
		t.Fatal("errors.As(missing, *MissingColumnError) = false, want true")
	}
	if want := "missing required columns [volume]; detected columns: [keyword, clicks]"; mce.Error() != want {
		t.Errorf("Error() = %q, want %q", mce.Error(), want)
	}

	cause := errors.New("zip: not a valid zip file")
	unparsable := &UnparsableFileError{File: "week1.zip", Err: cause}
	if !errors.Is(unparsable, ErrUnparsableFile) {
		t.Error("errors.Is(unparsable, ErrUnparsableFile) = false, want true")
	}
	if !errors.Is(unparsable, cause) {
		t.Error("errors.Is(unparsable, cause) = false, want true")
	}
	if errors.Is(unparsable, ErrMissingColumn) {
		t.Error("errors.Is(unparsable, ErrMissingColumn) = true, want false")
	}
}

func TestDedupResult_Helpers(t *testing.T) {
	r := DedupResult{OriginalCount: 4, UniqueCount: 2, Unique: []string{"B08", "X1"}}
	if got := r.Removed(); got != 2 {
		t.Errorf("Removed() = %d, want 2", got)
	}
	if got := r.Joined(); got != "B08 X1" {
		t.Errorf("Joined() = %q, want %q", got, "B08 X1")
	}
}

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"name", User{Sub: "s1", Email: "a@example.com", Name: "Ann"}, "Ann"},
		{"email", User{Sub: "s1", Email: "a@example.com"}, "a@example.com"},
		{"sub only", User{Sub: "s1"}, "s1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsInputError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"missing column", &MissingColumnError{Missing: []string{"a"}}, true},
		{"wrapped empty dataset", fmt.Errorf("rank: %w", ErrEmptyDataset), true},
		{"unparsable", &UnparsableFileError{File: "x.csv"}, true},
		{"invalid upload", fmt.Errorf("%w: too big", ErrInvalidUpload), true},
		{"other", errors.New("disk full"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInputError(tt.err); got != tt.want {
				t.Errorf("IsInputError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
