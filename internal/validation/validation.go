package validation

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"
)

// Extensions accepted per upload slot.
var (
	SpreadsheetExtensions = []string{".xlsx", ".csv"}
	ArchiveExtensions     = []string{".zip"}
)

// MaxBrandNameLength bounds manual rule brand names.
const MaxBrandNameLength = 100

// ValidateUpload checks that a file has a name, content, an allowed
// extension and fits in maxBytes (0 means unlimited).
func ValidateUpload(name string, size int64, maxBytes int64, allowed []string) (bool, string) {
	if strings.TrimSpace(name) == "" {
		return false, "File name is required"
	}
	if size == 0 {
		return false, fmt.Sprintf("%s is empty", name)
	}
	if maxBytes > 0 && size > maxBytes {
		return false, fmt.Sprintf("%s exceeds the %d MB upload limit", name, maxBytes/(1024*1024))
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(allowed, ext) {
		return false, fmt.Sprintf("%s: unsupported file type, expected %s", name, strings.Join(allowed, " or "))
	}
	return true, ""
}

// ValidateRule checks the brand name and comma-separated terms of a manual
// rule form submission.
func ValidateRule(brand, terms string) (bool, string) {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return false, "Brand name is required"
	}
	if utf8.RuneCountInString(brand) > MaxBrandNameLength {
		return false, fmt.Sprintf("Brand name must be at most %d characters", MaxBrandNameLength)
	}
	for _, t := range strings.Split(terms, ",") {
		if strings.TrimSpace(t) != "" {
			return true, ""
		}
	}
	return false, "At least one match term is required"
}

// ValidateThreshold checks a coverage threshold is in (0, 1].
func ValidateThreshold(v float64) (bool, string) {
	if v <= 0 || v > 1 {
		return false, "Coverage threshold must be greater than 0 and at most 1"
	}
	return true, ""
}
