// Package dedup normalizes and deduplicates pasted product identifiers
// such as ASINs.
package dedup

import (
	"regexp"
	"strings"

	"kwbrand/internal/models"
)

var separators = regexp.MustCompile(`[\s,;]+`)

// Identifiers splits text on runs of whitespace, commas and semicolons,
// upper-cases each token and removes duplicates keeping the first
// occurrence. Blank input returns models.ErrEmptyInput; input made only of
// separators gives an empty result.
func Identifiers(text string) (models.DedupResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.DedupResult{}, models.ErrEmptyInput
	}

	var tokens []string
	for _, tok := range separators.Split(text, -1) {
		if tok = strings.ToUpper(strings.TrimSpace(tok)); tok != "" {
			tokens = append(tokens, tok)
		}
	}

	seen := make(map[string]struct{}, len(tokens))
	unique := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		unique = append(unique, tok)
	}

	return models.DedupResult{
		OriginalCount: len(tokens),
		UniqueCount:   len(unique),
		Unique:        unique,
	}, nil
}
