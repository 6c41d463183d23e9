package matching

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"kwbrand/internal/models"
)

// Match classifies every record. Manual rules are consulted before the brand
// list; within each pass the first term found as a whole word wins. Results
// follow input order and share no memory with the inputs.
func Match(records []models.KeywordRecord, brands []models.Brand, rules []models.ManualRule) ([]models.MatchResult, error) {
	if len(records) == 0 || len(brands) == 0 {
		return nil, models.ErrMissingInput
	}

	m := NewMatcher(brands, NewRuleSet(rules))
	results := make([]models.MatchResult, len(records))
	for i, r := range records {
		results[i] = m.Classify(r)
	}
	return results, nil
}

type brandTerm struct {
	name string // as ingested
	term string // lower-cased
}

// Matcher holds the prepared lookups for one matching run.
type Matcher struct {
	rules  *RuleSet
	brands []brandTerm
}

// NewMatcher prepares a matcher. Brands whose lower-cased name is empty never match.
func NewMatcher(brands []models.Brand, rules *RuleSet) *Matcher {
	m := &Matcher{rules: rules, brands: make([]brandTerm, 0, len(brands))}
	for _, b := range brands {
		m.brands = append(m.brands, brandTerm{name: b.Name, term: strings.ToLower(b.Name)})
	}
	return m
}

// Classify matches a single keyword.
func (m *Matcher) Classify(r models.KeywordRecord) models.MatchResult {
	result := models.MatchResult{KeywordRecord: r, Classification: models.NonBranded}
	keyword := strings.ToLower(r.Keyword)

	brand, term, ok := m.matchRules(keyword)
	if !ok {
		brand, term, ok = m.matchBrands(keyword)
	}
	if ok {
		result.MatchedBrand = &brand
		result.MatchedTerm = &term
		result.Classification = models.Branded
	}
	return result
}

func (m *Matcher) matchRules(keyword string) (string, string, bool) {
	if m.rules == nil {
		return "", "", false
	}
	for _, e := range m.rules.entries {
		if ContainsWord(keyword, e.Term) {
			return e.Brand, e.Term, true
		}
	}
	return "", "", false
}

func (m *Matcher) matchBrands(keyword string) (string, string, bool) {
	for _, b := range m.brands {
		if b.term != "" && ContainsWord(keyword, b.term) {
			return b.name, b.term, true
		}
	}
	return "", "", false
}

// ContainsWord reports whether term occurs in s with no word character
// (letter, number or underscore) directly before or after it. Both arguments
// are expected to be lower-cased already.
func ContainsWord(s, term string) bool {
	if term == "" {
		return false
	}
	for offset := 0; offset <= len(s)-len(term); {
		i := strings.Index(s[offset:], term)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(term)

		if !wordBefore(s, start) && !wordAfter(s, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[start:])
		offset = start + size
	}
	return false
}

func wordBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return isWordRune(r)
}

func wordAfter(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return isWordRune(r)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
