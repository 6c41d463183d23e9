// Package matching classifies keywords as branded or non-branded by
// whole-word matching against manual rules and a brand list.
package matching

import (
	"strings"

	"kwbrand/internal/models"
)

// ParseTerms splits a comma-separated term list, lower-casing and trimming
// each term and discarding empty ones.
func ParseTerms(s string) []string {
	parts := strings.Split(s, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		if term := strings.ToLower(strings.TrimSpace(p)); term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// NewRule builds a ManualRule from a brand name and a comma-separated term list.
func NewRule(brand, terms string) models.ManualRule {
	return models.ManualRule{
		BrandName: strings.TrimSpace(brand),
		Terms:     ParseTerms(terms),
	}
}

// RuleEntry is one term of the manual rule index.
type RuleEntry struct {
	Term  string
	Brand string
}

// RuleSet is the ordered term -> brand lookup built from manual rules.
// A term keeps the position where it was first seen; a later rule naming the
// same term replaces its brand.
type RuleSet struct {
	entries []RuleEntry
	index   map[string]int
}

// NewRuleSet indexes rules in input order, terms within each rule in order.
func NewRuleSet(rules []models.ManualRule) *RuleSet {
	rs := &RuleSet{index: make(map[string]int)}
	for _, rule := range rules {
		for _, raw := range rule.Terms {
			term := strings.ToLower(strings.TrimSpace(raw))
			if term == "" {
				continue
			}
			if i, ok := rs.index[term]; ok {
				rs.entries[i].Brand = rule.BrandName
				continue
			}
			rs.index[term] = len(rs.entries)
			rs.entries = append(rs.entries, RuleEntry{Term: term, Brand: rule.BrandName})
		}
	}
	return rs
}

// Entries returns the index in lookup order.
func (rs *RuleSet) Entries() []RuleEntry {
	if rs == nil {
		return nil
	}
	return append([]RuleEntry(nil), rs.entries...)
}

// Len returns the number of distinct terms.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.entries)
}

// Lookup returns the brand mapped to a term.
func (rs *RuleSet) Lookup(term string) (string, bool) {
	if rs == nil {
		return "", false
	}
	i, ok := rs.index[strings.ToLower(strings.TrimSpace(term))]
	if !ok {
		return "", false
	}
	return rs.entries[i].Brand, true
}
