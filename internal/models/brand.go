package models

import "fmt"

// Classification tells whether a keyword is associated with a brand.
type Classification int

const (
	NonBranded Classification = iota
	Branded
)

// String returns the label shown in tables and exports.
func (c Classification) String() string {
	if c == Branded {
		return "Branded KWs"
	}
	return "Non-Branded KWs"
}

// ParseClassification is the inverse of Classification.String. It also accepts
// the short forms "branded" and "non-branded".
func ParseClassification(s string) (Classification, bool) {
	switch s {
	case "Branded KWs", "branded":
		return Branded, true
	case "Non-Branded KWs", "non-branded":
		return NonBranded, true
	}
	return NonBranded, false
}

// MarshalText lets the enum serialize as its display label.
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts any form ParseClassification accepts.
func (c *Classification) UnmarshalText(text []byte) error {
	parsed, ok := ParseClassification(string(text))
	if !ok {
		return fmt.Errorf("unknown keyword classification %q", text)
	}
	*c = parsed
	return nil
}

// Brand is one entry of the brand list.
type Brand struct {
	Name string `json:"name"`
}

// ManualRule maps a brand name to literal match terms. Terms are lower-cased
// and trimmed; empty terms are discarded.
type ManualRule struct {
	BrandName string   `json:"brand_name" yaml:"brand"`
	Terms     []string `json:"match_terms" yaml:"terms"`
}

// MatchResult is a KeywordRecord annotated with its brand classification.
type MatchResult struct {
	KeywordRecord
	MatchedBrand   *string        `json:"matched_brand_name"`
	MatchedTerm    *string        `json:"matched_term"`
	Classification Classification `json:"classification"`
}

// IsBranded reports whether a brand was recorded for the keyword.
func (r MatchResult) IsBranded() bool {
	return r.MatchedBrand != nil
}
