package matching

import (
	"kwbrand/internal/models"
	"kwbrand/internal/tabular"
)

// Summary counts branded and non-branded keywords.
type Summary struct {
	Total       int     `json:"total"`
	Branded     int     `json:"branded"`
	NonBranded  int     `json:"non_branded"`
	BrandedRate float64 `json:"branded_rate"`
}

// Summarize tallies a set of match results.
func Summarize(results []models.MatchResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Classification == models.Branded {
			s.Branded++
		}
	}
	s.NonBranded = s.Total - s.Branded
	if s.Total > 0 {
		s.BrandedRate = float64(s.Branded) / float64(s.Total)
	}
	return s
}

// Filter narrows match results for display. Zero values mean "all".
type Filter struct {
	Classification *models.Classification
	Brand          string
}

// Apply returns the results that pass the filter, in order.
func (f Filter) Apply(results []models.MatchResult) []models.MatchResult {
	out := make([]models.MatchResult, 0, len(results))
	for _, r := range results {
		if f.Classification != nil && r.Classification != *f.Classification {
			continue
		}
		if f.Brand != "" && (r.MatchedBrand == nil || *r.MatchedBrand != f.Brand) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// MatchedBrands lists the distinct matched brand names in first-seen order.
func MatchedBrands(results []models.MatchResult) []string {
	seen := make(map[string]struct{})
	var brands []string
	for _, r := range results {
		if r.MatchedBrand == nil {
			continue
		}
		if _, ok := seen[*r.MatchedBrand]; ok {
			continue
		}
		seen[*r.MatchedBrand] = struct{}{}
		brands = append(brands, *r.MatchedBrand)
	}
	return brands
}

// Export column names for match result tables.
const (
	ColumnBrandName  = "Brand Name"
	ColumnBrandTerm  = "Brand"
	ColumnType       = "Keyword Type"
	ColumnAttributes = "Attributes"
)

// Table lays match results out for display and export. The Attributes column
// is left empty for analysts to fill in.
func Table(results []models.MatchResult, cols models.KeywordColumns) *tabular.Table {
	t := tabular.NewTable("brand matching", cols.Keyword, cols.Volume, ColumnBrandName, ColumnBrandTerm, ColumnType, ColumnAttributes)
	for _, r := range results {
		row := tabular.Row{
			cols.Keyword:     r.Keyword,
			cols.Volume:      r.Volume,
			ColumnBrandName:  nil,
			ColumnBrandTerm:  nil,
			ColumnType:       r.Classification.String(),
			ColumnAttributes: nil,
		}
		if r.MatchedBrand != nil {
			row[ColumnBrandName] = *r.MatchedBrand
		}
		if r.MatchedTerm != nil {
			row[ColumnBrandTerm] = *r.MatchedTerm
		}
		t.Append(row)
	}
	return t
}
