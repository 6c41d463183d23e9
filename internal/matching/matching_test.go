package matching

import (
	"errors"
	"reflect"
	"testing"

	"kwbrand/internal/models"
)

func kw(keywords ...string) []models.KeywordRecord {
	out := make([]models.KeywordRecord, len(keywords))
	for i, k := range keywords {
		out[i] = models.KeywordRecord{Keyword: k, Volume: float64(100 * (i + 1)), Row: i}
	}
	return out
}

func brands(names ...string) []models.Brand {
	out := make([]models.Brand, len(names))
	for i, n := range names {
		out[i] = models.Brand{Name: n}
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func TestContainsWord(t *testing.T) {
	tests := []struct {
		s    string
		term string
		want bool
	}{
		{"ace pro", "ace", true},
		{"space", "ace", false},
		{"aces", "ace", false},
		{"ace", "ace", true},
		{"the ace", "ace", true},
		{"ace-pro", "ace", true},
		{"(ace)", "ace", true},
		{"ace_pro", "ace", false},
		{"ace2", "ace", false},
		{"space ace", "ace", true},
		{"anker charger", "anker", true},
		{"soundcore by anker", "anker", true},
		{"café ace", "café", true},
		{"écafé", "café", false},
		{"苹果手机", "苹果", false},
		{"苹果 手机", "苹果", true},
		{"3m tape", "3m", true},
		{"a.b.c", "b", true},
		{"", "ace", false},
		{"ace", "", false},
		{"c++ book", "c++", true},
	}

	for _, tt := range tests {
		t.Run(tt.s+"/"+tt.term, func(t *testing.T) {
			if got := ContainsWord(tt.s, tt.term); got != tt.want {
				t.Errorf("ContainsWord(%q, %q) = %v, want %v", tt.s, tt.term, got, tt.want)
			}
		})
	}
}

func TestParseTerms(t *testing.T) {
	got := ParseTerms(" Soundcore, ,EUFY ,, nebula")
	want := []string{"soundcore", "eufy", "nebula"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseTerms() = %v, want %v", got, want)
	}
	if got := ParseTerms(" , "); len(got) != 0 {
		t.Errorf("ParseTerms(blank) = %v, want empty", got)
	}
}

func TestNewRuleSet_DuplicateTermKeepsPositionTakesLaterBrand(t *testing.T) {
	rs := NewRuleSet([]models.ManualRule{
		{BrandName: "A", Terms: []string{"x", "y"}},
		{BrandName: "B", Terms: []string{"z", "X "}},
	})

	want := []RuleEntry{{Term: "x", Brand: "B"}, {Term: "y", Brand: "A"}, {Term: "z", Brand: "B"}}
	if got := rs.Entries(); !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
	if brand, ok := rs.Lookup("X"); !ok || brand != "B" {
		t.Errorf("Lookup(X) = %q, %v, want B, true", brand, ok)
	}
	if rs.Len() != 3 {
		t.Errorf("Len() = %d, want 3", rs.Len())
	}
}

func TestMatch_EndToEndScenario(t *testing.T) {
	results, err := Match(kw("wireless mouse", "logitech mouse", "mouse pad"), brands("Logitech"), nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}

	want := []struct {
		class models.Classification
		brand string
		term  string
	}{
		{models.NonBranded, "<nil>", "<nil>"},
		{models.Branded, "Logitech", "logitech"},
		{models.NonBranded, "<nil>", "<nil>"},
	}
	for i, w := range want {
		r := results[i]
		if r.Classification != w.class || deref(r.MatchedBrand) != w.brand || deref(r.MatchedTerm) != w.term {
			t.Errorf("results[%d] = {%v %s %s}, want {%v %s %s}", i, r.Classification, deref(r.MatchedBrand), deref(r.MatchedTerm), w.class, w.brand, w.term)
		}
	}
}

func TestMatch_Cases(t *testing.T) {
	tests := []struct {
		name    string
		keyword string
		brands  []models.Brand
		rules   []models.ManualRule
		brand   string
		term    string
	}{
		{
			name:    "manual rule beats brand list on same literal",
			keyword: "x cable",
			brands:  brands("x"),
			rules:   []models.ManualRule{{BrandName: "A", Terms: []string{"x"}}},
			brand:   "A",
			term:    "x",
		},
		{
			name:    "short brand does not match inside a word",
			keyword: "space heater",
			brands:  brands("ace"),
			brand:   "<nil>",
			term:    "<nil>",
		},
		{
			name:    "whole word brand matches",
			keyword: "ace pro",
			brands:  brands("ace"),
			brand:   "ace",
			term:    "ace",
		},
		{
			name:    "case-insensitive keeps original brand casing",
			keyword: "ANKER Charger",
			brands:  brands("Anker"),
			brand:   "Anker",
			term:    "anker",
		},
		{
			name:    "first brand in list order wins, not longest",
			keyword: "anker soundcore speaker",
			brands:  brands("Soundcore", "Anker"),
			brand:   "Soundcore",
			term:    "soundcore",
		},
		{
			name:    "first manual term in construction order wins",
			keyword: "nebula capsule by eufy",
			brands:  brands("Anker"),
			rules: []models.ManualRule{
				{BrandName: "Eufy", Terms: []string{"eufy"}},
				{BrandName: "Nebula", Terms: []string{"nebula"}},
			},
			brand: "Eufy",
			term:  "eufy",
		},
		{
			name:    "manual rule miss falls through to brand list",
			keyword: "anker charger",
			brands:  brands("Anker"),
			rules:   []models.ManualRule{{BrandName: "Eufy", Terms: []string{"eufy"}}},
			brand:   "Anker",
			term:    "anker",
		},
		{
			name:    "multi-word brand",
			keyword: "best under armour shoes",
			brands:  brands("Under Armour"),
			brand:   "Under Armour",
			term:    "under armour",
		},
		{
			name:    "hyphen counts as a boundary",
			keyword: "ace-pro",
			brands:  brands("ace"),
			brand:   "ace",
			term:    "ace",
		},
		{
			name:    "blank brand name never matches",
			keyword: "mouse",
			brands:  brands(" "),
			brand:   "<nil>",
			term:    "<nil>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := Match(kw(tt.keyword), tt.brands, tt.rules)
			if err != nil {
				t.Fatalf("Match() error = %v", err)
			}
			r := results[0]
			if deref(r.MatchedBrand) != tt.brand || deref(r.MatchedTerm) != tt.term {
				t.Errorf("Match(%q) = %s/%s, want %s/%s", tt.keyword, deref(r.MatchedBrand), deref(r.MatchedTerm), tt.brand, tt.term)
			}
			if r.IsBranded() != (r.Classification == models.Branded) {
				t.Errorf("classification %v disagrees with matched brand %s", r.Classification, deref(r.MatchedBrand))
			}
		})
	}
}

func TestMatch_MatchedTermIsWholeWordOfKeyword(t *testing.T) {
	keywords := kw("anker powerbank", "spaceace", "the ace of spades", "nebula-mars", "misc")
	results, err := Match(keywords, brands("Anker", "ace"), []models.ManualRule{NewRule("Nebula", "nebula, mars")})
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	for _, r := range results {
		if r.MatchedTerm == nil {
			continue
		}
		if !ContainsWord(r.Keyword, *r.MatchedTerm) {
			t.Errorf("term %q not a whole word of %q", *r.MatchedTerm, r.Keyword)
		}
	}
	if got := Summarize(results); got.Branded != 3 {
		t.Errorf("Branded = %d, want 3", got.Branded)
	}
}

func TestMatch_PreservesOrderAndInputs(t *testing.T) {
	in := kw("b anker", "a", "c anker")
	results, err := Match(in, brands("Anker"), nil)
	if err != nil {
		t.Fatalf("Match() error = %v", err)
	}
	for i := range in {
		if results[i].Keyword != in[i].Keyword || results[i].Row != in[i].Row {
			t.Errorf("results[%d] = %q, want %q", i, results[i].Keyword, in[i].Keyword)
		}
	}
	*results[0].MatchedBrand = "changed"
	if *results[2].MatchedBrand != "Anker" {
		t.Error("results share brand storage")
	}
}

func TestMatch_MissingInput(t *testing.T) {
	tests := []struct {
		name     string
		keywords []models.KeywordRecord
		brands   []models.Brand
	}{
		{"no keywords", nil, brands("Anker")},
		{"no brands", kw("anker"), nil},
		{"neither", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Match(tt.keywords, tt.brands, nil); !errors.Is(err, models.ErrMissingInput) {
				t.Errorf("Match() error = %v, want ErrMissingInput", err)
			}
		})
	}
}

func TestSummaryFilterAndTable(t *testing.T) {
	results, _ := Match(kw("anker a", "eufy b", "plain", "anker c"), brands("Anker", "Eufy"), nil)

	s := Summarize(results)
	if s.Total != 4 || s.Branded != 3 || s.NonBranded != 1 || s.BrandedRate != 0.75 {
		t.Errorf("Summarize() = %+v", s)
	}

	if got := MatchedBrands(results); !reflect.DeepEqual(got, []string{"Anker", "Eufy"}) {
		t.Errorf("MatchedBrands() = %v", got)
	}

	non := models.NonBranded
	if got := (Filter{Classification: &non}).Apply(results); len(got) != 1 || got[0].Keyword != "plain" {
		t.Errorf("Filter(non-branded) = %v", got)
	}
	if got := (Filter{Brand: "Anker"}).Apply(results); len(got) != 2 {
		t.Errorf("Filter(Anker) len = %d, want 2", len(got))
	}
	if got := (Filter{}).Apply(results); len(got) != 4 {
		t.Errorf("Filter{} len = %d, want 4", len(got))
	}

	table := Table(results, models.KeywordColumns{Keyword: "kw", Volume: "vol"})
	if table.Len() != 4 || len(table.Columns) != 6 {
		t.Fatalf("Table() = %d rows %d cols", table.Len(), len(table.Columns))
	}
	if table.Rows[2][ColumnBrandName] != nil || table.Rows[2][ColumnType] != "Non-Branded KWs" {
		t.Errorf("non-branded row = %v", table.Rows[2])
	}
	if table.Rows[1][ColumnBrandName] != "Eufy" || table.Rows[1][ColumnBrandTerm] != "eufy" {
		t.Errorf("branded row = %v", table.Rows[1])
	}
}
