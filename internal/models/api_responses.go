package models

// RankResponse is the JSON body returned by the ranking endpoint.
type RankResponse struct {
	Keywords     int             `json:"keywords"`
	Dropped      int             `json:"dropped"`
	TotalVolume  float64         `json:"total_volume"`
	MeanVolume   float64         `json:"mean_volume"`
	Threshold    float64         `json:"coverage_threshold"`
	CoverageRank *int            `json:"coverage_rank"`
	Ranked       []RankedKeyword `json:"ranked"`
}

// MatchResponse is the JSON body returned by the brand matching endpoint.
type MatchResponse struct {
	Total       int           `json:"total"`
	Branded     int           `json:"branded"`
	NonBranded  int           `json:"non_branded"`
	BrandedRate float64       `json:"branded_rate"`
	Results     []MatchResult `json:"results"`
}

// FileFailure records an uploaded file that was left out of a batch.
type FileFailure struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// LabelCount is the number of merged rows carrying one provenance label.
type LabelCount struct {
	Label string `json:"label"`
	Rows  int    `json:"rows"`
}

// MergeResponse is the JSON body returned by the batch merge endpoints.
type MergeResponse struct {
	Merged  int              `json:"merged"`
	Failed  []FileFailure    `json:"failed"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Labels  []LabelCount     `json:"labels"`
}
