package models

// KeywordRecord is one keyword row with a valid (positive) monthly search volume.
type KeywordRecord struct {
	Keyword string  `json:"keyword"`
	Volume  float64 `json:"monthly_search_volume"`
	Row     int     `json:"row"` // 0-based position in the source table
}

// RankedKeyword is a KeywordRecord placed in volume order.
type RankedKeyword struct {
	KeywordRecord
	Rank             int     `json:"rank"`
	CumulativeVolume float64 `json:"cumulative_volume"`
	CumulativeShare  float64 `json:"cumulative_share"`
}

// KeywordColumns names the columns a keyword table must carry.
type KeywordColumns struct {
	Keyword string `yaml:"keyword" json:"keyword"`
	Volume  string `yaml:"volume" json:"volume"`
}
