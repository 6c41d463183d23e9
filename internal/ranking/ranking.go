// Package ranking orders keywords by monthly search volume and computes how
// much of the total volume the top keywords cover.
package ranking

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"kwbrand/internal/models"
	"kwbrand/internal/tabular"
)

// DefaultCoverageThreshold is the cumulative share reported as the
// "coverage rank" on the ranking page.
const DefaultCoverageThreshold = 0.6

// Frame column names used while sorting.
const (
	frameRow    = "row"
	frameVolume = "volume"
)

// Rank sorts records by volume descending (ties keep input order) and assigns
// ranks 1..N with running volume totals and shares. Records with a volume
// that is not positive are ignored.
func Rank(records []models.KeywordRecord) ([]models.RankedKeyword, error) {
	rows := make([]int, 0, len(records))
	volumes := make([]float64, 0, len(records))
	for i, r := range records {
		if r.Volume > 0 {
			rows = append(rows, i)
			volumes = append(volumes, r.Volume)
		}
	}
	if len(rows) == 0 {
		return nil, models.ErrEmptyDataset
	}

	// Arrange sorts stably, so equal volumes stay in upload order.
	df := dataframe.New(
		series.New(rows, series.Int, frameRow),
		series.New(volumes, series.Float, frameVolume),
	).Arrange(dataframe.RevSort(frameVolume))
	if df.Err != nil {
		return nil, fmt.Errorf("sort keywords by volume: %w", df.Err)
	}

	order, err := df.Col(frameRow).Int()
	if err != nil {
		return nil, fmt.Errorf("read sorted rows: %w", err)
	}
	sorted := df.Col(frameVolume).Float()

	cumulative := make([]float64, len(sorted))
	var running float64
	for i, v := range sorted {
		running += v
		cumulative[i] = running
	}
	total := cumulative[len(cumulative)-1]

	ranked := make([]models.RankedKeyword, len(order))
	for i, row := range order {
		ranked[i] = models.RankedKeyword{
			KeywordRecord:    records[row],
			Rank:             i + 1,
			CumulativeVolume: cumulative[i],
			CumulativeShare:  cumulative[i] / total,
		}
	}
	// Summation order can leave the last share a hair off 1.
	ranked[len(ranked)-1].CumulativeShare = 1

	return ranked, nil
}

// CoverageRank returns the smallest rank whose cumulative share reaches the
// threshold. ok is false when no rank does.
func CoverageRank(ranked []models.RankedKeyword, threshold float64) (rank int, ok bool) {
	for _, r := range ranked {
		if r.CumulativeShare >= threshold {
			return r.Rank, true
		}
	}
	return 0, false
}

// Summary holds the headline numbers shown next to the ranking table.
type Summary struct {
	Keywords    int     `json:"keywords"`
	TotalVolume float64 `json:"total_volume"`
	MeanVolume  float64 `json:"mean_volume"`
}

// Summarize computes count, total and mean volume of a ranking.
func Summarize(ranked []models.RankedKeyword) Summary {
	s := Summary{Keywords: len(ranked)}
	if len(ranked) == 0 {
		return s
	}
	s.TotalVolume = ranked[len(ranked)-1].CumulativeVolume
	s.MeanVolume = s.TotalVolume / float64(len(ranked))
	return s
}

// Export column names for ranking tables.
const (
	ColumnRank             = "Rank"
	ColumnCumulativeVolume = "Cumulative Volume"
	ColumnCumulativeShare  = "Cumulative Share"
)

// Table lays a ranking out for display and export, using the source table's
// keyword and volume column names.
func Table(ranked []models.RankedKeyword, cols models.KeywordColumns) *tabular.Table {
	t := tabular.NewTable("ranking", ColumnRank, cols.Keyword, cols.Volume, ColumnCumulativeVolume, ColumnCumulativeShare)
	for _, r := range ranked {
		t.Append(tabular.Row{
			ColumnRank:             r.Rank,
			cols.Keyword:           r.Keyword,
			cols.Volume:            r.Volume,
			ColumnCumulativeVolume: r.CumulativeVolume,
			ColumnCumulativeShare:  r.CumulativeShare,
		})
	}
	return t
}
