package api

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"kwbrand/internal/config"
	"kwbrand/internal/metrics"
	"kwbrand/internal/models"
	"kwbrand/internal/ranking"
	"kwbrand/internal/tabular"
	"kwbrand/internal/validation"
)

// RankHandler ranks an uploaded keyword table via JSON API.
type RankHandler struct {
	cfg      *config.Config
	settings *config.YAMLConfig
}

// NewRankHandler creates a new API rank handler.
func NewRankHandler(cfg *config.Config, settings *config.YAMLConfig) *RankHandler {
	return &RankHandler{cfg: cfg, settings: settings}
}

// Rank accepts a multipart "file" plus optional "threshold" and "skip_rows"
// fields and returns the ranked keywords.
func (h *RankHandler) Rank(c fiber.Ctx) error {
	threshold := h.settings.Coverage
	if v := c.FormValue("threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "threshold must be a number")
		}
		if ok, msg := validation.ValidateThreshold(f); !ok {
			return jsonError(c, fiber.StatusBadRequest, msg)
		}
		threshold = f
	}

	skipRows := h.settings.SkipRows()
	if v := c.FormValue("skip_rows"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return jsonError(c, fiber.StatusBadRequest, "skip_rows must be a non-negative integer")
		}
		skipRows = n
	}

	records, dropped, err := readKeywords(c, "file", h.cfg, h.settings, skipRows)
	if err != nil {
		metrics.RecordOperation(metrics.OpRank, 0, err)
		return jsonFailure(c, err)
	}

	ranked, err := ranking.Rank(records)
	metrics.RecordOperation(metrics.OpRank, len(ranked), err)
	if err != nil {
		return jsonFailure(c, err)
	}

	summary := ranking.Summarize(ranked)
	resp := models.RankResponse{
		Keywords:    summary.Keywords,
		Dropped:     dropped,
		TotalVolume: summary.TotalVolume,
		MeanVolume:  summary.MeanVolume,
		Threshold:   threshold,
		Ranked:      ranked,
	}
	if rank, ok := ranking.CoverageRank(ranked, threshold); ok {
		resp.CoverageRank = &rank
	}
	return jsonSuccess(c, resp)
}

// readKeywords reads the keyword table uploaded under field.
func readKeywords(c fiber.Ctx, field string, cfg *config.Config, settings *config.YAMLConfig, skipRows int) ([]models.KeywordRecord, int, error) {
	fh, _ := c.FormFile(field)
	data, err := validation.ReadUpload(fh, int64(cfg.MaxUploadBytes()), validation.SpreadsheetExtensions)
	if err != nil {
		return nil, 0, err
	}
	table, err := tabular.Read(fh.Filename, data, tabular.ReadOptions{SkipRows: skipRows})
	if err != nil {
		return nil, 0, err
	}
	return tabular.KeywordRecords(table, settings.KeywordColumns())
}
