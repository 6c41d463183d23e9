package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"kwbrand/internal/config"
	"kwbrand/internal/matching"
	"kwbrand/internal/metrics"
	"kwbrand/internal/models"
	"kwbrand/internal/tabular"
	"kwbrand/internal/validation"
)

// MatchHandler runs brand matching via JSON API.
type MatchHandler struct {
	cfg      *config.Config
	settings *config.YAMLConfig
}

// NewMatchHandler creates a new API match handler.
func NewMatchHandler(cfg *config.Config, settings *config.YAMLConfig) *MatchHandler {
	return &MatchHandler{cfg: cfg, settings: settings}
}

// Match accepts multipart "keywords" and "brands" files and an optional
// "rules" field holding a JSON array of manual rules. The configured preset
// rules come first.
func (h *MatchHandler) Match(c fiber.Ctx) error {
	var extra []models.ManualRule
	if raw := c.FormValue("rules"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &extra); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "rules must be a JSON array of {brand_name, match_terms}")
		}
	}
	rules := append(append([]models.ManualRule(nil), h.settings.PresetRules...), extra...)

	records, _, err := readKeywords(c, "keywords", h.cfg, h.settings, h.settings.SkipRows())
	if err != nil {
		return jsonFailure(c, err)
	}
	brands, err := h.readBrands(c)
	if err != nil {
		return jsonFailure(c, err)
	}

	results, err := matching.Match(records, brands, rules)
	metrics.RecordOperation(metrics.OpMatch, len(results), err)
	if err != nil {
		return jsonFailure(c, err)
	}

	filter := matching.Filter{Brand: c.Query("brand")}
	if class, ok := models.ParseClassification(c.Query("type")); ok {
		filter.Classification = &class
	}

	summary := matching.Summarize(results)
	return jsonSuccess(c, models.MatchResponse{
		Total:       summary.Total,
		Branded:     summary.Branded,
		NonBranded:  summary.NonBranded,
		BrandedRate: summary.BrandedRate,
		Results:     filter.Apply(results),
	})
}

func (h *MatchHandler) readBrands(c fiber.Ctx) ([]models.Brand, error) {
	fh, _ := c.FormFile("brands")
	data, err := validation.ReadUpload(fh, int64(h.cfg.MaxUploadBytes()), validation.SpreadsheetExtensions)
	if err != nil {
		return nil, err
	}
	table, err := tabular.Read(fh.Filename, data, tabular.ReadOptions{})
	if err != nil {
		return nil, err
	}
	return tabular.Brands(table, h.settings.Columns.Brand)
}
