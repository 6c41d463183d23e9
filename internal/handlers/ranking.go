package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"kwbrand/internal/config"
	"kwbrand/internal/metrics"
	"kwbrand/internal/middleware"
	"kwbrand/internal/ranking"
	"kwbrand/internal/tabular"
	"kwbrand/internal/validation"
	"kwbrand/internal/workspace"
)

// RankingHandler serves the keyword ranking page.
type RankingHandler struct {
	cfg      *config.Config
	settings *config.YAMLConfig
}

// NewRankingHandler creates a new ranking handler.
func NewRankingHandler(cfg *config.Config, settings *config.YAMLConfig) *RankingHandler {
	return &RankingHandler{cfg: cfg, settings: settings}
}

// Index renders the ranking of the workspace's keyword table.
func (h *RankingHandler) Index(c fiber.Ctx) error {
	return c.Render("index", h.data(c, middleware.Workspace(c), ""))
}

func (h *RankingHandler) data(c fiber.Ctx, ws *workspace.Workspace, errMsg string) fiber.Map {
	threshold := h.settings.Coverage
	if v, err := strconv.ParseFloat(c.Query("threshold"), 64); err == nil {
		if ok, _ := validation.ValidateThreshold(v); ok {
			threshold = v
		}
	}

	data := fiber.Map{
		"Title":     "Keyword Ranking",
		"Error":     errMsg,
		"Threshold": threshold,
		"Columns":   h.settings.KeywordColumns(),
		"SkipRows":  h.settings.SkipRows(),
	}

	if ks := ws.Keywords(); ks != nil {
		data["File"] = ks.File
		data["Dropped"] = ks.Dropped
		data["Ranked"] = ks.Ranked
		data["Summary"] = ranking.Summarize(ks.Ranked)
		if rank, ok := ranking.CoverageRank(ks.Ranked, threshold); ok {
			data["CoverageRank"] = rank
		}
	}
	return page(c, h.cfg, "ranking", data)
}

// Upload ingests a keyword table and ranks it.
func (h *RankingHandler) Upload(c fiber.Ctx) error {
	ws := middleware.Workspace(c)

	ks, err := h.load(c)
	if err != nil {
		metrics.RecordOperation(metrics.OpRank, 0, err)
		if msg, ok := userMessage(err); ok {
			return c.Status(fiber.StatusUnprocessableEntity).Render("index", h.data(c, ws, msg))
		}
		return err
	}
	metrics.RecordOperation(metrics.OpRank, len(ks.Ranked), nil)

	ws.SetKeywords(ks)
	return c.Redirect().To("/")
}

func (h *RankingHandler) load(c fiber.Ctx) (*workspace.KeywordSet, error) {
	fh, _ := c.FormFile("file")
	data, err := validation.ReadUpload(fh, int64(h.cfg.MaxUploadBytes()), validation.SpreadsheetExtensions)
	if err != nil {
		return nil, err
	}

	table, err := tabular.Read(fh.Filename, data, tabular.ReadOptions{SkipRows: h.settings.SkipRows()})
	if err != nil {
		return nil, err
	}
	records, dropped, err := tabular.KeywordRecords(table, h.settings.KeywordColumns())
	if err != nil {
		return nil, err
	}
	ranked, err := ranking.Rank(records)
	if err != nil {
		return nil, err
	}

	return &workspace.KeywordSet{
		File:    fh.Filename,
		Records: records,
		Ranked:  ranked,
		Dropped: dropped,
	}, nil
}
