package handlers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v3"

	"kwbrand/internal/config"
	"kwbrand/internal/matching"
	"kwbrand/internal/metrics"
	"kwbrand/internal/middleware"
	"kwbrand/internal/models"
	"kwbrand/internal/tabular"
	"kwbrand/internal/workspace"
)

// MatchHandler runs brand matching and shows its results.
type MatchHandler struct {
	cfg      *config.Config
	settings *config.YAMLConfig
	now      func() time.Time
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(cfg *config.Config, settings *config.YAMLConfig) *MatchHandler {
	return &MatchHandler{cfg: cfg, settings: settings, now: time.Now}
}

// filterFromQuery reads the ?type= and ?brand= result filters.
func filterFromQuery(c fiber.Ctx) matching.Filter {
	var f matching.Filter
	if class, ok := models.ParseClassification(c.Query("type")); ok {
		f.Classification = &class
	}
	f.Brand = c.Query("brand")
	return f
}

// Show renders the last match results with optional filters.
func (h *MatchHandler) Show(c fiber.Ctx) error {
	return c.Render("match", h.data(c, middleware.Workspace(c), ""))
}

func (h *MatchHandler) data(c fiber.Ctx, ws *workspace.Workspace, errMsg string) fiber.Map {
	results := ws.Results()
	filter := filterFromQuery(c)

	data := fiber.Map{
		"Title":      "Brand Matching",
		"Error":      errMsg,
		"Columns":    h.settings.KeywordColumns(),
		"HasResults": len(results) > 0,
		"Summary":    matching.Summarize(results),
		"Results":    filter.Apply(results),
		"Brands":     matching.MatchedBrands(results),
		"Type":       c.Query("type"),
		"Brand":      filter.Brand,
		"Filtered":   filter.Classification != nil || filter.Brand != "",
		"RuleCount":  len(ws.Rules()),
		"Query":      url.Values{"type": {c.Query("type")}, "brand": {filter.Brand}}.Encode(),
	}
	if ks := ws.Keywords(); ks != nil {
		data["KeywordFile"] = ks.File
	}
	if bs := ws.Brands(); bs != nil {
		data["BrandFile"] = bs.File
	}
	return page(c, h.cfg, "match", data)
}

// Run matches the workspace keywords against its brands and rules.
func (h *MatchHandler) Run(c fiber.Ctx) error {
	ws := middleware.Workspace(c)

	var records []models.KeywordRecord
	if ks := ws.Keywords(); ks != nil {
		records = ks.Records
	}
	var brands []models.Brand
	if bs := ws.Brands(); bs != nil {
		brands = bs.Brands
	}

	results, err := matching.Match(records, brands, ws.Rules())
	metrics.RecordOperation(metrics.OpMatch, len(results), err)
	if err != nil {
		if msg, ok := userMessage(err); ok {
			return c.Status(fiber.StatusUnprocessableEntity).Render("match", h.data(c, ws, msg))
		}
		return err
	}

	ws.SetResults(results)
	return c.Redirect().To("/match")
}

// Download exports every match result as an xlsx workbook, or only the
// filtered rows when ?type= or ?brand= is given.
func (h *MatchHandler) Download(c fiber.Ctx) error {
	results := middleware.Workspace(c).Results()
	if len(results) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "no match results to download")
	}

	table := matching.Table(filterFromQuery(c).Apply(results), h.settings.KeywordColumns())
	data, err := tabular.WriteXLSX(table, matchExportPrefix)
	if err != nil {
		return err
	}

	c.Attachment(exportName(matchExportPrefix, "20060102", ".xlsx", h.now()))
	return c.Send(data)
}
