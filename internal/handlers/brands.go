package handlers

import (
	"github.com/gofiber/fiber/v3"

	"kwbrand/internal/config"
	"kwbrand/internal/matching"
	"kwbrand/internal/middleware"
	"kwbrand/internal/tabular"
	"kwbrand/internal/validation"
	"kwbrand/internal/workspace"
)

// BrandHandler manages the brand list and manual rules.
type BrandHandler struct {
	cfg      *config.Config
	settings *config.YAMLConfig
}

// NewBrandHandler creates a new brand handler.
func NewBrandHandler(cfg *config.Config, settings *config.YAMLConfig) *BrandHandler {
	return &BrandHandler{cfg: cfg, settings: settings}
}

// Show renders the brand list and rule editor.
func (h *BrandHandler) Show(c fiber.Ctx) error {
	return c.Render("brands", h.data(c, middleware.Workspace(c), ""))
}

func (h *BrandHandler) data(c fiber.Ctx, ws *workspace.Workspace, errMsg string) fiber.Map {
	data := fiber.Map{
		"Title":       "Brands",
		"Error":       errMsg,
		"BrandColumn": h.settings.Columns.Brand,
	}
	if bs := ws.Brands(); bs != nil {
		data["File"] = bs.File
		data["Brands"] = bs.Brands
	}
	return page(c, h.cfg, "brands", h.rulesData(ws, data))
}

func (h *BrandHandler) rulesData(ws *workspace.Workspace, data fiber.Map) fiber.Map {
	rules := ws.Rules()
	data["Rules"] = rules
	data["RuleIndex"] = matching.NewRuleSet(rules).Entries()
	return data
}

// Upload ingests the brand list.
func (h *BrandHandler) Upload(c fiber.Ctx) error {
	ws := middleware.Workspace(c)

	bs, err := h.load(c)
	if err != nil {
		if msg, ok := userMessage(err); ok {
			return c.Status(fiber.StatusUnprocessableEntity).Render("brands", h.data(c, ws, msg))
		}
		return err
	}

	ws.SetBrands(bs)
	return c.Redirect().To("/brands")
}

func (h *BrandHandler) load(c fiber.Ctx) (*workspace.BrandSet, error) {
	fh, _ := c.FormFile("file")
	data, err := validation.ReadUpload(fh, int64(h.cfg.MaxUploadBytes()), validation.SpreadsheetExtensions)
	if err != nil {
		return nil, err
	}

	table, err := tabular.Read(fh.Filename, data, tabular.ReadOptions{})
	if err != nil {
		return nil, err
	}
	brands, err := tabular.Brands(table, h.settings.Columns.Brand)
	if err != nil {
		return nil, err
	}
	return &workspace.BrandSet{File: fh.Filename, Brands: brands}, nil
}

// AddRule adds a manual brand rule from the form.
func (h *BrandHandler) AddRule(c fiber.Ctx) error {
	ws := middleware.Workspace(c)
	brand := c.FormValue("brand")
	terms := c.FormValue("terms")

	if valid, msg := validation.ValidateRule(brand, terms); !valid {
		if isHTMX(c) {
			c.Set("HX-Retarget", "#rule-error")
			c.Set("HX-Reswap", "innerHTML")
			return htmxError(c, msg)
		}
		return c.Status(fiber.StatusBadRequest).Render("brands", h.data(c, ws, msg))
	}

	ws.AddRule(matching.NewRule(brand, terms))
	return h.rulesResponse(c, ws)
}

// ClearRules removes every manual rule.
func (h *BrandHandler) ClearRules(c fiber.Ctx) error {
	ws := middleware.Workspace(c)
	ws.ClearRules()
	return h.rulesResponse(c, ws)
}

func (h *BrandHandler) rulesResponse(c fiber.Ctx, ws *workspace.Workspace) error {
	if isHTMX(c) {
		return c.Render("partials/rules", h.rulesData(ws, fiber.Map{}), "")
	}
	return c.Redirect().To("/brands")
}
