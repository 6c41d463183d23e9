package handlers

import (
	"github.com/gofiber/fiber/v3"

	"kwbrand/internal/config"
	"kwbrand/internal/dedup"
	"kwbrand/internal/metrics"
	"kwbrand/internal/middleware"
)

// DedupHandler serves the identifier dedupe tool.
type DedupHandler struct {
	cfg *config.Config
}

// NewDedupHandler creates a new dedup handler.
func NewDedupHandler(cfg *config.Config) *DedupHandler {
	return &DedupHandler{cfg: cfg}
}

// Show renders the dedupe form and the last result.
func (h *DedupHandler) Show(c fiber.Ctx) error {
	return c.Render("dedup", page(c, h.cfg, "dedup", fiber.Map{
		"Title":  "Identifier Dedup",
		"Result": middleware.Workspace(c).Dedup(),
	}))
}

// Run dedupes the pasted identifiers.
func (h *DedupHandler) Run(c fiber.Ctx) error {
	ws := middleware.Workspace(c)
	text := c.FormValue("text")

	res, err := dedup.Identifiers(text)
	metrics.RecordOperation(metrics.OpDedup, res.UniqueCount, err)
	if err != nil {
		msg, ok := userMessage(err)
		if !ok {
			return err
		}
		if isHTMX(c) {
			return htmxError(c, msg)
		}
		return c.Status(fiber.StatusBadRequest).Render("dedup", page(c, h.cfg, "dedup", fiber.Map{
			"Title": "Identifier Dedup",
			"Error": msg,
			"Text":  text,
		}))
	}

	ws.SetDedup(&res)
	if isHTMX(c) {
		return c.Render("partials/dedup_result", fiber.Map{"Result": &res}, "")
	}
	return c.Render("dedup", page(c, h.cfg, "dedup", fiber.Map{
		"Title":  "Identifier Dedup",
		"Result": &res,
		"Text":   text,
	}))
}
