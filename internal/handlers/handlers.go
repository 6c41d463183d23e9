package handlers

import (
	"errors"
	"html"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"kwbrand/internal/config"
	"kwbrand/internal/middleware"
	"kwbrand/internal/models"
)

// Download file name prefixes, as the analysts' spreadsheets are named.
const (
	matchExportPrefix = "品牌匹配结果"
	mergeExportPrefix = "批量合并结果"
)

// htmxError returns an error message as HTML that HTMX will display.
// Uses 200 status so HTMX processes the swap (HTMX ignores non-2xx by default).
func htmxError(c fiber.Ctx, message string) error {
	return c.SendString(
		`<div class="alert alert-error">` + html.EscapeString(message) + `</div>`,
	)
}

func isHTMX(c fiber.Ctx) bool {
	return c.Get("HX-Request") == "true"
}

// page builds the template data shared by every full page.
func page(c fiber.Ctx, cfg *config.Config, active string, data fiber.Map) fiber.Map {
	data["Active"] = active
	data["User"] = middleware.CurrentUser(c)
	data["AuthEnabled"] = cfg.AuthEnabled()
	return MergeBranding(data, cfg)
}

// userMessage turns an input error into text for the page. ok is false for
// server-side errors, which the caller should return as is.
func userMessage(err error) (string, bool) {
	if !models.IsInputError(err) {
		return "", false
	}

	var mce *models.MissingColumnError
	switch {
	case errors.As(err, &mce):
		return "Missing required columns: " + strings.Join(mce.Missing, ", ") +
			". Columns found in the file: " + strings.Join(mce.Detected, ", "), true
	case errors.Is(err, models.ErrEmptyDataset):
		return "No rows with a valid monthly search volume were found.", true
	case errors.Is(err, models.ErrMissingInput):
		return "Upload both a keyword table and a brand list before matching.", true
	case errors.Is(err, models.ErrEmptyInput):
		return "Paste at least one identifier.", true
	}
	return err.Error(), true
}

// exportName builds a download file name from a prefix, a timestamp layout
// and an extension.
func exportName(prefix, layout, ext string, now time.Time) string {
	return prefix + "_" + now.Format(layout) + ext
}
