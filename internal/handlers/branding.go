package handlers

import (
	"github.com/gofiber/fiber/v3"

	"kwbrand/internal/config"
)

// MergeBranding adds the site title, tagline, footer and logo from config
// to the template data.
func MergeBranding(data fiber.Map, cfg *config.Config) fiber.Map {
	data["SiteTitle"] = cfg.SiteTitle
	data["SiteTagline"] = cfg.SiteTagline
	data["SiteFooter"] = cfg.SiteFooter
	data["SiteLogoURL"] = cfg.SiteLogoURL
	return data
}
