package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// WorkspaceCounter reports the number of live workspaces.
type WorkspaceCounter interface {
	Len() int
}

// ProbeHandler handles Kubernetes health probe endpoints.
type ProbeHandler struct {
	store WorkspaceCounter
}

// NewProbeHandler creates a new probe handler.
func NewProbeHandler(store WorkspaceCounter) *ProbeHandler {
	return &ProbeHandler{store: store}
}

// Liveness handles the /healthz endpoint for Kubernetes liveness probes.
func (h *ProbeHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}

// Readiness handles the /readyz endpoint. The service keeps no external
// state, so it is ready whenever it is alive; the workspace count is
// reported for operators.
func (h *ProbeHandler) Readiness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "ok",
		"workspaces": h.store.Len(),
	})
}
