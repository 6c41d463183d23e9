package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"kwbrand/internal/dedup"
	"kwbrand/internal/metrics"
)

// DedupHandler dedupes identifiers via JSON API.
type DedupHandler struct{}

// NewDedupHandler creates a new API dedup handler.
func NewDedupHandler() *DedupHandler {
	return &DedupHandler{}
}

// Dedup accepts {"text": "..."} and returns the unique identifiers.
func (h *DedupHandler) Dedup(c fiber.Ctx) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	res, err := dedup.Identifiers(body.Text)
	metrics.RecordOperation(metrics.OpDedup, res.UniqueCount, err)
	if err != nil {
		return jsonFailure(c, err)
	}

	return jsonSuccess(c, fiber.Map{
		"original_count": res.OriginalCount,
		"unique_count":   res.UniqueCount,
		"removed":        res.Removed(),
		"unique_list":    res.Unique,
		"joined":         res.Joined(),
	})
}
