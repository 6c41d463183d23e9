package api

import (
	"github.com/gofiber/fiber/v3"

	"kwbrand/internal/config"
	"kwbrand/internal/merge"
	"kwbrand/internal/metrics"
	"kwbrand/internal/models"
	"kwbrand/internal/tabular"
	"kwbrand/internal/validation"
)

// MergeHandler runs batch merges via JSON API.
type MergeHandler struct {
	cfg      *config.Config
	settings *config.YAMLConfig
}

// NewMergeHandler creates a new API merge handler.
func NewMergeHandler(cfg *config.Config, settings *config.YAMLConfig) *MergeHandler {
	return &MergeHandler{cfg: cfg, settings: settings}
}

// Files merges the multipart "files" spreadsheets.
func (h *MergeHandler) Files(c fiber.Ctx) error {
	return h.run(c, metrics.OpMergeFiles, merge.Files)
}

// Archives merges the multipart "files" zip archives.
func (h *MergeHandler) Archives(c fiber.Ctx) error {
	return h.run(c, metrics.OpMergeArchive, merge.Archives)
}

// run answers 200 even when nothing could be merged; merged is then 0 and
// failed lists every file.
func (h *MergeHandler) run(c fiber.Ctx, op string, batch func([]merge.Upload, string, tabular.ReadOptions) *merge.Result) error {
	form, err := c.MultipartForm()
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "expected a multipart form with files")
	}
	uploads, err := validation.ReadAll(form.File["files"])
	if err != nil {
		return jsonFailure(c, err)
	}

	column := h.settings.Columns.Provenance
	res := batch(uploads, column, tabular.ReadOptions{MaxEntryBytes: h.cfg.MaxArchiveEntryBytes()})
	metrics.RecordMergeFiles(res.Merged, len(res.Failed))

	resp := models.MergeResponse{
		Merged: res.Merged,
		Failed: res.Failed,
	}
	if resp.Failed == nil {
		resp.Failed = []models.FileFailure{}
	}
	if !res.Empty() {
		resp.Columns = res.Table.Columns
		resp.Rows = make([]map[string]any, len(res.Table.Rows))
		for i, row := range res.Table.Rows {
			resp.Rows[i] = row
		}
		resp.Labels = merge.LabelCounts(res.Table, column)
	}
	metrics.RecordOperation(op, len(resp.Rows), nil)

	return jsonSuccess(c, resp)
}
