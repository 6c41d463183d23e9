package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"kwbrand/internal/config"
	"kwbrand/internal/merge"
	"kwbrand/internal/metrics"
	"kwbrand/internal/middleware"
	"kwbrand/internal/tabular"
	"kwbrand/internal/validation"
)

// previewRows caps the merged rows rendered on the page.
const previewRows = 50

// MergeHandler serves the batch merge tool.
type MergeHandler struct {
	cfg      *config.Config
	settings *config.YAMLConfig
	now      func() time.Time
}

// NewMergeHandler creates a new merge handler.
func NewMergeHandler(cfg *config.Config, settings *config.YAMLConfig) *MergeHandler {
	return &MergeHandler{cfg: cfg, settings: settings, now: time.Now}
}

// Show renders the upload forms and the last merge.
func (h *MergeHandler) Show(c fiber.Ctx) error {
	return c.Render("merge", h.data(c, middleware.Workspace(c).Merged(), ""))
}

func (h *MergeHandler) data(c fiber.Ctx, res *merge.Result, errMsg string) fiber.Map {
	data := fiber.Map{
		"Title":  "Batch Merge",
		"Error":  errMsg,
		"Column": h.settings.Columns.Provenance,
	}
	if res != nil {
		data["Result"] = res
		data["Empty"] = res.Empty()
		if !res.Empty() {
			rows := res.Table.Rows
			if len(rows) > previewRows {
				rows = rows[:previewRows]
			}
			data["Columns"] = res.Table.Columns
			data["Preview"] = rows
			data["TotalRows"] = res.Table.Len()
			data["Labels"] = merge.LabelCounts(res.Table, h.settings.Columns.Provenance)
		}
	}
	return page(c, h.cfg, "merge", data)
}

// Files merges plain spreadsheet and CSV uploads.
func (h *MergeHandler) Files(c fiber.Ctx) error {
	return h.run(c, metrics.OpMergeFiles, merge.Files)
}

// Archives merges zip uploads.
func (h *MergeHandler) Archives(c fiber.Ctx) error {
	return h.run(c, metrics.OpMergeArchive, merge.Archives)
}

func (h *MergeHandler) run(c fiber.Ctx, op string, batch func([]merge.Upload, string, tabular.ReadOptions) *merge.Result) error {
	ws := middleware.Workspace(c)

	uploads, err := h.uploads(c)
	if err != nil {
		if msg, ok := userMessage(err); ok {
			return c.Status(fiber.StatusBadRequest).Render("merge", h.data(c, nil, msg))
		}
		return err
	}

	res := batch(uploads, h.settings.Columns.Provenance, tabular.ReadOptions{MaxEntryBytes: h.cfg.MaxArchiveEntryBytes()})
	metrics.RecordMergeFiles(res.Merged, len(res.Failed))
	rows := 0
	if !res.Empty() {
		rows = res.Table.Len()
	}
	metrics.RecordOperation(op, rows, nil)

	ws.SetMerged(res)
	return c.Render("merge", h.data(c, res, ""))
}

func (h *MergeHandler) uploads(c fiber.Ctx) ([]merge.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return validation.ReadAll(nil)
	}
	return validation.ReadAll(form.File["files"])
}

// Download exports the last merge as xlsx or csv (?format=).
func (h *MergeHandler) Download(c fiber.Ctx) error {
	res := middleware.Workspace(c).Merged()
	if res == nil || res.Empty() {
		return fiber.NewError(fiber.StatusNotFound, "no merged data to download")
	}

	var (
		data []byte
		ext  string
		err  error
	)
	switch c.Query("format", "xlsx") {
	case "xlsx":
		data, err = tabular.WriteXLSX(res.Table, mergeExportPrefix)
		ext = ".xlsx"
	case "csv":
		data, err = tabular.WriteCSV(res.Table)
		ext = ".csv"
	default:
		return fiber.NewError(fiber.StatusBadRequest, "format must be xlsx or csv")
	}
	if err != nil {
		return err
	}

	c.Attachment(exportName(mergeExportPrefix, "20060102_150405", ext, h.now()))
	return c.Send(data)
}

