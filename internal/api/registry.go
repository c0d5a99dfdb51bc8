package api

import (
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/vieduardo/presentes/internal/registry"
	"github.com/vieduardo/presentes/internal/store"
)

// RegistryHandler handles bulk import and export of the gift catalog.
type RegistryHandler struct {
	DB   *sql.DB
	Cols *store.GiftColumns
}

// maxImportSize caps the uploaded JSON file at 5 MiB.
const maxImportSize = 5 << 20

// Import handles POST /api/gifts/import requests. The multipart "file" part
// must be a JSON array of gift entries; the response reports per-item results
// so a partially valid file still imports its good entries.
func (h *RegistryHandler) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.Contains(contentType, "json") && !strings.HasSuffix(strings.ToLower(header.Filename), ".json") {
		jsonError(w, http.StatusBadRequest, "file must be JSON")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		slog.Error("failed to read import file", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	result, gifts := registry.Import(r.Context(), h.DB, h.Cols, data)
	slog.Info("imported gifts", "total", result.Total, "success", result.Success, "errors", len(result.Errors))

	jsonResponse(w, http.StatusOK, map[string]any{
		"result": result,
		"gifts":  gifts,
	})
}

// Export handles GET /api/gifts/export requests, serving the full catalog as
// a dated JSON attachment.
func (h *RegistryHandler) Export(w http.ResponseWriter, r *http.Request) {
	gifts, err := store.ListGifts(r.Context(), h.DB, h.Cols)
	if err != nil {
		slog.Error("failed to list gifts", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	data, err := registry.Export(gifts)
	if err != nil {
		slog.Error("failed to export gifts", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+registry.ExportFilename(time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Template handles GET /api/gifts/template requests, serving an example
// import file with one entry per room of the house.
func (h *RegistryHandler) Template(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+registry.TemplateFilename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(registry.Template())
}
