package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/vieduardo/presentes/internal/imaging"
	"github.com/vieduardo/presentes/internal/store"
)

// ImagesHandler handles gift image uploads and serving.
type ImagesHandler struct {
	DB *sql.DB
}

// maxUploadSize caps image uploads at 10 MiB before processing.
const maxUploadSize = 10 << 20

// Upload handles POST /api/images requests. The image is downscaled and
// re-encoded before storage, and the response carries the path it will be
// served from.
func (h *ImagesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "missing image")
		return
	}
	defer file.Close()

	processed, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	path := imaging.StoragePath(name, time.Now())
	if err := store.SaveImage(r.Context(), h.DB, path, processed.Data, processed.MIME); err != nil {
		slog.Error("failed to save image", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"url": "/images/" + path})
}

// Serve handles GET /images/{path} requests.
func (h *ImagesHandler) Serve(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetImage(r.Context(), h.DB, r.PathValue("path"))
	if err != nil {
		slog.Error("failed to get image", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}
