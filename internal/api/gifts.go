package api

import (
	"bytes"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vieduardo/presentes/internal/catalog"
	"github.com/vieduardo/presentes/internal/config"
	"github.com/vieduardo/presentes/internal/imaging"
	"github.com/vieduardo/presentes/internal/model"
	"github.com/vieduardo/presentes/internal/registry"
	"github.com/vieduardo/presentes/internal/store"
	"github.com/vieduardo/presentes/internal/whatsapp"
)

// GiftsHandler handles gift catalog and reservation requests.
type GiftsHandler struct {
	DB     *sql.DB
	Cols   *store.GiftColumns
	Config *config.Config
}

// List handles GET /api/gifts requests. The catalog is filtered and sorted
// server-side from the q, availability and category query parameters.
func (h *GiftsHandler) List(w http.ResponseWriter, r *http.Request) {
	gifts, err := store.ListGifts(r.Context(), h.DB, h.Cols)
	if err != nil {
		slog.Error("failed to list gifts", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	filter := catalog.Filter{
		Text:         r.URL.Query().Get("q"),
		Availability: r.URL.Query().Get("availability"),
		Category:     r.URL.Query().Get("category"),
	}
	view := catalog.View(gifts, filter)

	jsonResponse(w, http.StatusOK, map[string]any{
		"gifts":  view,
		"counts": catalog.Count(gifts),
	})
}

// Get handles GET /api/gifts/{id} requests.
func (h *GiftsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid gift id")
		return
	}

	gift, err := store.GetGift(r.Context(), h.DB, h.Cols, id)
	if err != nil {
		slog.Error("failed to get gift", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if gift == nil {
		jsonError(w, http.StatusNotFound, "gift not found")
		return
	}

	jsonResponse(w, http.StatusOK, gift)
}

type giftRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageurl"`
	Category    string `json:"category"`
	Reserved    bool   `json:"reserved"`
}

// resolveImage stores inline data-URI images and rewrites the reference to a
// served path. Emoji and URL references pass through untouched.
func (h *GiftsHandler) resolveImage(r *http.Request, name, imageURL string) (string, error) {
	if model.ImageKind(imageURL) != model.ImageKindData {
		return imageURL, nil
	}

	raw, err := imaging.DecodeDataURI(imageURL)
	if err != nil {
		return "", err
	}

	processed, err := imaging.Process(bytes.NewReader(raw))
	if err != nil {
		return "", err
	}

	path := imaging.StoragePath(name, time.Now())
	if err := store.SaveImage(r.Context(), h.DB, path, processed.Data, processed.MIME); err != nil {
		return "", err
	}
	return "/images/" + path, nil
}

// Create handles POST /api/gifts requests.
func (h *GiftsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req giftRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" || req.Description == "" {
		jsonError(w, http.StatusBadRequest, "name and description are required")
		return
	}

	imageURL, err := h.resolveImage(r, req.Name, req.ImageURL)
	if err != nil {
		slog.Warn("failed to process gift image", "error", err)
		jsonError(w, http.StatusBadRequest, "invalid image")
		return
	}
	if imageURL == "" {
		imageURL = registry.DefaultImageURL
	}

	gift, err := store.CreateGift(r.Context(), h.DB, h.Cols, store.GiftDraft{
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    imageURL,
		Category:    req.Category,
		Reserved:    req.Reserved,
	})
	if err != nil {
		slog.Error("failed to create gift", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusCreated, gift)
}

// Update handles PUT /api/gifts/{id} requests.
func (h *GiftsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid gift id")
		return
	}

	existing, err := store.GetGift(r.Context(), h.DB, h.Cols, id)
	if err != nil {
		slog.Error("failed to get gift", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "gift not found")
		return
	}

	var req giftRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" || req.Description == "" {
		jsonError(w, http.StatusBadRequest, "name and description are required")
		return
	}

	imageURL, err := h.resolveImage(r, req.Name, req.ImageURL)
	if err != nil {
		slog.Warn("failed to process gift image", "error", err)
		jsonError(w, http.StatusBadRequest, "invalid image")
		return
	}
	if imageURL == "" {
		imageURL = existing.ImageURL
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.ImageURL = imageURL
	existing.Category = req.Category
	existing.Reserved = req.Reserved

	gift, err := store.UpdateGift(r.Context(), h.DB, h.Cols, *existing)
	if err != nil {
		slog.Error("failed to update gift", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, gift)
}

// Delete handles DELETE /api/gifts/{id} requests.
func (h *GiftsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid gift id")
		return
	}

	gift, err := store.GetGift(r.Context(), h.DB, h.Cols, id)
	if err != nil {
		slog.Error("failed to get gift", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if gift == nil {
		jsonError(w, http.StatusNotFound, "gift not found")
		return
	}

	if err := store.DeleteGift(r.Context(), h.DB, id); err != nil {
		slog.Error("failed to delete gift", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "gift deleted"})
}

// Reserve handles POST /api/gifts/{id}/reserve requests. A successful
// reservation returns the updated gift and a prefilled WhatsApp link for the
// guest to confirm with the couple.
func (h *GiftsHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid gift id")
		return
	}

	var req struct {
		Name    string `json:"name"`
		Contact string `json:"contact"`
		Message string `json:"message"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Contact = strings.TrimSpace(req.Contact)
	if req.Name == "" || req.Contact == "" {
		jsonError(w, http.StatusBadRequest, "name and contact are required")
		return
	}

	gift, err := store.ReserveGift(r.Context(), h.DB, h.Cols, id, req.Name, req.Contact, req.Message)
	if errors.Is(err, store.ErrGiftReserved) {
		jsonError(w, http.StatusConflict, "gift already reserved")
		return
	}
	if err != nil {
		slog.Error("failed to reserve gift", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if gift == nil {
		jsonError(w, http.StatusNotFound, "gift not found")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"gift":         gift,
		"whatsapp_url": whatsapp.ReservationLink(h.Config, gift.Name, req.Name, req.Contact, req.Message),
	})
}

// Unreserve handles DELETE /api/gifts/{id}/reserve requests.
func (h *GiftsHandler) Unreserve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid gift id")
		return
	}

	gift, err := store.GetGift(r.Context(), h.DB, h.Cols, id)
	if err != nil {
		slog.Error("failed to get gift", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if gift == nil {
		jsonError(w, http.StatusNotFound, "gift not found")
		return
	}

	gift, err = store.UnreserveGift(r.Context(), h.DB, h.Cols, id)
	if err != nil {
		slog.Error("failed to unreserve gift", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, gift)
}

// ResetReservations handles POST /api/gifts/reservations/reset requests,
// clearing every reservation in the catalog.
func (h *GiftsHandler) ResetReservations(w http.ResponseWriter, r *http.Request) {
	affected, err := store.UnreserveAllGifts(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to reset reservations", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{"cleared": affected})
}
