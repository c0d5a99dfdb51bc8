package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/vieduardo/presentes/internal/catalog"
	"github.com/vieduardo/presentes/internal/model"
	"github.com/vieduardo/presentes/internal/store"
	"github.com/vieduardo/presentes/internal/whatsapp"
)

// InvitePage handles GET /, the invitation landing page with the countdown.
func (s *Server) InvitePage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "invite.html", &struct {
		PageData
		CountdownTarget string
	}{
		PageData:        PageData{Title: s.Config.CoupleNames, Config: s.Config},
		CountdownTarget: s.Config.WeddingInstant.Format("2006-01-02T15:04:05-07:00"),
	})
}

// RegistryPage handles GET /presentes, the guest-facing gift list. Filters
// come in as query parameters so filtered views are linkable.
func (s *Server) RegistryPage(w http.ResponseWriter, r *http.Request) {
	gifts, err := store.ListGifts(r.Context(), s.DB, s.Cols)
	if err != nil {
		slog.Error("failed to list gifts", "error", err)
		s.Templates.Render(w, "registry.html", &struct {
			PageData
			LoadFailed bool
		}{
			PageData:   PageData{Title: "Lista de Presentes", Config: s.Config},
			LoadFailed: true,
		})
		return
	}

	filter := catalog.Filter{
		Text:         r.URL.Query().Get("q"),
		Availability: r.URL.Query().Get("availability"),
		Category:     r.URL.Query().Get("category"),
	}
	view := catalog.View(gifts, filter)

	var errMsg string
	switch r.URL.Query().Get("erro") {
	case "reservado":
		errMsg = "Esse presente acabou de ser reservado por outro convidado."
	case "dados":
		errMsg = "Informe seu nome e telefone para reservar."
	case "interno":
		errMsg = "Não foi possível reservar. Tente novamente."
	}

	s.Templates.Render(w, "registry.html", &struct {
		PageData
		Gifts      []model.Gift
		Counts     catalog.Counts
		Filter     catalog.Filter
		Categories []string
		LoadFailed bool
	}{
		PageData:   PageData{Title: "Lista de Presentes", Config: s.Config, Error: errMsg},
		Gifts:      view,
		Counts:     catalog.Count(gifts),
		Filter:     filter,
		Categories: model.Categories,
	})
}

// ReserveSubmit handles POST /presentes/{id}/reservar. On success the guest
// is sent straight to the prefilled WhatsApp conversation.
func (s *Server) ReserveSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	contact := strings.TrimSpace(r.FormValue("contact"))
	message := strings.TrimSpace(r.FormValue("message"))
	if name == "" || contact == "" {
		http.Redirect(w, r, "/presentes?erro=dados", http.StatusSeeOther)
		return
	}

	gift, err := store.ReserveGift(r.Context(), s.DB, s.Cols, id, name, contact, message)
	if errors.Is(err, store.ErrGiftReserved) {
		http.Redirect(w, r, "/presentes?erro=reservado", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("failed to reserve gift", "error", err)
		http.Redirect(w, r, "/presentes?erro=interno", http.StatusSeeOther)
		return
	}
	if gift == nil {
		http.NotFound(w, r)
		return
	}

	slog.Info("gift reserved", "gift", gift.Name, "guest", name)
	http.Redirect(w, r, whatsapp.ReservationLink(s.Config, gift.Name, name, contact, message), http.StatusSeeOther)
}
