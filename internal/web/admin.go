package web

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vieduardo/presentes/internal/catalog"
	"github.com/vieduardo/presentes/internal/imaging"
	"github.com/vieduardo/presentes/internal/model"
	"github.com/vieduardo/presentes/internal/registry"
	"github.com/vieduardo/presentes/internal/store"
)

// AdminPage handles GET /admin, the management dashboard with the catalog
// table and reservation counts.
func (s *Server) AdminPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	gifts, err := store.ListGifts(r.Context(), s.DB, s.Cols)
	if err != nil {
		slog.Error("failed to list gifts", "error", err)
	}

	s.Templates.Render(w, "admin.html", &struct {
		PageData
		Gifts  []model.Gift
		Counts catalog.Counts
	}{
		PageData: PageData{
			Title:   "Gerenciar Presentes",
			Admin:   claims,
			Config:  s.Config,
			Error:   flashError(r),
			Success: flashSuccess(r),
		},
		Gifts:  catalog.View(gifts, catalog.Filter{}),
		Counts: catalog.Count(gifts),
	})
}

// AdminGiftPage handles GET /admin/presentes/novo and
// GET /admin/presentes/{id}, the gift form for create and edit.
func (s *Server) AdminGiftPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	var gift *model.Gift
	if idStr := r.PathValue("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		gift, err = store.GetGift(r.Context(), s.DB, s.Cols, id)
		if err != nil {
			slog.Error("failed to get gift", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if gift == nil {
			http.NotFound(w, r)
			return
		}
	}

	title := "Novo Presente"
	if gift != nil {
		title = "Editar Presente"
	}

	s.Templates.Render(w, "admin_gift.html", &struct {
		PageData
		Gift       *model.Gift
		Categories []string
	}{
		PageData:   PageData{Title: title, Admin: claims, Config: s.Config},
		Gift:       gift,
		Categories: model.Categories,
	})
}

// giftFormImage resolves the optional uploaded image file for a gift form
// submission. An empty return means the form carried no new image.
func (s *Server) giftFormImage(r *http.Request, name string) (string, error) {
	file, _, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("reading image: %w", err)
	}
	if len(data) == 0 {
		return "", nil
	}

	result, err := imaging.Process(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	path := imaging.StoragePath(name, time.Now())
	if err := store.SaveImage(r.Context(), s.DB, path, result.Data, result.MIME); err != nil {
		return "", err
	}
	return "/images/" + path, nil
}

// AdminGiftCreateSubmit handles POST /admin/presentes.
func (s *Server) AdminGiftCreateSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	description := strings.TrimSpace(r.FormValue("description"))
	if name == "" || description == "" {
		http.Redirect(w, r, "/admin?erro=Nome+e+descrição+são+obrigatórios", http.StatusSeeOther)
		return
	}

	imageURL, err := s.giftFormImage(r, name)
	if err != nil {
		slog.Warn("failed to process gift image", "error", err)
		http.Redirect(w, r, "/admin?erro=Imagem+inválida", http.StatusSeeOther)
		return
	}
	if imageURL == "" {
		imageURL = strings.TrimSpace(r.FormValue("imageurl"))
	}
	if imageURL == "" {
		imageURL = registry.DefaultImageURL
	}

	if _, err := store.CreateGift(r.Context(), s.DB, s.Cols, store.GiftDraft{
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		Category:    r.FormValue("category"),
	}); err != nil {
		slog.Error("failed to create gift", "error", err)
		http.Redirect(w, r, "/admin?erro=Erro+ao+salvar", http.StatusSeeOther)
		return
	}

	slog.Info("gift created", "gift", name)
	http.Redirect(w, r, "/admin?ok=Presente+adicionado", http.StatusSeeOther)
}

// AdminGiftUpdateSubmit handles POST /admin/presentes/{id}.
func (s *Server) AdminGiftUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	gift, err := store.GetGift(r.Context(), s.DB, s.Cols, id)
	if err != nil {
		slog.Error("failed to get gift", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if gift == nil {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	description := strings.TrimSpace(r.FormValue("description"))
	if name == "" || description == "" {
		http.Redirect(w, r, "/admin?erro=Nome+e+descrição+são+obrigatórios", http.StatusSeeOther)
		return
	}

	imageURL, err := s.giftFormImage(r, name)
	if err != nil {
		slog.Warn("failed to process gift image", "error", err)
		http.Redirect(w, r, "/admin?erro=Imagem+inválida", http.StatusSeeOther)
		return
	}
	if imageURL == "" {
		imageURL = strings.TrimSpace(r.FormValue("imageurl"))
	}
	if imageURL == "" {
		imageURL = gift.ImageURL
	}

	gift.Name = name
	gift.Description = description
	gift.ImageURL = imageURL
	gift.Category = r.FormValue("category")

	if _, err := store.UpdateGift(r.Context(), s.DB, s.Cols, *gift); err != nil {
		slog.Error("failed to update gift", "error", err)
		http.Redirect(w, r, "/admin?erro=Erro+ao+salvar", http.StatusSeeOther)
		return
	}

	slog.Info("gift updated", "gift", name)
	http.Redirect(w, r, "/admin?ok=Presente+atualizado", http.StatusSeeOther)
}

// AdminGiftDeleteSubmit handles POST /admin/presentes/{id}/excluir.
func (s *Server) AdminGiftDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := store.DeleteGift(r.Context(), s.DB, id); err != nil {
		slog.Error("failed to delete gift", "error", err)
		http.Redirect(w, r, "/admin?erro=Erro+ao+excluir", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin?ok=Presente+excluído", http.StatusSeeOther)
}

// AdminUnreserveSubmit handles POST /admin/presentes/{id}/liberar, clearing
// a single reservation.
func (s *Server) AdminUnreserveSubmit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if _, err := store.UnreserveGift(r.Context(), s.DB, s.Cols, id); err != nil {
		slog.Error("failed to unreserve gift", "error", err)
		http.Redirect(w, r, "/admin?erro=Erro+ao+liberar+reserva", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/admin?ok=Reserva+liberada", http.StatusSeeOther)
}

// AdminResetSubmit handles POST /admin/reservas/limpar, clearing every
// reservation in the catalog.
func (s *Server) AdminResetSubmit(w http.ResponseWriter, r *http.Request) {
	affected, err := store.UnreserveAllGifts(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to reset reservations", "error", err)
		http.Redirect(w, r, "/admin?erro=Erro+ao+limpar+reservas", http.StatusSeeOther)
		return
	}

	slog.Info("reservations reset", "cleared", affected)
	http.Redirect(w, r, fmt.Sprintf("/admin?ok=%d+reservas+liberadas", affected), http.StatusSeeOther)
}

// AdminImportPage handles GET /admin/importar.
func (s *Server) AdminImportPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "admin_import.html", &struct {
		PageData
		Result *registry.ImportResult
	}{
		PageData: PageData{Title: "Importar Lista", Admin: claims, Config: s.Config},
	})
}

// AdminImportSubmit handles POST /admin/importar.
func (s *Server) AdminImportSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())

	renderError := func(msg string) {
		s.Templates.Render(w, "admin_import.html", &struct {
			PageData
			Result *registry.ImportResult
		}{
			PageData: PageData{Title: "Importar Lista", Admin: claims, Config: s.Config, Error: msg},
		})
	}

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		renderError("Arquivo inválido.")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		renderError("Selecione um arquivo JSON.")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.Contains(contentType, "json") && !strings.HasSuffix(strings.ToLower(header.Filename), ".json") {
		renderError("O arquivo deve ser JSON.")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, 5<<20))
	if err != nil {
		renderError("Erro ao ler o arquivo.")
		return
	}

	result, _ := registry.Import(r.Context(), s.DB, s.Cols, data)
	slog.Info("imported gifts", "total", result.Total, "success", result.Success, "errors", len(result.Errors))

	s.Templates.Render(w, "admin_import.html", &struct {
		PageData
		Result *registry.ImportResult
	}{
		PageData: PageData{Title: "Importar Lista", Admin: claims, Config: s.Config},
		Result:   result,
	})
}

// AdminExport handles GET /admin/exportar, serving the catalog as a dated
// JSON download.
func (s *Server) AdminExport(w http.ResponseWriter, r *http.Request) {
	gifts, err := store.ListGifts(r.Context(), s.DB, s.Cols)
	if err != nil {
		slog.Error("failed to list gifts", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data, err := registry.Export(gifts)
	if err != nil {
		slog.Error("failed to export gifts", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+registry.ExportFilename(time.Now())+`"`)
	w.Write(data)
}

// AdminTemplate handles GET /admin/importar/modelo, serving the example
// import file.
func (s *Server) AdminTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+registry.TemplateFilename+`"`)
	w.Write(registry.Template())
}

// flashError reads the one-shot error message from the query string.
func flashError(r *http.Request) string {
	return r.URL.Query().Get("erro")
}

// flashSuccess reads the one-shot success message from the query string.
func flashSuccess(r *http.Request) string {
	return r.URL.Query().Get("ok")
}
