package web

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/vieduardo/presentes/internal/config"
	"github.com/vieduardo/presentes/internal/store"
	webembed "github.com/vieduardo/presentes/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, cols *store.GiftColumns, cfg *config.Config, jwtSecret string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:        db,
		Cols:      cols,
		Config:    cfg,
		Templates: templates,
		JWTSecret: jwtSecret,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(jwtSecret, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Guest-facing pages.
	mux.HandleFunc("GET /{$}", s.InvitePage)
	mux.HandleFunc("GET /presentes", s.RegistryPage)
	mux.HandleFunc("POST /presentes/{id}/reservar", s.ReserveSubmit)
	mux.HandleFunc("GET /images/{path}", s.ImageGet)

	// Admin login.
	mux.HandleFunc("GET /admin/login", s.LoginPage)
	mux.HandleFunc("POST /admin/login", s.LoginSubmit)
	mux.HandleFunc("POST /admin/logout", s.Logout)

	// Admin pages.
	mux.Handle("GET /admin", cookieAuth(http.HandlerFunc(s.AdminPage)))
	mux.Handle("GET /admin/presentes/novo", cookieAuth(http.HandlerFunc(s.AdminGiftPage)))
	mux.Handle("POST /admin/presentes", cookieAuth(http.HandlerFunc(s.AdminGiftCreateSubmit)))
	mux.Handle("GET /admin/presentes/{id}", cookieAuth(http.HandlerFunc(s.AdminGiftPage)))
	mux.Handle("POST /admin/presentes/{id}", cookieAuth(http.HandlerFunc(s.AdminGiftUpdateSubmit)))
	mux.Handle("POST /admin/presentes/{id}/excluir", cookieAuth(http.HandlerFunc(s.AdminGiftDeleteSubmit)))
	mux.Handle("POST /admin/presentes/{id}/liberar", cookieAuth(http.HandlerFunc(s.AdminUnreserveSubmit)))
	mux.Handle("POST /admin/reservas/limpar", cookieAuth(http.HandlerFunc(s.AdminResetSubmit)))
	mux.Handle("GET /admin/importar", cookieAuth(http.HandlerFunc(s.AdminImportPage)))
	mux.Handle("POST /admin/importar", cookieAuth(http.HandlerFunc(s.AdminImportSubmit)))
	mux.Handle("GET /admin/importar/modelo", cookieAuth(http.HandlerFunc(s.AdminTemplate)))
	mux.Handle("GET /admin/exportar", cookieAuth(http.HandlerFunc(s.AdminExport)))

	return mux, nil
}

// ImageGet handles GET /images/{path}, serving stored gift images.
func (s *Server) ImageGet(w http.ResponseWriter, r *http.Request) {
	data, mime, err := store.GetImage(r.Context(), s.DB, r.PathValue("path"))
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
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write image response", "error", err)
	}
}
