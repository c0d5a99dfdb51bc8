package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vieduardo/presentes/internal/auth"
	"github.com/vieduardo/presentes/internal/store"
)

// LoginPage handles GET /admin/login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Entrar", Config: s.Config})
}

// LoginSubmit handles POST /admin/login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" || password == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title:  "Entrar",
			Config: s.Config,
			Error:  "Informe o usuário e a senha.",
		})
		return
	}

	admin, ok, err := store.VerifyAdmin(r.Context(), s.DB, username, password)
	if err != nil {
		slog.Error("failed to verify admin", "error", err)
	}
	if err != nil || !ok {
		s.Templates.Render(w, "login.html", &PageData{
			Title:  "Entrar",
			Config: s.Config,
			Error:  "Usuário ou senha incorretos.",
		})
		return
	}

	token, err := auth.GenerateToken(s.JWTSecret, admin.ID, admin.Username)
	if err != nil {
		slog.Error("failed to generate token", "error", err)
		s.Templates.Render(w, "login.html", &PageData{
			Title:  "Entrar",
			Config: s.Config,
			Error:  "Erro ao entrar. Tente novamente.",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400, // 24 hours
	})

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout handles POST /admin/logout. The session token is revoked so the
// cookie cannot be replayed after logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("token"); err == nil && cookie.Value != "" {
		if claims, err := auth.ValidateToken(s.JWTSecret, cookie.Value); err == nil && claims.ID != "" {
			expiresAt := time.Now().Add(auth.TokenExpiry)
			if claims.ExpiresAt != nil {
				expiresAt = claims.ExpiresAt.Time
			}
			if err := store.RevokeToken(r.Context(), s.DB, claims.ID, expiresAt); err != nil {
				slog.Error("failed to revoke token", "error", err)
			}
		}
	}

	clearAuthCookie(w)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
