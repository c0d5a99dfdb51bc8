package api

import (
	"database/sql"
	"net/http"

	"github.com/vieduardo/presentes/internal/config"
	"github.com/vieduardo/presentes/internal/store"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, cols *store.GiftColumns, cfg *config.Config, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	giftsHandler := &GiftsHandler{DB: db, Cols: cols, Config: cfg}
	registryHandler := &RegistryHandler{DB: db, Cols: cols}
	imagesHandler := &ImagesHandler{DB: db}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: the guest-facing catalog and reservation flow.
	mux.HandleFunc("GET /api/gifts", giftsHandler.List)
	mux.HandleFunc("GET /api/gifts/{id}", giftsHandler.Get)
	mux.HandleFunc("POST /api/gifts/{id}/reserve", giftsHandler.Reserve)
	mux.HandleFunc("GET /images/{path}", imagesHandler.Serve)

	// Public: admin login.
	mux.HandleFunc("POST /api/admin/login", authHandler.Login)

	// Admin session management.
	mux.Handle("POST /api/admin/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/admin/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Admin catalog management.
	mux.Handle("POST /api/gifts", authMW(http.HandlerFunc(giftsHandler.Create)))
	mux.Handle("PUT /api/gifts/{id}", authMW(http.HandlerFunc(giftsHandler.Update)))
	mux.Handle("DELETE /api/gifts/{id}", authMW(http.HandlerFunc(giftsHandler.Delete)))
	mux.Handle("DELETE /api/gifts/{id}/reserve", authMW(http.HandlerFunc(giftsHandler.Unreserve)))
	mux.Handle("POST /api/gifts/reservations/reset", authMW(http.HandlerFunc(giftsHandler.ResetReservations)))

	// Admin bulk import/export.
	mux.Handle("POST /api/gifts/import", authMW(http.HandlerFunc(registryHandler.Import)))
	mux.Handle("GET /api/gifts/export", authMW(http.HandlerFunc(registryHandler.Export)))
	mux.HandleFunc("GET /api/gifts/template", registryHandler.Template)

	// Admin image upload.
	mux.Handle("POST /api/images", authMW(http.HandlerFunc(imagesHandler.Upload)))

	return mux
}
