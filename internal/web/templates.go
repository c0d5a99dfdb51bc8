package web

import (
	"database/sql"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/vieduardo/presentes/internal/auth"
	"github.com/vieduardo/presentes/internal/config"
	"github.com/vieduardo/presentes/internal/model"
	"github.com/vieduardo/presentes/internal/store"
	webembed "github.com/vieduardo/presentes/web"
)

// Templates holds parsed HTML templates.
type Templates struct {
	templates map[string]*template.Template
}

// FuncMap returns the template function map.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"categoryName": func(category string) string {
			switch category {
			case model.CategoryCozinha:
				return "Cozinha"
			case model.CategorySala:
				return "Sala"
			case model.CategoryQuarto:
				return "Quarto"
			case model.CategoryBanheiro:
				return "Banheiro"
			case model.CategoryLavanderia:
				return "Lavanderia"
			case model.CategoryDiversos:
				return "Diversos"
			default:
				return category
			}
		},
		"imageKind": model.ImageKind,
	}
}

// LoadTemplates parses all page templates with the layout.
func LoadTemplates() (*Templates, error) {
	tfs := webembed.TemplatesFS()

	// Read layout.
	layoutBytes, err := fs.ReadFile(tfs, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("reading layout template: %w", err)
	}

	pages := []string{
		"invite.html",
		"registry.html",
		"login.html",
		"admin.html",
		"admin_gift.html",
		"admin_import.html",
	}

	ts := &Templates{templates: make(map[string]*template.Template)}

	for _, page := range pages {
		pageBytes, err := fs.ReadFile(tfs, page)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", page, err)
		}

		tmpl := template.New(page).Funcs(FuncMap())
		tmpl, err = tmpl.Parse(string(layoutBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing layout for %s: %w", page, err)
		}
		tmpl, err = tmpl.Parse(string(pageBytes))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}

		ts.templates[page] = tmpl
	}

	return ts, nil
}

// Render renders a template with the given data.
func (ts *Templates) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := ts.templates[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// PageData is the base data passed to all templates.
type PageData struct {
	Title   string
	Admin   *auth.Claims
	Config  *config.Config
	Error   string
	Success string
}

// Server holds all dependencies for page handlers.
type Server struct {
	DB        *sql.DB
	Cols      *store.GiftColumns
	Config    *config.Config
	Templates *Templates
	JWTSecret string
}
