// AngelaMos | 2026
// pages.go

package web

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/pos-backend/internal/auth"
	"github.com/carterperez-dev/templates/pos-backend/internal/middleware"
)

//go:embed templates/shell.html
var templates embed.FS

var shell = template.Must(template.ParseFS(templates, "templates/shell.html"))

type page struct {
	Page  string
	Title string
	User  *auth.Identity
}

// Pages serves the HTML shell the browser client mounts on. Access control
// is left to the gate in front of these routes.
type Pages struct{}

func NewPages() *Pages {
	return &Pages{}
}

func (p *Pages) RegisterRoutes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
	})

	r.Get("/login", p.render("login", "Sign in"))
	r.Get("/register", p.render("register", "Create account"))
	r.Get("/dashboard", p.render("dashboard", "Dashboard"))
	r.Get("/products", p.render("products", "Products"))
	r.Get("/products/*", p.render("products", "Products"))
	r.Get("/categories", p.render("categories", "Categories"))
	r.Get("/transactions", p.render("transactions", "Transactions"))
	r.Get("/admin", p.render("admin", "Administration"))
	r.Get("/admin/*", p.render("admin", "Administration"))
}

func (p *Pages) render(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		err := shell.Execute(&buf, page{
			Page:  name,
			Title: title,
			User:  middleware.GetIdentity(r.Context()),
		})
		if err != nil {
			slog.ErrorContext(r.Context(), "render page", "page", name, "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = buf.WriteTo(w) //nolint:errcheck // client went away
	}
}
