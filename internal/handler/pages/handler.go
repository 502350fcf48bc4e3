// Package pages serves the HTML surface: landing page, dashboard and chat
// page. Any page scoped to an unknown session identifier redirects back to
// the landing page.
package pages

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tabwise/workbench/internal/model/dataset"
	"github.com/tabwise/workbench/pkg/utils"
)

// Handler renders the static pages.
type Handler struct {
	store dataset.Store
}

// New creates the pages handler.
func New(store dataset.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes wires the page routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleLanding)
	r.Get("/dashboard/{id}", h.handleDashboard)
	r.Get("/chat/{id}", h.handleChat)
}

func (h *Handler) handleLanding(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, landingTmpl, nil)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ds, ok := h.store.Get(id)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	render(w, http.StatusOK, dashboardTmpl, map[string]any{
		"ID":       ds.ID,
		"Filename": ds.Filename,
		"Rows":     ds.RowCount(),
		"Cols":     len(ds.Columns()),
	})
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.store.Get(id); !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	render(w, http.StatusOK, chatTmpl, nil)
}

// ErrorPage renders a standalone error page with optional detail text.
// Shared by the upload and visualization handlers.
func ErrorPage(w http.ResponseWriter, status int, title, detail string) {
	render(w, status, errorTmpl, map[string]string{
		"Title":  title,
		"Detail": detail,
	})
}

func render(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("[pages] failed to render template: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	utils.RespondHTML(w, status, buf.Bytes())
}
