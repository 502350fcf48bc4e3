// Package visuals serves the AI visualization report. A completion that
// cannot be decoded aborts the whole page; a single bad chart expression
// only errors its own block.
package visuals

import (
	"bytes"
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tabwise/workbench/internal/handler/pages"
	"github.com/tabwise/workbench/internal/model/dataset"
	visualsService "github.com/tabwise/workbench/internal/service/visuals"
	"github.com/tabwise/workbench/pkg/utils"
)

var reportTmpl = template.Must(template.New("visuals").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8"><title>AI Visualizations</title>
	<link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.2/dist/css/bootstrap.min.css" rel="stylesheet">
	<script src="https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"></script>
</head>
<body>
	<div class="container mt-4">
		<h1>AI Visualizations</h1>
		{{range .Blocks}}
		<div class="my-4">
			{{if .Err}}
			<h3>Error generating chart: {{.Title}}</h3>
			<p class="text-danger">{{.Err}}</p>
			{{else}}
			<h3>{{.Title}}</h3>
			{{.Element}}
			{{.Script}}
			{{end}}
		</div>
		{{end}}
	</div>
</body>
</html>
`))

// Handler serves the report endpoint.
type Handler struct {
	store dataset.Store
	svc   *visualsService.Service
}

// New creates the visuals handler; svc is nil when AI is disabled.
func New(store dataset.Store, svc *visualsService.Service) *Handler {
	return &Handler{store: store, svc: svc}
}

// RegisterRoutes wires the report route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ai_visuals/{id}", h.handleReport)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ds, ok := h.store.Get(id)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if h.svc == nil {
		pages.ErrorPage(w, http.StatusServiceUnavailable, "AI features are disabled.",
			"Set ARK_API_KEY and ARK_MODEL to enable the visualization report.")
		return
	}

	report, err := h.svc.Generate(r.Context(), ds)
	if err != nil {
		var parseErr *visualsService.ParseError
		if errors.As(err, &parseErr) {
			pages.ErrorPage(w, http.StatusOK, "Error processing AI response.", parseErr.Raw)
			return
		}
		log.Printf("[visuals] generation failed for dataset=%s: %v", id, err)
		pages.ErrorPage(w, http.StatusBadGateway, "Error generating visualizations.", err.Error())
		return
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, report); err != nil {
		log.Printf("[visuals] failed to render report: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	utils.RespondHTML(w, http.StatusOK, buf.Bytes())
}
