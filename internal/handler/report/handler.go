// Package report serves the statistical profile page.
package report

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tabwise/workbench/internal/model/dataset"
	"github.com/tabwise/workbench/internal/service/profile"
	"github.com/tabwise/workbench/pkg/utils"
)

var profileTmpl = template.Must(template.New("profile").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8"><title>Statistical Profile</title>
	<link href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.2/dist/css/bootstrap.min.css" rel="stylesheet">
</head>
<body>
	<div class="container mt-4">
		<h1>Statistical Profile</h1>
		<p class="text-muted">{{.Filename}} (uploaded {{.UploadedAt.Format "2006-01-02 15:04 MST"}}): {{.Rows}} rows, {{.Cols}} columns.</p>

		{{if .Numeric}}
		<h2 class="mt-4">Numeric columns</h2>
		<table class="table table-striped table-sm">
			<thead><tr>
				<th>Column</th><th>Type</th><th>Count</th><th>Mean</th><th>Median</th>
				<th>Std dev</th><th>Min</th><th>Q1</th><th>Q3</th><th>Max</th>
			</tr></thead>
			<tbody>
			{{range .Numeric}}
			<tr>
				<td>{{.Name}}</td><td>{{.Type}}</td><td>{{.Count}}</td>
				<td>{{printf "%.4g" .Mean}}</td><td>{{printf "%.4g" .Median}}</td>
				<td>{{printf "%.4g" .StdDev}}</td><td>{{printf "%.4g" .Min}}</td>
				<td>{{printf "%.4g" .Q1}}</td><td>{{printf "%.4g" .Q3}}</td>
				<td>{{printf "%.4g" .Max}}</td>
			</tr>
			{{end}}
			</tbody>
		</table>
		{{end}}

		{{if .Categorical}}
		<h2 class="mt-4">Categorical columns</h2>
		{{range .Categorical}}
		<div class="my-3">
			<h5>{{.Name}} <small class="text-muted">({{.Type}}, {{.Distinct}} distinct)</small></h5>
			<table class="table table-sm w-auto">
				<thead><tr><th>Value</th><th>Count</th></tr></thead>
				<tbody>
				{{range .Top}}
				<tr><td>{{.Value}}</td><td>{{.Count}}</td></tr>
				{{end}}
				</tbody>
			</table>
		</div>
		{{end}}
		{{end}}
	</div>
</body>
</html>
`))

// Handler serves the profile endpoint.
type Handler struct {
	store dataset.Store
}

// New creates the report handler.
func New(store dataset.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes wires the profile route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/statistical_report/{id}", h.handleProfile)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ds, ok := h.store.Get(id)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	var buf bytes.Buffer
	if err := profileTmpl.Execute(&buf, profile.Build(ds)); err != nil {
		log.Printf("[report] failed to render profile: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	utils.RespondHTML(w, http.StatusOK, buf.Bytes())
}
