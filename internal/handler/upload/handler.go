// Package upload accepts the multipart CSV upload, runs ingestion and
// caches the cleaned table under a fresh session identifier.
package upload

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tabwise/workbench/internal/handler/pages"
	"github.com/tabwise/workbench/internal/model/dataset"
	"github.com/tabwise/workbench/internal/service/ingest"
)

// Handler processes CSV uploads.
type Handler struct {
	store    dataset.Store
	maxBytes int64
}

// New creates the upload handler with a request body size limit.
func New(store dataset.Store, maxBytes int64) *Handler {
	return &Handler{store: store, maxBytes: maxBytes}
}

// RegisterRoutes wires the upload route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/upload/", h.handleUpload)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		pages.ErrorPage(w, http.StatusBadRequest, "Could not read uploaded file.", err.Error())
		return
	}
	defer file.Close()

	df, err := ingest.FromCSV(file)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, ingest.ErrNoRows) {
			log.Printf("[upload] ingest failed for %s: %v", header.Filename, err)
		}
		pages.ErrorPage(w, status, "Could not process CSV file.", err.Error())
		return
	}

	ds := &dataset.Dataset{
		ID:         uuid.NewString(),
		Filename:   header.Filename,
		UploadedAt: time.Now().UTC(),
		Frame:      df,
	}
	h.store.Put(ds)

	log.Printf("[upload] dataset=%s file=%s rows=%d cols=%d",
		ds.ID, ds.Filename, ds.RowCount(), len(ds.Columns()))
	http.Redirect(w, r, "/dashboard/"+ds.ID, http.StatusSeeOther)
}
