package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	askHandler "github.com/tabwise/workbench/internal/handler/ask"
	pagesHandler "github.com/tabwise/workbench/internal/handler/pages"
	reportHandler "github.com/tabwise/workbench/internal/handler/report"
	uploadHandler "github.com/tabwise/workbench/internal/handler/upload"
	visualsHandler "github.com/tabwise/workbench/internal/handler/visuals"
	middlewarePkg "github.com/tabwise/workbench/internal/middleware"
	"github.com/tabwise/workbench/internal/model/dataset"
	"github.com/tabwise/workbench/internal/service/ai"
	visualsService "github.com/tabwise/workbench/internal/service/visuals"
)

// NewRouter wires HTTP routes to core services. completer is nil when the
// AI credential is missing; the dependent endpoints then report themselves
// disabled while the rest of the app keeps working.
func NewRouter(store dataset.Store, completer ai.Completer, maxUploadBytes int64, chartCount int) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	var visualsSvc *visualsService.Service
	if completer != nil {
		visualsSvc = visualsService.NewService(completer, chartCount)
	}

	pages := pagesHandler.New(store)
	upload := uploadHandler.New(store, maxUploadBytes)
	visuals := visualsHandler.New(store, visualsSvc)
	report := reportHandler.New(store)
	ask := askHandler.New(store, completer)

	pages.RegisterRoutes(r)
	upload.RegisterRoutes(r)
	visuals.RegisterRoutes(r)
	report.RegisterRoutes(r)
	ask.RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		askHandler.NewWebSocketHandler(ask).RegisterRoutes(api)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
