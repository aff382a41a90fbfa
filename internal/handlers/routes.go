package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter собирает маршруты API
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", h.PingHandler)

	r.Get("/projects", h.GetProjectsHandler)
	r.Route("/projects/{projectId}", func(r chi.Router) {
		r.Get("/vendors", h.GetVendorsHandler)
		r.Get("/bid-packages", h.GetBidPackagesHandler)
		r.Post("/bid-packages/add-bidders", h.AddBiddersHandler)
		r.Get("/documents", h.GetDocumentsHandler)
		r.Get("/sync-logs", h.GetSyncLogsHandler)
		r.Post("/sync-logs", h.CreateSyncLogHandler)
		r.Get("/sync-logs/history", h.GetSyncLogHistoryHandler)
	})

	r.Post("/uploads", h.CreateUploadHandler)

	return r
}
