package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all risk simulation routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/risk", func(r chi.Router) {
		r.Route("/simulate", func(r chi.Router) {
			r.Post("/", h.HandleSimulate)
			r.Post("/batch", h.HandleSimulateBatch)
		})

		r.Get("/params/{symbol}", h.HandleGetParams)

		r.Route("/demo-cases", func(r chi.Router) {
			r.Get("/", h.HandleGetDemoCases)
			r.Get("/reports", h.HandleGetDemoReports)
		})
	})
}
