package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all fusion routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/fusion", func(r chi.Router) {
		r.Post("/evaluate", h.HandleEvaluate)

		r.Get("/profile", h.HandleGetProfile)
		r.Put("/profile", h.HandleSetProfile)
		r.Get("/profiles", h.HandleListProfiles)
	})
}
