package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new router with all routes configured. When apiKey is
// empty the API runs open, matching a single-operator local deployment.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Group(func(r chi.Router) {
			if h.apiKey != "" {
				r.Use(AuthMiddleware(h.apiKey))
			}
			r.Post("/command", h.Command)
			r.Get("/sales", h.Sales)
			r.Get("/expenses", h.Expenses)
			r.Get("/inventory", h.Inventory)
			r.Get("/summary", h.Summary)
		})
	})

	return r
}
