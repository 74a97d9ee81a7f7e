package api

import (
	"centre-scheduler-service/internal/api/handlers"
	"centre-scheduler-service/internal/platform/obs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(h *handlers.Handler, logger zerolog.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(requestContext(logger))
	r.Use(accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", obs.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/centres", func(r chi.Router) {
			r.Get("/", h.ListCentres)
			r.Get("/{id}", h.GetCentre)
		})

		r.Post("/recommendations", h.Recommend)
		r.Post("/occupancy", h.Occupancy)
		r.Post("/travel/chained", h.ChainedTravel)
		r.Post("/frequency-check", h.FrequencyCheck)

		r.Route("/routes", func(r chi.Router) {
			r.Post("/optimal", h.OptimalRoute)
			r.Post("/metrics", h.RouteMetrics)
		})

		r.Route("/plans", func(r chi.Router) {
			r.Post("/", h.Plan)
			r.Post("/compare", h.ComparePlans)
		})
	})

	return r
}
