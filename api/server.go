/*
server.go - HTTP router and middleware configuration

PURPOSE:

	Configures the HTTP router (chi), middleware stack, and route definitions.
	This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
 1. Logger:     Request logging
 2. Recoverer:  Panic recovery (500 instead of crash)
 3. RequestID:  Unique ID per request for tracing
 4. CORS:       Cross-origin requests for the scheduling frontend

ROUTE GROUPS:

	/api/workers/*        Workers, their shifts, time-off and availability
	/api/shifts/*         Shift removal
	/api/time-off/*       Time-off removal
	/api/scenarios/*      Demo scenarios
	/healthz              Liveness

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// DefaultAllowedOrigins are the frontend origins accepted by CORS.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured.
// A nil allowedOrigins uses DefaultAllowedOrigins.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/workers", func(r chi.Router) {
			r.Get("/", h.ListWorkers)
			r.Post("/", h.CreateWorker)
			r.Get("/{id}", h.GetWorker)

			r.Get("/{id}/shifts", h.ListShifts)
			r.Post("/{id}/shifts", h.AssignShift)
			r.Post("/{id}/shift-check", h.CheckShift)
			r.Post("/{id}/earliest-start", h.EarliestStart)

			r.Get("/{id}/time-off", h.ListTimeOff)
			r.Post("/{id}/time-off", h.SubmitTimeOff)
			r.Post("/{id}/time-off-check", h.CheckTimeOff)

			r.Get("/{id}/disabled-dates", h.DisabledDates)
			r.Get("/{id}/disabled-dates/{day}", h.IsDateDisabled)
		})

		r.Route("/shifts", func(r chi.Router) {
			r.Delete("/{id}", h.DeleteShift)
		})

		r.Route("/time-off", func(r chi.Router) {
			r.Delete("/{id}", h.DeleteTimeOff)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	return r
}
