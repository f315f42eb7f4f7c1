package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/wanderhost/concierge-agent/internal/api/booking"
	"github.com/wanderhost/concierge-agent/internal/api/planner"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config contains the dependencies needed for the router setup.
type Config struct {
	PlannerHandler         *planner.PlannerHandler
	BookingRepo            booking.Repository
	AuthenticateMiddleware func(http.Handler) http.Handler
	Logger                 *slog.Logger
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) are expected to be
// applied before mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Liveness probe, always public.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	})

	// Readiness probe, checks the booking store.
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := cfg.BookingRepo.Ping(ctx); err != nil {
			cfg.Logger.WarnContext(ctx, "Readiness check failed", slog.Any("error", err))
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"degraded","database":"unreachable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","database":"ok"}`))
	})

	// Protected planning routes.
	r.Group(func(r chi.Router) {
		r.Use(cfg.AuthenticateMiddleware)

		r.Post("/agent/plan", cfg.PlannerHandler.GeneratePlan)
		// Legacy alias kept for older mobile clients.
		r.Post("/ai/concierge", cfg.PlannerHandler.GeneratePlan)
	})

	return r
}
