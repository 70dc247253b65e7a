package routes

import (
	"context"
	"net/http"
	"time"

	"khola-chithi/engine/internal/api"
	"khola-chithi/engine/internal/jobs"
	"khola-chithi/engine/internal/logging"
	"khola-chithi/engine/internal/metrics"
	"khola-chithi/engine/internal/middleware"
	"khola-chithi/engine/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func RegisterRoutes(ctx context.Context, docs store.DocumentStore, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.Default()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Session-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")
	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(docs, upSince))

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(ctx, docs, metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Initialize handlers with dependencies
	handlers := api.NewHandlers(deps)

	// Setup scheduled jobs (daily payout recompute)
	jobs.InitializeJobs(ctx, deps.Services.Payouts)

	// Register API routes
	RegisterAPIRoutes(r, metricsReg, handlers, deps)

	return r
}
