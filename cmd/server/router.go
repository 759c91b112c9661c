package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fisiolab/tenslab-api/internal/api"
	apiMiddleware "github.com/fisiolab/tenslab-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	simHandler := api.NewSimHandler(app.labService, app.logger)
	tissueHandler := api.NewTissueHandler(app.labService, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Simulation endpoints
		r.Post("/simulate", simHandler.Simulate)
		r.Post("/risk", simHandler.AssessRisk)

		// Tissue preset endpoints (read-only catalog)
		r.Get("/tissue/presets", tissueHandler.ListPresets)
		r.Get("/tissue/presets/{id}", tissueHandler.GetPreset)

		// Saved tissue configuration endpoints
		r.Get("/tissue/configs", tissueHandler.ListConfigs)
		r.Post("/tissue/configs", tissueHandler.CreateConfig)
		r.Get("/tissue/configs/{id}", tissueHandler.GetConfig)
		r.Put("/tissue/configs/{id}", tissueHandler.UpdateConfig)
		r.Delete("/tissue/configs/{id}", tissueHandler.DeleteConfig)

		// Inclusion editing endpoints
		r.Post("/tissue/configs/{id}/inclusions", tissueHandler.AddInclusion)
		r.Patch("/tissue/configs/{id}/inclusions/{incID}", tissueHandler.UpdateInclusion)
		r.Delete("/tissue/configs/{id}/inclusions/{incID}", tissueHandler.RemoveInclusion)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
