package main

import (
	"log"
	"net/http"

	httphandlers "tiis/internal/interfaces/http"
	"tiis/internal/shared/config"
	"tiis/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Input form
	mux.HandleFunc("/{$}", httphandlers.HandleIndexPage)
	mux.HandleFunc("/inspect", httphandlers.HandleIndexPage)

	// Scoring
	mux.HandleFunc("/predict", deps.PredictHandler.HandlePredict)

	// Flagged transaction review
	mux.HandleFunc("/api/flagged", deps.FlaggedHandler.HandleListFlagged)

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Apply global middleware
	handler := middleware.Logging(middleware.Tracing(mux))

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
