package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rgoodwin/waveforge/internal/api"
	apiMiddleware "github.com/rgoodwin/waveforge/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	musicHandler := api.NewMusicHandler(app.manager, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-music", musicHandler.GenerateMusic)
		r.Get("/status/{taskID}", musicHandler.GetStatus)
		r.Get("/audio/{taskID}", musicHandler.GetAudio)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
