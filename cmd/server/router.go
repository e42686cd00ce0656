package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/blobapp/blob-api/internal/api"
	apiMiddleware "github.com/blobapp/blob-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// It accepts the application dependencies to create handlers and register routes.
// Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	if len(app.config.Server.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   app.config.Server.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Create API handlers using the application's services
	topicHandler := api.NewTopicHandler(app.topicStore, app.logger)
	settingsHandler := api.NewSettingsHandler(app.settingsStore, app.keyCodec, app.logger)
	generateHandler := api.NewGenerateHandler(app.generationService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Topic endpoints
			r.Post("/topics", topicHandler.Create)
			r.Get("/topics", topicHandler.List)
			r.Get("/topics/{id}", topicHandler.Get)

			// AI settings endpoints
			r.Get("/settings/ai", settingsHandler.Get)
			r.Put("/settings/ai", settingsHandler.Update)

			// Generation endpoints
			r.Post("/topics/{id}/generate", generateHandler.GenerateAll)
			r.Post("/topics/{id}/generate/flashcards", generateHandler.GenerateFlashcards)
			r.Post("/topics/{id}/generate/quiz", generateHandler.GenerateQuiz)
			r.Post("/topics/{id}/generate/mindmap", generateHandler.GenerateMindMap)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
