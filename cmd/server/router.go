package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/n0rb33rt/twaincards-backend-sub000/internal/api"
	apiMiddleware "github.com/n0rb33rt/twaincards-backend-sub000/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier, app.logger)
	learningHandler := api.NewLearningHandler(app.learningService, app.quotaService, app.userStore, app.logger)
	sessionHandler := api.NewStudySessionHandler(app.sessionService, app.logger)
	quotaHandler := api.NewQuotaHandler(app.quotaService, app.userStore, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Answering and per-card progress
			r.Post("/cards/{cardID}/answer", learningHandler.AnswerCard)
			r.Get("/cards/{cardID}/progress", learningHandler.GetProgress)
			r.Post("/cards/{cardID}/progress/reset", learningHandler.ResetCardProgress)

			// Study queues
			r.Get("/review", learningHandler.GetReviewQueue)
			r.Get("/collections/{collectionID}/learn", learningHandler.GetCardsToLearn)
			r.Get("/collections/{collectionID}/review", learningHandler.GetCollectionReviewQueue)
			r.Post("/collections/{collectionID}/progress/reset", learningHandler.ResetCollectionProgress)

			// Status statistics
			r.Get("/statistics/status", learningHandler.GetStatusStatistics)
			r.Get(
				"/collections/{collectionID}/statistics/status",
				learningHandler.GetCollectionStatusStatistics,
			)

			// Study sessions
			r.Post("/study-sessions", sessionHandler.Create)
			r.Get("/study-sessions", sessionHandler.List)
			r.Get("/study-sessions/{sessionID}", sessionHandler.Get)
			r.Post("/study-sessions/{sessionID}/complete", sessionHandler.Complete)
			r.Get("/collections/{collectionID}/sessions", sessionHandler.ListByCollection)

			// Daily quota
			r.Get("/quota", quotaHandler.Get)
		})
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
