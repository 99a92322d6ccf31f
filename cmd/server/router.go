package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ncert-revision/revision-api/internal/api"
	apiMiddleware "github.com/ncert-revision/revision-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.CORS(app.config.Server.CORSAllowedOrigins))
	if secs := app.config.Server.RequestTimeoutSeconds; secs > 0 {
		r.Use(middleware.Timeout(time.Duration(secs) * time.Second))
	}

	authHandler := api.NewAuthHandler(app.userService)
	contentHandler := api.NewContentHandler(app.catalogStore, app.itemStore)
	aiHandler := api.NewAIHandler(app.generationService)
	revisionHandler := api.NewRevisionHandler(app.revisionService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Get("/", api.Root)
	r.Get("/health", api.Health)

	r.Route(app.config.Server.APIPrefix, func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/verify-otp", authHandler.VerifyOTP)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)
			r.Patch("/auth/me", authHandler.UpdateMe)

			r.Get("/classes", contentHandler.ListClasses)
			r.Get("/subjects/{classId}", contentHandler.ListSubjects)
			r.Get("/chapters/{subjectId}", contentHandler.ListChapters)
			r.Get("/flashcards/{chapterId}", contentHandler.ListFlashcards)
			r.Get("/mcqs/{chapterId}", contentHandler.ListMCQs)

			r.Post("/ai/generate-mcq/{chapterId}", aiHandler.GenerateMCQs)
			r.Post("/ai/generate-flashcard/{chapterId}", aiHandler.GenerateFlashcards)

			r.Post("/revision/progress/update", revisionHandler.UpdateProgress)
			r.Get("/revision/progress/stats", revisionHandler.Stats)
			r.Get("/revision/daily", revisionHandler.Daily)
			r.Post("/revision/attempts", revisionHandler.RecordAttempt)
			r.Post("/revision/reset/{chapterId}", revisionHandler.ResetChapter)
		})
	})

	return r
}
