package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/MonksterFX/fermentation-station/internal/api"
	"github.com/MonksterFX/fermentation-station/internal/api/middleware"
	"github.com/MonksterFX/fermentation-station/internal/api/shared"
)

// setupRouter builds the HTTP route tree. Authentication endpoints and the
// operational endpoints are public; everything under the ferment collection
// requires a valid access token.
func (app *application) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.TraceMiddleware(app.logger))
	r.Use(chimiddleware.Recoverer)

	authHandler := api.NewAuthHandler(app.userService, app.logger)
	fermentHandler := api.NewFermentHandler(app.fermentService, app.images, app.logger)
	queryHandler := api.NewQueryHandler(app.fermentService, app.logger)
	authMiddleware := middleware.NewAuthMiddleware(app.jwtService)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/ferments", func(r chi.Router) {
				r.Get("/", fermentHandler.List)
				r.Post("/", fermentHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", fermentHandler.Get)
					r.Patch("/", fermentHandler.Update)
					r.Delete("/", fermentHandler.Delete)
					r.Post("/reminders", fermentHandler.AddReminder)
					r.Post("/reminders/{reminderID}/toggle", fermentHandler.ToggleReminder)
					r.Post("/logs", fermentHandler.AddLogEntry)
					r.Post("/images", fermentHandler.UploadImage)
					r.Get("/images/{imageID}", fermentHandler.GetImage)
				})
			})

			r.Get("/reminders", queryHandler.Reminders)
			r.Get("/stats", queryHandler.Stats)
		})
	})

	return r
}
