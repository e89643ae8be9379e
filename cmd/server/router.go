package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/taskdo/taskdo-api/internal/api"
	apiMiddleware "github.com/taskdo/taskdo-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	taskHandler := api.NewTaskHandler(app.taskService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Get("/health/", taskHandler.HealthCheck)
		r.Post("/auth/register/", authHandler.Register)
		r.Post("/auth/login/", authHandler.Login)
		r.Post("/auth/refresh/", authHandler.RefreshToken)

		// Remaining endpoints require an authenticated caller
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/auth/me/", authHandler.Me)
			r.Post("/tasks/", taskHandler.CreateTask)
			r.Get("/tasks/search/", taskHandler.SearchTasks)
			r.Put("/tasks/{task_id}/status/", taskHandler.UpdateTaskStatus)
		})
	})

	return r
}
