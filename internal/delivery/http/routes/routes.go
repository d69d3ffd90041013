package routes

import (
	"job-board/internal/delivery/http/handler"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	auth   *handler.AuthHandler
	jobs   *handler.JobsHandler
	users  *handler.UserHandler
	ws     *ws.Handler
	authMw *middleware.AuthMiddleware
}

func NewRegistry(
	health *handler.HealthHandler,
	auth *handler.AuthHandler,
	jobs *handler.JobsHandler,
	users *handler.UserHandler,
	wsHandler *ws.Handler,
	authMw *middleware.AuthMiddleware,
) *Registry {
	return &Registry{health: health, auth: auth, jobs: jobs, users: users, ws: wsHandler, authMw: authMw}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.health != nil {
		r.health.RegisterRoutes(app)
	}

	requireAuth := r.authMw.Middleware()

	if r.auth != nil {
		r.auth.RegisterRoutes(app.Group("/auth"), requireAuth)
	}
	if r.jobs != nil {
		r.jobs.RegisterRoutes(app.Group("/jobs"), requireAuth)
	}
	if r.users != nil {
		r.users.RegisterRoutes(app.Group("/users"), requireAuth)
	}
	if r.ws != nil {
		app.Get("/ws/jobs", r.ws.HandleJobsWS)
	}
}
