package app

import (
	"context"
	"fmt"
	"strings"

	"job-board/internal/config"
	"job-board/internal/delivery/http/handler"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/delivery/http/routes"
	"job-board/internal/pkg/jwt"
	"job-board/internal/usecase"
	useruc "job-board/internal/usecase/user"
	"job-board/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber *fiber.App
}

// New wires handlers on top of the container's resources.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	routes.NewRegistry(buildHandlers(c)).Register(f)

	return &App{Fiber: f}
}

func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func(context.Context) error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func buildHandlers(c *Container) (
	*handler.HealthHandler,
	*handler.AuthHandler,
	*handler.JobsHandler,
	*handler.UserHandler,
	*ws.Handler,
	*middleware.AuthMiddleware,
) {
	cfg := c.Config
	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	var revoker usecase.TokenRevoker
	if c.Cache != nil {
		revoker = c.Cache
	}
	authUC := usecase.NewAuthUsecase(c.Users, jwtSvc, revoker, c.Logger)
	jobsUC := usecase.NewJobPostingUsecase(c.Jobs, c.Events, c.Logger)

	deps := []handler.Dependency{{Name: "postgres", Pinger: c.DB}}
	if c.Mongo != nil {
		deps = append(deps, handler.Dependency{Name: "mongo", Pinger: c.Mongo})
	}
	if c.Cache != nil {
		deps = append(deps, handler.Dependency{Name: "redis", Pinger: c.Cache, Optional: true})
	}

	return handler.NewHealthHandler(c.Logger, deps...),
		handler.NewAuthHandler(authUC),
		handler.NewJobsHandler(jobsUC),
		handler.NewUserHandler(useruc.NewService(c.Users, c.Jobs)),
		ws.NewHandler(c.Hub, cfg.App.WSAllowedOrigins),
		middleware.NewAuthMiddleware(authUC)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
