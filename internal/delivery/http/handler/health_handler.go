package handler

import (
	"context"
	"time"

	"job-board/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const readinessTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency is one backend probed by /health/ready. Optional ones are
// reported but do not fail readiness.
type Dependency struct {
	Name     string
	Pinger   Pinger
	Optional bool
}

type HealthHandler struct {
	deps   []Dependency
	logger *zap.Logger
}

func NewHealthHandler(logger *zap.Logger, deps ...Dependency) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{deps: deps, logger: logger.Named("health")}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Live)
	r.Get("/health/ready", h.Ready)
}

func (h *HealthHandler) Live(c fiber.Ctx) error {
	return response.Success(c, "ok", nil)
}

func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), readinessTimeout)
	defer cancel()

	status := make(map[string]string, len(h.deps))
	ready := true
	for _, d := range h.deps {
		if d.Pinger == nil {
			status[d.Name] = "disabled"
			continue
		}
		if err := d.Pinger.Ping(ctx); err != nil {
			h.logger.Warn("dependency not ready", zap.String("dependency", d.Name), zap.Error(err))
			status[d.Name] = "down"
			if !d.Optional {
				ready = false
			}
			continue
		}
		status[d.Name] = "up"
	}

	if !ready {
		return response.Error(c, fiber.StatusServiceUnavailable, "", status)
	}
	return response.Success(c, "ok", status)
}
