package handler

import (
	"errors"

	"job-board/internal/delivery/http/dto"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/domain/user"
	"job-board/internal/pkg/response"
	useruc "job-board/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc *useruc.Service
}

func NewUserHandler(uc *useruc.Service) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router, authMw fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/me", authMw, h.GetMe)
	r.Get("/me/jobs", authMw, h.ListMyJobs)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	callerID, ok := callerIDFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, MessageUnauthorized, nil, nil)
	}

	usr, err := h.uc.GetMe(c.Context(), callerID)
	if err != nil {
		return mapUserError(err)
	}
	jobs, err := h.uc.ListMyJobs(c.Context(), callerID)
	if err != nil {
		return mapUserError(err)
	}

	return response.Success(c, "", dto.NewUserProfileResponse(usr, len(jobs)))
}

func (h *UserHandler) ListMyJobs(c fiber.Ctx) error {
	callerID, ok := callerIDFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, MessageUnauthorized, nil, nil)
	}

	jobs, err := h.uc.ListMyJobs(c.Context(), callerID)
	if err != nil {
		return mapUserError(err)
	}
	return response.List(c, jobs)
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, useruc.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusUnauthorized, MessageUnauthorized, nil, err)
	case errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
