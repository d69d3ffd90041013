package handler

import (
	"errors"
	"strings"

	"job-board/internal/delivery/http/middleware"
	"job-board/internal/pkg/response"
	"job-board/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	MessageJobCreated   = "Job has been created!"
	MessageJobUpdated   = "Job updated successfully"
	MessageJobDeleted   = "Job deleted successfully"
	MessageJobNotFound  = "Job not found"
	MessageMissingJobID = "Bad request: Missing jobId"
	MessageBadRequest   = "Bad request"
	MessageUnauthorized = "Unauthorized"

	paramJobID = "jobId"
)

type JobsHandler struct {
	uc usecase.JobPostingUsecase
}

func NewJobsHandler(uc usecase.JobPostingUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router, authMw fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.HandleSearchJobs)
	r.Post("/", authMw, h.HandleCreateJob)
	r.Get("/:jobId", h.HandleGetJob)
	r.Put("/:jobId", authMw, h.HandleUpdateJob)
	r.Patch("/:jobId", authMw, h.HandleUpdateJob)
	r.Delete("/:jobId?", h.HandleDeleteJob)
}

func (h *JobsHandler) HandleCreateJob(c fiber.Ctx) error {
	callerID, ok := callerIDFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, MessageUnauthorized, nil, nil)
	}

	var in usecase.JobPostingInput
	if err := c.Bind().Body(&in); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, MessageBadRequest, nil, err)
	}

	created, err := h.uc.CreateJobPosting(c.Context(), in, callerID)
	if err != nil {
		return mapJobPostingError(err)
	}
	return response.Success(c, MessageJobCreated, created)
}

func (h *JobsHandler) HandleGetJob(c fiber.Ctx) error {
	p, err := h.uc.GetJobPostingByID(c.Context(), jobIDParam(c))
	if err != nil {
		return mapJobPostingError(err)
	}
	return response.Success(c, "", p)
}

func (h *JobsHandler) HandleUpdateJob(c fiber.Ctx) error {
	callerID, ok := callerIDFrom(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, MessageUnauthorized, nil, nil)
	}

	var in usecase.JobPostingInput
	if err := c.Bind().Body(&in); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, MessageBadRequest, nil, err)
	}

	updated, err := h.uc.UpdateJobPostingByID(c.Context(), jobIDParam(c), in, callerID)
	if err != nil {
		return mapJobPostingError(err)
	}
	return response.Success(c, MessageJobUpdated, updated)
}

func (h *JobsHandler) HandleDeleteJob(c fiber.Ctx) error {
	id := jobIDParam(c)
	if id == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, MessageMissingJobID, nil, nil)
	}

	deleted, err := h.uc.DeleteJobPostingByID(c.Context(), id)
	if err != nil {
		return mapJobPostingError(err)
	}
	return response.Deleted(c, MessageJobDeleted, deleted)
}

func (h *JobsHandler) HandleSearchJobs(c fiber.Ctx) error {
	items, err := h.uc.SearchJobPostings(c.Context(), usecase.SearchParams{
		Title:  c.Query("title"),
		Skills: c.Query("skills"),
	})
	if err != nil {
		return mapJobPostingError(err)
	}
	return response.List(c, items)
}

func jobIDParam(c fiber.Ctx) string {
	return strings.TrimSpace(c.Params(paramJobID))
}

func callerIDFrom(c fiber.Ctx) (string, bool) {
	id, ok := c.Locals(middleware.CtxUserIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func mapJobPostingError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusBadRequest, MessageBadRequest, nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, MessageJobNotFound, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
