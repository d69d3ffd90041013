package handler

import (
	"errors"

	"job-board/internal/delivery/http/middleware"
	"job-board/internal/pkg/jwt"
	"job-board/internal/pkg/response"
	"job-board/internal/usecase"
	ucauth "job-board/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

const MessageLoggedOut = "Logged out"

type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router, authMw fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)
	r.Post("/logout", authMw, h.Logout)
}

func (h *AuthHandler) Register(c fiber.Ctx) error {
	var req ucauth.RegisterInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, MessageBadRequest, nil, err)
	}

	res, err := h.uc.Register(c.Context(), req)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, "", res)
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req ucauth.LoginInput
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, MessageBadRequest, nil, err)
	}

	res, err := h.uc.Login(c.Context(), req)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, "", res)
}

func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get("Authorization"))
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, MessageUnauthorized, nil, nil)
	}

	res, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, "", res)
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	claims, ok := c.Locals(middleware.CtxClaimsKey).(jwt.Claims)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, MessageUnauthorized, nil, nil)
	}

	if err := h.uc.Logout(c.Context(), claims); err != nil {
		return mapAuthUsecaseError(err)
	}
	return response.Success(c, MessageLoggedOut, nil)
}

func mapAuthUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, MessageBadRequest, nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid credentials", nil, err)
	case errors.Is(err, usecase.ErrRefreshTokenExpired):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
	case errors.Is(err, usecase.ErrInvalidRefreshToken),
		errors.Is(err, usecase.ErrTokenRevoked),
		errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, MessageUnauthorized, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
