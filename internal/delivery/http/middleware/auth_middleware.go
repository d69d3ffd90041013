package middleware

import (
	"strings"

	"job-board/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	CtxUserIDKey = "user_id"
	CtxEmailKey  = "email"
	CtxClaimsKey = "claims"
)

type AuthMiddleware struct {
	auth usecase.AuthUsecase
}

func NewAuthMiddleware(auth usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Middleware admits requests carrying a valid, unrevoked access token and
// stores the caller's id under CtxUserIDKey.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := BearerToken(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.auth.Authenticate(c.Context(), token)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}

		c.Locals(CtxUserIDKey, claims.UserID.String())
		c.Locals(CtxEmailKey, claims.Email)
		c.Locals(CtxClaimsKey, claims)

		return c.Next()
	}
}

func BearerToken(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
