package usecase

import (
	"context"
	"errors"
	"time"

	"job-board/internal/domain/user"
	"job-board/internal/pkg/jwt"
	ucauth "job-board/internal/usecase/auth"

	"go.uber.org/zap"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrTokenRevoked        = errors.New("token revoked")
)

// TokenRevoker stores token ids that must no longer be accepted.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthResult struct {
	User         user.User `json:"user"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
}

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error)
	Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (AuthResult, error)
	Logout(ctx context.Context, claims jwt.Claims) error
	Authenticate(ctx context.Context, accessToken string) (jwt.Claims, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
	revoked TokenRevoker
	logger  *zap.Logger
	now     func() time.Time
}

var _ AuthUsecase = (*Auth)(nil)

func NewAuthUsecase(users user.Repository, jwtSvc jwt.Service, revoked TokenRevoker, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{
		authSvc: ucauth.NewService(users),
		users:   users,
		jwt:     jwtSvc,
		revoked: revoked,
		logger:  logger.Named("auth"),
		now:     time.Now,
	}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (AuthResult, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}
	return u.issue(usr)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (AuthResult, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}
	return u.issue(usr)
}

// Refresh rotates the pair; the presented refresh token is revoked.
func (u *Auth) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	if refreshToken == "" {
		return AuthResult{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return AuthResult{}, ErrRefreshTokenExpired
		}
		return AuthResult{}, ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return AuthResult{}, ErrInvalidRefreshToken
	}
	if u.isRevoked(ctx, claims) {
		return AuthResult{}, ErrTokenRevoked
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return AuthResult{}, ErrInvalidRefreshToken
		}
		u.logger.Error("load user for refresh", zap.Stringer("userId", claims.UserID), zap.Error(err))
		return AuthResult{}, ErrInternal
	}

	res, err := u.issue(usr)
	if err != nil {
		return AuthResult{}, err
	}
	u.revoke(ctx, claims)
	return res, nil
}

func (u *Auth) Logout(ctx context.Context, claims jwt.Claims) error {
	if claims.TokenID() == "" {
		return ErrUnauthorized
	}
	if u.revoked == nil {
		return nil
	}
	ttl := claims.ExpiresIn(u.now())
	if ttl <= 0 {
		return nil
	}
	if err := u.revoked.Revoke(ctx, claims.TokenID(), ttl); err != nil {
		u.logger.Error("revoke access token", zap.String("jti", claims.TokenID()), zap.Error(err))
		return ErrInternal
	}
	return nil
}

// Authenticate accepts only unrevoked access tokens.
func (u *Auth) Authenticate(ctx context.Context, accessToken string) (jwt.Claims, error) {
	if accessToken == "" {
		return jwt.Claims{}, ErrUnauthorized
	}
	claims, err := u.jwt.ValidateToken(accessToken)
	if err != nil || u.jwt.IsRefreshToken(claims) {
		return jwt.Claims{}, ErrUnauthorized
	}
	if u.isRevoked(ctx, claims) {
		return jwt.Claims{}, ErrTokenRevoked
	}
	return claims, nil
}

func (u *Auth) issue(usr user.User) (AuthResult, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, usr.Email)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID)
	if err != nil {
		return AuthResult{}, ErrInternal
	}
	return AuthResult{User: usr, AccessToken: access, RefreshToken: refresh}, nil
}

// isRevoked fails open when the revocation store errors.
func (u *Auth) isRevoked(ctx context.Context, claims jwt.Claims) bool {
	if u.revoked == nil || claims.TokenID() == "" {
		return false
	}
	revoked, err := u.revoked.IsRevoked(ctx, claims.TokenID())
	if err != nil {
		u.logger.Warn("revocation lookup failed", zap.Error(err))
		return false
	}
	return revoked
}

func (u *Auth) revoke(ctx context.Context, claims jwt.Claims) {
	if u.revoked == nil {
		return
	}
	ttl := claims.ExpiresIn(u.now())
	if ttl <= 0 {
		return
	}
	if err := u.revoked.Revoke(ctx, claims.TokenID(), ttl); err != nil {
		u.logger.Warn("revoke refresh token", zap.String("jti", claims.TokenID()), zap.Error(err))
	}
}
