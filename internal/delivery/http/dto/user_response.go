package dto

import (
	"time"

	"job-board/internal/domain/user"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	JobCount  int       `json:"jobCount"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserProfileResponse(u user.User, jobCount int) UserProfileResponse {
	return UserProfileResponse{
		ID:        u.ID,
		Email:     u.Email,
		JobCount:  jobCount,
		CreatedAt: u.CreatedAt,
	}
}
