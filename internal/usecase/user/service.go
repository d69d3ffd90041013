package user

import (
	"context"
	"errors"

	"job-board/internal/domain/job"
	"job-board/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Service serves the caller's own account and postings.
type Service struct {
	users user.Repository
	jobs  job.Repository
}

func NewService(users user.Repository, jobs job.Repository) *Service {
	return &Service{users: users, jobs: jobs}
}

func (s *Service) GetMe(ctx context.Context, userID string) (user.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return user.User{}, ErrInvalidInput
	}

	usr, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	usr.PasswordHash = ""
	return usr, nil
}

// ListMyJobs returns the postings whose refUserId is userID.
func (s *Service) ListMyJobs(ctx context.Context, userID string) ([]job.Posting, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	items, err := s.jobs.Find(ctx, job.Filter{RefUserID: userID})
	if err != nil {
		return nil, ErrInternal
	}
	if items == nil {
		items = []job.Posting{}
	}
	return items, nil
}
