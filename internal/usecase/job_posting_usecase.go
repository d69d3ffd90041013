package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"job-board/internal/domain/job"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrJobNotFound  = errors.New("job not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInternal     = errors.New("internal error")
)

// JobPostingInput is the caller-supplied part of a posting. The owner is never
// part of it.
type JobPostingInput struct {
	CompanyName  string     `json:"companyName" validate:"required"`
	Title        string     `json:"title" validate:"required"`
	Description  string     `json:"description" validate:"required"`
	LogoURL      string     `json:"logoUrl" validate:"required"`
	Salary       job.Salary `json:"salary" validate:"required"`
	Location     string     `json:"location" validate:"required"`
	Duration     string     `json:"duration" validate:"required"`
	LocationType string     `json:"locationType" validate:"required"`
	Skills       job.Skills `json:"skills" validate:"required"`
}

func (in JobPostingInput) fields() job.Fields {
	return job.Fields{
		CompanyName:  in.CompanyName,
		Title:        in.Title,
		Description:  in.Description,
		LogoURL:      in.LogoURL,
		Salary:       in.Salary,
		Location:     in.Location,
		Duration:     in.Duration,
		LocationType: in.LocationType,
		Skills:       in.Skills,
	}
}

type SearchParams struct {
	Title  string
	Skills string
}

type JobPostingUsecase interface {
	CreateJobPosting(ctx context.Context, in JobPostingInput, callerID string) (job.Posting, error)
	GetJobPostingByID(ctx context.Context, id string) (job.Posting, error)
	UpdateJobPostingByID(ctx context.Context, id string, in JobPostingInput, callerID string) (job.Posting, error)
	DeleteJobPostingByID(ctx context.Context, id string) (job.Posting, error)
	SearchJobPostings(ctx context.Context, params SearchParams) ([]job.Posting, error)
}

type JobPosting struct {
	jobs     job.Repository
	events   job.EventPublisher
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

var _ JobPostingUsecase = (*JobPosting)(nil)

func NewJobPostingUsecase(jobs job.Repository, events job.EventPublisher, logger *zap.Logger) *JobPosting {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobPosting{
		jobs:     jobs,
		events:   events,
		validate: newInputValidator(),
		logger:   logger.Named("jobs"),
		now:      time.Now,
	}
}

func newInputValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		switch x := field.Interface().(type) {
		case job.Salary:
			return x.Value()
		case job.Skills:
			return x.Value()
		}
		return nil
	}, job.Salary{}, job.Skills{})
	return v
}

func (u *JobPosting) CreateJobPosting(ctx context.Context, in JobPostingInput, callerID string) (job.Posting, error) {
	if callerID == "" {
		return job.Posting{}, ErrInvalidInput
	}
	if err := u.validateInput(in); err != nil {
		return job.Posting{}, err
	}

	created, err := u.jobs.Insert(ctx, job.Posting{Fields: in.fields(), RefUserID: callerID})
	if err != nil {
		u.logger.Error("create job failed", zap.String("ref_user_id", callerID), zap.Error(err))
		return job.Posting{}, ErrInternal
	}

	u.publish(ctx, job.EventCreated, created)
	return created, nil
}

func (u *JobPosting) GetJobPostingByID(ctx context.Context, id string) (job.Posting, error) {
	p, err := u.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		u.logger.Error("get job failed", zap.String("job_id", id), zap.Error(err))
		return job.Posting{}, ErrInternal
	}
	return p, nil
}

// UpdateJobPostingByID checks id, then ownership, then fields. A missing job and a
// job owned by someone else are reported the same way.
func (u *JobPosting) UpdateJobPostingByID(ctx context.Context, id string, in JobPostingInput, callerID string) (job.Posting, error) {
	if id == "" {
		return job.Posting{}, ErrInvalidInput
	}
	if callerID == "" {
		return job.Posting{}, ErrForbidden
	}

	if _, err := u.jobs.FindOne(ctx, job.Filter{ID: id, RefUserID: callerID}); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Posting{}, ErrForbidden
		}
		u.logger.Error("update job ownership lookup failed", zap.String("job_id", id), zap.Error(err))
		return job.Posting{}, ErrInternal
	}

	if err := u.validateInput(in); err != nil {
		return job.Posting{}, err
	}

	if err := u.jobs.UpdateByID(ctx, id, in.fields()); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		u.logger.Error("update job failed", zap.String("job_id", id), zap.Error(err))
		return job.Posting{}, ErrInternal
	}

	updated, err := u.jobs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		u.logger.Error("reload updated job failed", zap.String("job_id", id), zap.Error(err))
		return job.Posting{}, ErrInternal
	}

	u.publish(ctx, job.EventUpdated, updated)
	return updated, nil
}

// DeleteJobPostingByID does not check ownership.
// TODO: require the caller to own the posting once existing clients are migrated.
func (u *JobPosting) DeleteJobPostingByID(ctx context.Context, id string) (job.Posting, error) {
	if id == "" {
		return job.Posting{}, ErrInvalidInput
	}

	deleted, err := u.jobs.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		u.logger.Error("delete job failed", zap.String("job_id", id), zap.Error(err))
		return job.Posting{}, ErrInternal
	}

	u.publish(ctx, job.EventDeleted, deleted)
	return deleted, nil
}

func (u *JobPosting) SearchJobPostings(ctx context.Context, params SearchParams) ([]job.Posting, error) {
	items, err := u.jobs.Find(ctx, job.Filter{
		Title:  params.Title,
		Skills: splitSkills(params.Skills),
	})
	if err != nil {
		u.logger.Error("search jobs failed", zap.String("title", params.Title), zap.String("skills", params.Skills), zap.Error(err))
		return nil, ErrInternal
	}
	if items == nil {
		items = []job.Posting{}
	}
	return items, nil
}

func (u *JobPosting) validateInput(in JobPostingInput) error {
	if err := u.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				missing = append(missing, fe.Field())
			}
			return fmt.Errorf("%w: missing %s", ErrInvalidInput, strings.Join(missing, ", "))
		}
		return ErrInvalidInput
	}
	return nil
}

func (u *JobPosting) publish(ctx context.Context, t job.EventType, p job.Posting) {
	if u.events == nil {
		return
	}
	if err := u.events.Publish(ctx, job.NewEvent(t, p, u.now())); err != nil {
		u.logger.Warn("publish job event failed", zap.String("type", string(t)), zap.String("job_id", p.IDHex()), zap.Error(err))
	}
}

func splitSkills(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
