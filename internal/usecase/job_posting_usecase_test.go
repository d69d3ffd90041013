package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"job-board/internal/domain/job"
	"job-board/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type failingJobRepo struct {
	err error
}

func (f failingJobRepo) Insert(context.Context, job.Posting) (job.Posting, error) {
	return job.Posting{}, f.err
}
func (f failingJobRepo) FindByID(context.Context, string) (job.Posting, error) {
	return job.Posting{}, f.err
}
func (f failingJobRepo) FindOne(context.Context, job.Filter) (job.Posting, error) {
	return job.Posting{}, f.err
}
func (f failingJobRepo) UpdateByID(context.Context, string, job.Fields) error { return f.err }
func (f failingJobRepo) DeleteByID(context.Context, string) (job.Posting, error) {
	return job.Posting{}, f.err
}
func (f failingJobRepo) Find(context.Context, job.Filter) ([]job.Posting, error) {
	return nil, f.err
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []job.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt job.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func validInput() JobPostingInput {
	return JobPostingInput{
		CompanyName:  "Acme",
		Title:        "Backend Engineer",
		Description:  "Build APIs",
		LogoURL:      "https://acme.test/logo.png",
		Salary:       job.SalaryNumber(120000),
		Location:     "Berlin",
		Duration:     "Full-time",
		LocationType: "remote",
		Skills:       job.SkillsText("Go,Docker"),
	}
}

func newTestUsecase(t *testing.T) (*JobPosting, *repository.MemoryJobRepository, *recordingPublisher) {
	t.Helper()
	repo := repository.NewMemoryJobRepository()
	pub := &recordingPublisher{}
	return NewJobPostingUsecase(repo, pub, zap.NewNop()), repo, pub
}

func TestCreateJobPosting_SetsOwnerFromCaller(t *testing.T) {
	uc, _, pub := newTestUsecase(t)
	ctx := context.Background()

	created, err := uc.CreateJobPosting(ctx, validInput(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", created.RefUserID)
	assert.False(t, created.ID.IsZero())

	got, err := uc.GetJobPostingByID(ctx, created.IDHex())
	require.NoError(t, err)
	assert.Equal(t, validInput().fields(), got.Fields)
	assert.Equal(t, "u1", got.RefUserID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, job.EventCreated, pub.events[0].Type)
	assert.Equal(t, created.IDHex(), pub.events[0].JobID)
}

func TestCreateJobPosting_MissingFields(t *testing.T) {
	cases := map[string]func(in *JobPostingInput){
		"companyName":       func(in *JobPostingInput) { in.CompanyName = "" },
		"title":             func(in *JobPostingInput) { in.Title = "" },
		"description":       func(in *JobPostingInput) { in.Description = "" },
		"logoUrl":           func(in *JobPostingInput) { in.LogoURL = "" },
		"salary missing":    func(in *JobPostingInput) { in.Salary = job.Salary{} },
		"salary zero":       func(in *JobPostingInput) { in.Salary = job.SalaryNumber(0) },
		"location":          func(in *JobPostingInput) { in.Location = "" },
		"duration":          func(in *JobPostingInput) { in.Duration = "" },
		"locationType":      func(in *JobPostingInput) { in.LocationType = "" },
		"skills missing":    func(in *JobPostingInput) { in.Skills = job.Skills{} },
		"skills empty list": func(in *JobPostingInput) { in.Skills = job.SkillsList() },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			uc, repo, pub := newTestUsecase(t)
			in := validInput()
			mutate(&in)

			_, err := uc.CreateJobPosting(context.Background(), in, "u1")
			assert.ErrorIs(t, err, ErrInvalidInput)

			items, err := repo.Find(context.Background(), job.Filter{})
			require.NoError(t, err)
			assert.Empty(t, items)
			assert.Empty(t, pub.events)
		})
	}
}

func TestCreateJobPosting_TextSalaryAndSkillList(t *testing.T) {
	uc, _, _ := newTestUsecase(t)
	in := validInput()
	in.Salary = job.SalaryText("negotiable")
	in.Skills = job.SkillsList("Go", "Kubernetes")

	created, err := uc.CreateJobPosting(context.Background(), in, "u1")
	require.NoError(t, err)
	assert.Equal(t, "negotiable", created.Salary.Value())
	assert.Equal(t, []string{"Go", "Kubernetes"}, created.Skills.Value())
}

func TestCreateJobPosting_RequiresCaller(t *testing.T) {
	uc, _, _ := newTestUsecase(t)
	_, err := uc.CreateJobPosting(context.Background(), validInput(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetJobPostingByID_NotFound(t *testing.T) {
	uc, _, _ := newTestUsecase(t)

	_, err := uc.GetJobPostingByID(context.Background(), "65f1c0ffee0000000000beef")
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, err = uc.GetJobPostingByID(context.Background(), "not-an-object-id")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestUpdateJobPostingByID_Owner(t *testing.T) {
	uc, _, pub := newTestUsecase(t)
	ctx := context.Background()

	created, err := uc.CreateJobPosting(ctx, validInput(), "u1")
	require.NoError(t, err)

	in := validInput()
	in.Title = "Senior Backend Engineer"
	in.Salary = job.SalaryText("150k")

	updated, err := uc.UpdateJobPostingByID(ctx, created.IDHex(), in, "u1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "u1", updated.RefUserID)
	assert.Equal(t, "Senior Backend Engineer", updated.Title)
	assert.Equal(t, "150k", updated.Salary.Value())

	require.Len(t, pub.events, 2)
	assert.Equal(t, job.EventUpdated, pub.events[1].Type)
}

func TestUpdateJobPostingByID_NonOwnerLeavesRecordUnchanged(t *testing.T) {
	uc, _, _ := newTestUsecase(t)
	ctx := context.Background()

	created, err := uc.CreateJobPosting(ctx, validInput(), "u1")
	require.NoError(t, err)

	in := validInput()
	in.Title = "Hijacked"
	_, err = uc.UpdateJobPostingByID(ctx, created.IDHex(), in, "u2")
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := uc.GetJobPostingByID(ctx, created.IDHex())
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestUpdateJobPostingByID_MissingJobLooksLikeForbidden(t *testing.T) {
	uc, _, _ := newTestUsecase(t)
	_, err := uc.UpdateJobPostingByID(context.Background(), "65f1c0ffee0000000000beef", validInput(), "u1")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateJobPostingByID_Validation(t *testing.T) {
	uc, _, _ := newTestUsecase(t)
	ctx := context.Background()

	created, err := uc.CreateJobPosting(ctx, validInput(), "u1")
	require.NoError(t, err)

	_, err = uc.UpdateJobPostingByID(ctx, "", validInput(), "u1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	in := validInput()
	in.Location = ""
	_, err = uc.UpdateJobPostingByID(ctx, created.IDHex(), in, "u1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	got, err := uc.GetJobPostingByID(ctx, created.IDHex())
	require.NoError(t, err)
	assert.Equal(t, "Berlin", got.Location)
}

func TestDeleteJobPostingByID(t *testing.T) {
	uc, _, pub := newTestUsecase(t)
	ctx := context.Background()

	created, err := uc.CreateJobPosting(ctx, validInput(), "u1")
	require.NoError(t, err)

	_, err = uc.DeleteJobPostingByID(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	deleted, err := uc.DeleteJobPostingByID(ctx, created.IDHex())
	require.NoError(t, err)
	assert.Equal(t, created, deleted)

	_, err = uc.GetJobPostingByID(ctx, created.IDHex())
	assert.ErrorIs(t, err, ErrJobNotFound)

	_, err = uc.DeleteJobPostingByID(ctx, created.IDHex())
	assert.ErrorIs(t, err, ErrJobNotFound)

	require.Len(t, pub.events, 2)
	assert.Equal(t, job.EventDeleted, pub.events[1].Type)
}

func TestSearchJobPostings(t *testing.T) {
	uc, _, _ := newTestUsecase(t)
	ctx := context.Background()

	seed := []struct {
		title  string
		skills job.Skills
	}{
		{"Backend Engineer", job.SkillsText("Go,Docker")},
		{"Systems Engineer", job.SkillsList("Rust", "C")},
		{"Data Engineer", job.SkillsList("Python", "SQL")},
		{"Data Analyst", job.SkillsText("python, excel")},
		{"Designer", job.SkillsList("Figma")},
	}
	for _, s := range seed {
		in := validInput()
		in.Title = s.title
		in.Skills = s.skills
		_, err := uc.CreateJobPosting(ctx, in, "u1")
		require.NoError(t, err)
	}

	titles := func(items []job.Posting) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.Title)
		}
		return out
	}

	all, err := uc.SearchJobPostings(ctx, SearchParams{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	items, err := uc.SearchJobPostings(ctx, SearchParams{Skills: "Go,Rust"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Backend Engineer", "Systems Engineer"}, titles(items))

	items, err = uc.SearchJobPostings(ctx, SearchParams{Title: "Engineer", Skills: "Python"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Data Engineer"}, titles(items))

	items, err = uc.SearchJobPostings(ctx, SearchParams{Title: "data"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Data Engineer", "Data Analyst"}, titles(items))

	items, err = uc.SearchJobPostings(ctx, SearchParams{Title: ".*"})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)

	items, err = uc.SearchJobPostings(ctx, SearchParams{Skills: " , "})
	require.NoError(t, err)
	assert.Len(t, items, 5)
}

func TestJobPosting_StorageFailuresAreInternal(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	uc := NewJobPostingUsecase(failingJobRepo{err: errors.New("connection reset")}, nil, zap.New(core))
	ctx := context.Background()

	_, err := uc.CreateJobPosting(ctx, validInput(), "u1")
	assert.ErrorIs(t, err, ErrInternal)

	_, err = uc.GetJobPostingByID(ctx, "65f1c0ffee0000000000beef")
	assert.ErrorIs(t, err, ErrInternal)

	_, err = uc.UpdateJobPostingByID(ctx, "65f1c0ffee0000000000beef", validInput(), "u1")
	assert.ErrorIs(t, err, ErrInternal)

	_, err = uc.DeleteJobPostingByID(ctx, "65f1c0ffee0000000000beef")
	assert.ErrorIs(t, err, ErrInternal)

	_, err = uc.SearchJobPostings(ctx, SearchParams{Title: "x"})
	assert.ErrorIs(t, err, ErrInternal)

	assert.Equal(t, 5, logs.Len())
}

func TestJobPosting_PublishFailureDoesNotFailOperation(t *testing.T) {
	repo := repository.NewMemoryJobRepository()
	pub := &recordingPublisher{err: errors.New("nats down")}
	uc := NewJobPostingUsecase(repo, pub, zap.NewNop())

	_, err := uc.CreateJobPosting(context.Background(), validInput(), "u1")
	require.NoError(t, err)
	assert.Len(t, pub.events, 1)
}

func TestSplitSkills(t *testing.T) {
	assert.Nil(t, splitSkills(""))
	assert.Equal(t, []string{"Go", "Rust"}, splitSkills(" Go , Rust ,"))
}
