package repository

import (
	"context"
	"sync"
	"time"

	"job-board/internal/domain/job"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryJobRepository keeps postings in insertion order. It backs JOB_STORE=memory
// and the package tests of the layers above the store.
type MemoryJobRepository struct {
	mu    sync.RWMutex
	items []job.Posting
	now   func() time.Time
}

var _ job.Repository = (*MemoryJobRepository)(nil)

func NewMemoryJobRepository() *MemoryJobRepository {
	return &MemoryJobRepository{now: time.Now}
}

func (r *MemoryJobRepository) Insert(_ context.Context, p job.Posting) (job.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.items = append(r.items, p)
	return p, nil
}

func (r *MemoryJobRepository) FindByID(ctx context.Context, id string) (job.Posting, error) {
	if id == "" {
		return job.Posting{}, job.ErrNotFound
	}
	return r.FindOne(ctx, job.Filter{ID: id})
}

func (r *MemoryJobRepository) FindOne(_ context.Context, f job.Filter) (job.Posting, error) {
	if f.ID != "" && !primitive.IsValidObjectID(f.ID) {
		return job.Posting{}, job.ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.items {
		if f.Match(p) {
			return p, nil
		}
	}
	return job.Posting{}, job.ErrNotFound
}

func (r *MemoryJobRepository) UpdateByID(_ context.Context, id string, fields job.Fields) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return job.ErrNotFound
	}
	r.items[i].Fields = fields
	r.items[i].UpdatedAt = r.now().UTC()
	return nil
}

func (r *MemoryJobRepository) DeleteByID(_ context.Context, id string) (job.Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return job.Posting{}, job.ErrNotFound
	}
	p := r.items[i]
	r.items = append(r.items[:i], r.items[i+1:]...)
	return p, nil
}

func (r *MemoryJobRepository) Find(_ context.Context, f job.Filter) ([]job.Posting, error) {
	if f.ID != "" && !primitive.IsValidObjectID(f.ID) {
		return []job.Posting{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]job.Posting, 0)
	for _, p := range r.items {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryJobRepository) indexOf(id string) int {
	for i, p := range r.items {
		if p.IDHex() == id {
			return i
		}
	}
	return -1
}
