package jobdescriptions

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores job descriptions in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]JobDescription
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[int64]JobDescription)}
}

func (r *MemoryRepo) Create(ctx context.Context, jd JobDescription) (JobDescription, error) {
	if err := ctx.Err(); err != nil {
		return JobDescription{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	jd.ID = r.nextID
	now := time.Now().UTC()
	if jd.UploadedAt.IsZero() {
		jd.UploadedAt = now
	}
	jd.UpdatedAt = now
	r.byID[jd.ID] = jd
	return jd, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string, id int64) (JobDescription, error) {
	if err := ctx.Err(); err != nil {
		return JobDescription{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	jd, ok := r.byID[id]
	if !ok || jd.UserID != userID {
		return JobDescription{}, ErrNotFound
	}
	return jd, nil
}

// ListByUser returns the user's job descriptions, newest upload first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]JobDescription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]JobDescription, 0)
	for _, jd := range r.byID {
		if jd.UserID == userID {
			out = append(out, jd)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Titles(ctx context.Context, userID string, ids []int64) (map[int64]*string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[int64]*string, len(ids))
	for _, id := range ids {
		if jd, ok := r.byID[id]; ok && jd.UserID == userID {
			out[id] = jd.Title
		}
	}
	return out, nil
}

func (r *MemoryRepo) Update(ctx context.Context, jd JobDescription) (JobDescription, error) {
	if err := ctx.Err(); err != nil {
		return JobDescription{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[jd.ID]
	if !ok || existing.UserID != jd.UserID {
		return JobDescription{}, ErrNotFound
	}
	existing.Title = jd.Title
	existing.RawText = jd.RawText
	existing.UpdatedAt = time.Now().UTC()
	r.byID[jd.ID] = existing
	return existing, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID string, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	jd, ok := r.byID[id]
	if !ok || jd.UserID != userID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, jd := range r.byID {
		if jd.UserID == userID {
			delete(r.byID, id)
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
