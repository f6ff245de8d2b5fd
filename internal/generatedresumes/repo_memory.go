package generatedresumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores generated resumes in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]GeneratedResume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[int64]GeneratedResume)}
}

// Create stores the generated resume and assigns its id.
func (r *MemoryRepo) Create(ctx context.Context, resume GeneratedResume) (GeneratedResume, error) {
	if err := ctx.Err(); err != nil {
		return GeneratedResume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	resume.ID = r.nextID
	if resume.CreatedAt.IsZero() {
		resume.CreatedAt = time.Now().UTC()
	}
	r.byID[resume.ID] = resume
	return resume, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string, id int64) (GeneratedResume, error) {
	if err := ctx.Err(); err != nil {
		return GeneratedResume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byID[id]
	if !ok || resume.UserID != userID {
		return GeneratedResume{}, ErrNotFound
	}
	return resume, nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, jobDescriptionID *int64) ([]GeneratedResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]GeneratedResume, 0)
	for _, resume := range r.byID {
		if resume.UserID != userID {
			continue
		}
		if jobDescriptionID != nil && resume.JobDescriptionID != *jobDescriptionID {
			continue
		}
		out = append(out, resume)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) UpdateContent(ctx context.Context, userID string, id int64, content string) (GeneratedResume, error) {
	if err := ctx.Err(); err != nil {
		return GeneratedResume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.byID[id]
	if !ok || resume.UserID != userID {
		return GeneratedResume{}, ErrNotFound
	}
	resume.GeneratedContent = content
	r.byID[id] = resume
	return resume, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID string, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.byID[id]
	if !ok || resume.UserID != userID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *MemoryRepo) DeleteByJobDescription(ctx context.Context, userID string, jobDescriptionID int64) error {
	return r.deleteWhere(ctx, func(resume GeneratedResume) bool {
		return resume.UserID == userID && resume.JobDescriptionID == jobDescriptionID
	})
}

func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	return r.deleteWhere(ctx, func(resume GeneratedResume) bool {
		return resume.UserID == userID
	})
}

func (r *MemoryRepo) deleteWhere(ctx context.Context, match func(GeneratedResume) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, resume := range r.byID {
		if match(resume) {
			delete(r.byID, id)
		}
	}
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
