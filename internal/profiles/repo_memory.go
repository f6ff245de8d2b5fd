package profiles

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores profiles in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu       sync.RWMutex
	nextID   int64
	profiles map[string]Profile
	entries  map[int64]Entry
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		profiles: make(map[string]Profile),
		entries:  make(map[int64]Entry),
	}
}

func (r *MemoryRepo) EnsureProfile(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[userID]; ok {
		return p, nil
	}
	p := Profile{UserID: userID, UpdatedAt: time.Now().UTC()}
	r.profiles[userID] = p
	return p, nil
}

func (r *MemoryRepo) GetProfile(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryRepo) UpdateProfile(ctx context.Context, profile Profile) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.UserID]; !ok {
		return Profile{}, ErrNotFound
	}
	profile.UpdatedAt = time.Now().UTC()
	r.profiles[profile.UserID] = profile
	return profile, nil
}

func (r *MemoryRepo) ListEntries(ctx context.Context, userID string, kind Kind) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Entry, 0)
	for _, e := range r.entries {
		if e.UserID == userID && (kind == "" || e.Kind == kind) {
			out = append(out, e)
		}
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryRepo) CreateEntry(ctx context.Context, entry Entry) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	entry.ID = r.nextID
	entry.CreatedAt = time.Now().UTC()
	r.entries[entry.ID] = entry
	return entry, nil
}

func (r *MemoryRepo) GetEntry(ctx context.Context, userID string, kind Kind, id int64) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok || e.UserID != userID || e.Kind != kind {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (r *MemoryRepo) UpdateEntry(ctx context.Context, entry Entry) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.entries[entry.ID]
	if !ok || existing.UserID != entry.UserID || existing.Kind != entry.Kind {
		return Entry{}, ErrNotFound
	}
	existing.Payload = entry.Payload
	r.entries[entry.ID] = existing
	return existing, nil
}

func (r *MemoryRepo) DeleteEntry(ctx context.Context, userID string, kind Kind, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok || e.UserID != userID || e.Kind != kind {
		return ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *MemoryRepo) DeleteByUser(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.entries {
		if e.UserID == userID {
			delete(r.entries, id)
		}
	}
	delete(r.profiles, userID)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
