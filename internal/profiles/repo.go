package profiles

import "context"

// Repo defines persistence for profiles and their entries.
type Repo interface {
	EnsureProfile(ctx context.Context, userID string) (Profile, error)
	GetProfile(ctx context.Context, userID string) (Profile, error)
	UpdateProfile(ctx context.Context, profile Profile) (Profile, error)

	// ListEntries returns entries oldest first; an empty kind returns every kind.
	ListEntries(ctx context.Context, userID string, kind Kind) ([]Entry, error)
	CreateEntry(ctx context.Context, entry Entry) (Entry, error)
	GetEntry(ctx context.Context, userID string, kind Kind, id int64) (Entry, error)
	UpdateEntry(ctx context.Context, entry Entry) (Entry, error)
	DeleteEntry(ctx context.Context, userID string, kind Kind, id int64) error

	DeleteByUser(ctx context.Context, userID string) error
}
