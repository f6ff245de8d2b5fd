package generatedresumes

import "context"

// Repo defines persistence operations for generated resumes. Lookups are
// owner-scoped: a record of another user is reported as ErrNotFound.
type Repo interface {
	Create(ctx context.Context, resume GeneratedResume) (GeneratedResume, error)
	GetByID(ctx context.Context, userID string, id int64) (GeneratedResume, error)
	// ListByUser returns records newest first, optionally for one job description.
	ListByUser(ctx context.Context, userID string, jobDescriptionID *int64) ([]GeneratedResume, error)
	UpdateContent(ctx context.Context, userID string, id int64, content string) (GeneratedResume, error)
	Delete(ctx context.Context, userID string, id int64) error
	DeleteByJobDescription(ctx context.Context, userID string, jobDescriptionID int64) error
	DeleteByUser(ctx context.Context, userID string) error
}
