package jobdescriptions

import "context"

// Repo defines persistence operations for job descriptions. Lookups are
// owner-scoped: a record of another user is reported as ErrNotFound.
type Repo interface {
	Create(ctx context.Context, jd JobDescription) (JobDescription, error)
	GetByID(ctx context.Context, userID string, id int64) (JobDescription, error)
	ListByUser(ctx context.Context, userID string) ([]JobDescription, error)
	Titles(ctx context.Context, userID string, ids []int64) (map[int64]*string, error)
	Update(ctx context.Context, jd JobDescription) (JobDescription, error)
	Delete(ctx context.Context, userID string, id int64) error
	DeleteByUser(ctx context.Context, userID string) error
}
