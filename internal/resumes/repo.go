package resumes

import "context"

// Repo defines persistence for templates and resumes. Template lookups only
// see active templates; resume lookups are owner-scoped.
type Repo interface {
	ListTemplates(ctx context.Context) ([]Template, error)
	GetTemplate(ctx context.Context, id int64) (Template, error)

	Create(ctx context.Context, resume Resume) (Resume, error)
	GetByID(ctx context.Context, userID string, id int64) (Resume, error)
	ListByUser(ctx context.Context, userID string) ([]Resume, error)
	Update(ctx context.Context, resume Resume) (Resume, error)
	Delete(ctx context.Context, userID string, id int64) error
	DeleteByUser(ctx context.Context, userID string) error
}
