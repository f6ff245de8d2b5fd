package resumes

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"resume-composer/internal/shared/telemetry"
	"resume-composer/internal/shared/validation"
)

// Service exposes templates and the user's resumes.
type Service struct {
	Repo Repo

	validate *validator.Validate
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, validate: validation.New()}
}

func (s *Service) ListTemplates(ctx context.Context) ([]Template, error) {
	return s.Repo.ListTemplates(ctx)
}

func (s *Service) GetTemplate(ctx context.Context, id int64) (Template, error) {
	if id <= 0 {
		return Template{}, ErrNotFound
	}
	return s.Repo.GetTemplate(ctx, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]Resume, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID string, id int64) (Resume, error) {
	if strings.TrimSpace(userID) == "" || id <= 0 {
		return Resume{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// Create stores a new draft unless another status is given.
func (s *Service) Create(ctx context.Context, userID string, in Input) (Resume, error) {
	if strings.TrimSpace(userID) == "" {
		return Resume{}, ErrInvalidInput
	}
	resume := Resume{UserID: userID, Status: StatusDraft}
	if err := s.prepare(ctx, &resume, in, true); err != nil {
		return Resume{}, err
	}
	created, err := s.Repo.Create(ctx, resume)
	if err != nil {
		return Resume{}, s.templateErr(err)
	}
	telemetry.Info("resume.created", map[string]any{"user_id": userID, "resume_id": created.ID})
	return created, nil
}

// Update changes a resume. With replace set every field is taken from in and
// the required fields must be present.
func (s *Service) Update(ctx context.Context, userID string, id int64, in Input, replace bool) (Resume, error) {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return Resume{}, err
	}
	resume := existing
	if replace {
		resume = Resume{ID: existing.ID, UserID: userID, Status: StatusDraft}
	}
	if err := s.prepare(ctx, &resume, in, replace); err != nil {
		return Resume{}, err
	}
	updated, err := s.Repo.Update(ctx, resume)
	if err != nil {
		return Resume{}, s.templateErr(err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	if strings.TrimSpace(userID) == "" || id <= 0 {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, userID, id)
}

func (s *Service) DeleteByUser(ctx context.Context, userID string) error {
	return s.Repo.DeleteByUser(ctx, userID)
}

func (s *Service) prepare(ctx context.Context, resume *Resume, in Input, requireAll bool) error {
	if err := s.validate.Struct(in); err != nil {
		return &ValidationError{Fields: validation.Details(err)}
	}
	if requireAll {
		missing := map[string]string{}
		if in.FirstName == nil || strings.TrimSpace(*in.FirstName) == "" {
			missing["first_name"] = "This field is required."
		}
		if in.LastName == nil || strings.TrimSpace(*in.LastName) == "" {
			missing["last_name"] = "This field is required."
		}
		if len(missing) > 0 {
			return &ValidationError{Fields: missing}
		}
	}
	if in.TemplateID != nil {
		if _, err := s.Repo.GetTemplate(ctx, *in.TemplateID); err != nil {
			return s.templateErr(err)
		}
	}
	in.apply(resume)
	return nil
}

func (s *Service) templateErr(err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnknownTemplate) {
		return &ValidationError{Fields: map[string]string{"template": "Invalid template id."}}
	}
	return err
}
