package generatedresumes

import (
	"context"
	"strings"

	"resume-composer/internal/shared/telemetry"
)

// JobDescriptionTitles resolves the titles of a user's job descriptions.
// Ids that are missing or owned by someone else are absent from the result.
type JobDescriptionTitles interface {
	Titles(ctx context.Context, userID string, ids []int64) (map[int64]*string, error)
}

// Service contains business logic for generated resumes.
type Service struct {
	Repo   Repo
	Titles JobDescriptionTitles
}

func NewService(repo Repo, titles JobDescriptionTitles) *Service {
	return &Service{Repo: repo, Titles: titles}
}

// Create stores content for a job description the user owns.
func (s *Service) Create(ctx context.Context, userID string, jobDescriptionID int64, content string) (GeneratedResume, error) {
	if strings.TrimSpace(userID) == "" || jobDescriptionID <= 0 {
		return GeneratedResume{}, ErrInvalidInput
	}
	if s.Titles != nil {
		titles, err := s.Titles.Titles(ctx, userID, []int64{jobDescriptionID})
		if err != nil {
			return GeneratedResume{}, err
		}
		if _, ok := titles[jobDescriptionID]; !ok {
			return GeneratedResume{}, ErrNotFound
		}
	}
	resume, err := s.Repo.Create(ctx, GeneratedResume{
		UserID:           userID,
		JobDescriptionID: jobDescriptionID,
		GeneratedContent: content,
	})
	if err != nil {
		return GeneratedResume{}, err
	}
	telemetry.Info("generated_resume.created", map[string]any{
		"user_id":             userID,
		"generated_resume_id": resume.ID,
		"job_description_id":  jobDescriptionID,
	})
	return resume, nil
}

// Get returns a generated resume by ID for a user.
func (s *Service) Get(ctx context.Context, userID string, id int64) (Response, error) {
	if strings.TrimSpace(userID) == "" || id <= 0 {
		return Response{}, ErrNotFound
	}
	resume, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return Response{}, err
	}
	return s.respond(ctx, userID, resume)
}

// List returns the user's generated resumes newest first; a nil filter lists all.
func (s *Service) List(ctx context.Context, userID string, jobDescriptionID *int64) ([]Response, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	resumes, err := s.Repo.ListByUser(ctx, userID, jobDescriptionID)
	if err != nil {
		return nil, err
	}
	titles, err := s.titles(ctx, userID, resumes...)
	if err != nil {
		return nil, err
	}
	out := make([]Response, 0, len(resumes))
	for _, resume := range resumes {
		out = append(out, toResponse(resume, titles))
	}
	return out, nil
}

// Update replaces the generated content.
func (s *Service) Update(ctx context.Context, userID string, id int64, in UpdateInput) (Response, error) {
	if in.GeneratedContent == nil || strings.TrimSpace(*in.GeneratedContent) == "" {
		return Response{}, ErrBlankContent
	}
	if strings.TrimSpace(userID) == "" || id <= 0 {
		return Response{}, ErrNotFound
	}
	resume, err := s.Repo.UpdateContent(ctx, userID, id, *in.GeneratedContent)
	if err != nil {
		return Response{}, err
	}
	return s.respond(ctx, userID, resume)
}

func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	if strings.TrimSpace(userID) == "" || id <= 0 {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, userID, id)
}

// DeleteByJobDescription removes every record derived from the job description.
func (s *Service) DeleteByJobDescription(ctx context.Context, userID string, jobDescriptionID int64) error {
	return s.Repo.DeleteByJobDescription(ctx, userID, jobDescriptionID)
}

func (s *Service) DeleteByUser(ctx context.Context, userID string) error {
	return s.Repo.DeleteByUser(ctx, userID)
}

func (s *Service) respond(ctx context.Context, userID string, resume GeneratedResume) (Response, error) {
	titles, err := s.titles(ctx, userID, resume)
	if err != nil {
		return Response{}, err
	}
	return toResponse(resume, titles), nil
}

func (s *Service) titles(ctx context.Context, userID string, resumes ...GeneratedResume) (map[int64]*string, error) {
	if s.Titles == nil || len(resumes) == 0 {
		return map[int64]*string{}, nil
	}
	seen := make(map[int64]bool, len(resumes))
	ids := make([]int64, 0, len(resumes))
	for _, resume := range resumes {
		if !seen[resume.JobDescriptionID] {
			seen[resume.JobDescriptionID] = true
			ids = append(ids, resume.JobDescriptionID)
		}
	}
	return s.Titles.Titles(ctx, userID, ids)
}
