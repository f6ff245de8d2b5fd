package jobdescriptions

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"resume-composer/internal/extract"
	"resume-composer/internal/shared/metrics"
	"resume-composer/internal/shared/storage/object"
	"resume-composer/internal/shared/telemetry"
	"resume-composer/internal/shared/util"
	"resume-composer/internal/shared/validation"
)

// DependentsPurger removes records derived from a job description.
type DependentsPurger interface {
	DeleteByJobDescription(ctx context.Context, userID string, jobDescriptionID int64) error
}

// Service ingests and manages job descriptions.
type Service struct {
	Repo Repo
	// Store archives uploaded files; nil disables archiving.
	Store      object.ObjectStore
	Dependents DependentsPurger

	validate *validator.Validate
}

func NewService(repo Repo, store object.ObjectStore, dependents DependentsPurger) *Service {
	return &Service{
		Repo:       repo,
		Store:      store,
		Dependents: dependents,
		validate:   validation.New(),
	}
}

// Ingest resolves the text of in and persists a job description. When both a
// file and raw text are present the file wins. Nothing is persisted on error.
func (s *Service) Ingest(ctx context.Context, userID string, in IngestInput) (JobDescription, error) {
	if strings.TrimSpace(userID) == "" {
		return JobDescription{}, ErrInvalidInput
	}
	jd, err := s.ingest(ctx, userID, in)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrMissingInput) ||
			errors.Is(err, ErrUnsupportedFileType) || errors.Is(err, ErrEmptyContent) {
			metrics.IncJobDescriptionRejected()
			telemetry.Warn("jobdescription.rejected", map[string]any{
				"user_id": userID,
				"reason":  err.Error(),
			})
		}
		return JobDescription{}, err
	}
	metrics.IncJobDescriptionIngested()
	telemetry.Info("jobdescription.ingested", map[string]any{
		"user_id":            userID,
		"job_description_id": jd.ID,
		"from_file":          jd.OriginalFilename != nil,
		"chars":              len(jd.RawText),
	})
	return jd, nil
}

func (s *Service) ingest(ctx context.Context, userID string, in IngestInput) (JobDescription, error) {
	if err := s.validateTitle(in.Title); err != nil {
		return JobDescription{}, err
	}

	jd := JobDescription{UserID: userID, Title: in.Title}
	var fileName string

	switch {
	case in.hasFile():
		name, err := util.SanitizeFileName(in.FileName)
		if err != nil {
			return JobDescription{}, ErrUnsupportedFileType
		}
		kind, err := extract.KindFromFileName(name)
		if err != nil {
			return JobDescription{}, ErrUnsupportedFileType
		}
		text, err := extract.Extract(ctx, in.FileData, kind)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return JobDescription{}, ctxErr
			}
			return JobDescription{}, &ExtractionError{Kind: kind, Err: err}
		}
		fileName = name
		jd.OriginalFilename = &fileName
		jd.RawText = text
	case in.RawText != "":
		jd.RawText = in.RawText
	default:
		return JobDescription{}, ErrMissingInput
	}

	if strings.TrimSpace(jd.RawText) == "" {
		return JobDescription{}, ErrEmptyContent
	}

	if s.Store != nil && fileName != "" {
		key, _, _, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(in.FileData))
		if err != nil {
			return JobDescription{}, fmt.Errorf("archive upload: %w", err)
		}
		jd.SourceKey = key
	}

	created, err := s.Repo.Create(ctx, jd)
	if err != nil {
		s.discard(jd.SourceKey)
		return JobDescription{}, err
	}
	return created, nil
}

func (s *Service) validateTitle(title *string) error {
	if err := s.validate.Struct(UpdateInput{Title: title}); err != nil {
		return &ValidationError{Fields: validation.Details(err)}
	}
	return nil
}

// Get returns the user's job description; another user's record is ErrNotFound.
func (s *Service) Get(ctx context.Context, userID string, id int64) (JobDescription, error) {
	if strings.TrimSpace(userID) == "" || id <= 0 {
		return JobDescription{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, id)
}

// List returns the user's job descriptions, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]JobDescription, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Titles maps each of the user's job description ids to its title.
func (s *Service) Titles(ctx context.Context, userID string, ids []int64) (map[int64]*string, error) {
	return s.Repo.Titles(ctx, userID, ids)
}

// Update changes the title and text. With replace set, raw_text is required.
func (s *Service) Update(ctx context.Context, userID string, id int64, in UpdateInput, replace bool) (JobDescription, error) {
	if err := s.validate.Struct(in); err != nil {
		return JobDescription{}, &ValidationError{Fields: validation.Details(err)}
	}
	if replace && in.RawText == nil {
		return JobDescription{}, &ValidationError{Fields: map[string]string{"raw_text": "This field is required."}}
	}

	jd, err := s.Get(ctx, userID, id)
	if err != nil {
		return JobDescription{}, err
	}
	if in.RawText != nil {
		if strings.TrimSpace(*in.RawText) == "" {
			return JobDescription{}, ErrEmptyContent
		}
		jd.RawText = *in.RawText
	}
	if in.Title != nil || replace {
		jd.Title = in.Title
	}
	return s.Repo.Update(ctx, jd)
}

// Delete removes the job description, its generated resumes and its archived upload.
func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	jd, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.discard(jd.SourceKey)
	// Postgres cascades on its own; this covers the memory repositories.
	if s.Dependents != nil {
		if err := s.Dependents.DeleteByJobDescription(ctx, userID, id); err != nil {
			return fmt.Errorf("delete generated resumes: %w", err)
		}
	}
	return nil
}

// DeleteByUser removes every job description of the user with its archived uploads.
func (s *Service) DeleteByUser(ctx context.Context, userID string) error {
	jds, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Repo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	for _, jd := range jds {
		s.discard(jd.SourceKey)
	}
	return nil
}

// discard deletes an archived upload. Failures are logged only.
func (s *Service) discard(key string) {
	if s.Store == nil || key == "" {
		return
	}
	if err := s.Store.Delete(context.Background(), key); err != nil {
		telemetry.Warn("jobdescription.archive_delete_failed", map[string]any{
			"storage_key": key,
			"error":       err.Error(),
		})
	}
}
