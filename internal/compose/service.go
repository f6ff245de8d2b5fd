package compose

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-composer/internal/generatedresumes"
	"resume-composer/internal/jobdescriptions"
	"resume-composer/internal/llm"
	"resume-composer/internal/profiles"
	"resume-composer/internal/shared/metrics"
	"resume-composer/internal/shared/telemetry"
)

// DefaultModel is used when the caller names no model.
const DefaultModel = "mistralai/mistral-7b-instruct:free"

// Config holds the composition settings derived from the app config.
type Config struct {
	APIKey       string
	DefaultModel string
}

// JobDescriptionReader loads a job description owned by the user.
type JobDescriptionReader interface {
	Get(ctx context.Context, userID string, id int64) (jobdescriptions.JobDescription, error)
}

// SnapshotProvider returns the profile snapshot of a user.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, userID string) (profiles.Snapshot, error)
}

// ResultStore persists composed content.
type ResultStore interface {
	Create(ctx context.Context, userID string, jobDescriptionID int64, content string) (generatedresumes.GeneratedResume, error)
}

// Service tailors resume content to a job description through an LLM.
type Service struct {
	JobDescriptions JobDescriptionReader
	Profiles        SnapshotProvider
	LLM             llm.Client
	Results         ResultStore
	Config          Config
}

func NewService(jds JobDescriptionReader, snapshots SnapshotProvider, client llm.Client, results ResultStore, cfg Config) *Service {
	if strings.TrimSpace(cfg.DefaultModel) == "" {
		cfg.DefaultModel = DefaultModel
	}
	return &Service{
		JobDescriptions: jds,
		Profiles:        snapshots,
		LLM:             client,
		Results:         results,
		Config:          cfg,
	}
}

// Result is the outcome of a composition. GeneratedResumeID is zero when
// the content could not be saved.
type Result struct {
	Content           string
	Model             string
	GeneratedResumeID int64
}

// Compose builds the prompt for the user's profile and job description, calls
// the model and saves the content. A failed save is logged, never returned.
func (s *Service) Compose(ctx context.Context, userID string, jobDescriptionID int64, model string) (Result, error) {
	start := time.Now()
	metrics.IncComposeStarted()

	res, err := s.compose(ctx, userID, jobDescriptionID, model)
	metrics.ObserveComposeDurationMs(metrics.SinceMillis(start))
	if err != nil {
		metrics.IncComposeFailed()
		telemetry.Warn("compose.failed", map[string]any{
			"user_id":            userID,
			"job_description_id": jobDescriptionID,
			"error":              err.Error(),
		})
		return Result{}, err
	}
	metrics.IncComposeCompleted()
	telemetry.Info("compose.completed", map[string]any{
		"user_id":             userID,
		"job_description_id":  jobDescriptionID,
		"generated_resume_id": res.GeneratedResumeID,
		"model":               res.Model,
		"duration_ms":         metrics.SinceMillis(start),
	})
	return res, nil
}

func (s *Service) compose(ctx context.Context, userID string, jobDescriptionID int64, model string) (Result, error) {
	if strings.TrimSpace(userID) == "" || jobDescriptionID <= 0 {
		return Result{}, ErrInvalidInput
	}

	jd, err := s.JobDescriptions.Get(ctx, userID, jobDescriptionID)
	if err != nil {
		if errors.Is(err, jobdescriptions.ErrNotFound) {
			return Result{}, ErrNotFound
		}
		return Result{}, fmt.Errorf("load job description: %w", err)
	}

	snapshot, err := s.Profiles.Snapshot(ctx, userID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return Result{}, ErrProfileMissing
		}
		return Result{}, fmt.Errorf("load profile: %w", err)
	}

	if strings.TrimSpace(s.Config.APIKey) == "" || s.LLM == nil {
		return Result{}, ErrConfiguration
	}

	prompt, err := BuildPrompt(snapshot, jd.RawText)
	if err != nil {
		return Result{}, fmt.Errorf("build prompt: %w", err)
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = s.Config.DefaultModel
	}

	completion, err := s.LLM.Complete(ctx, llm.Request{
		Model:  model,
		System: SystemMessage,
		Prompt: prompt,
	})
	if err != nil {
		return Result{}, &CompositionError{Err: err}
	}

	res := Result{Content: completion.Content, Model: completion.Model}
	if res.Model == "" {
		res.Model = model
	}
	res.GeneratedResumeID = s.persist(ctx, userID, jd.ID, completion.Content)
	return res, nil
}

// persist saves the content even if the request context is cancelled.
func (s *Service) persist(ctx context.Context, userID string, jobDescriptionID int64, content string) int64 {
	if s.Results == nil {
		return 0
	}
	saved, err := s.Results.Create(context.WithoutCancel(ctx), userID, jobDescriptionID, content)
	if err != nil {
		metrics.IncComposePersistFailed()
		telemetry.Error("compose.persist_failed", map[string]any{
			"user_id":            userID,
			"job_description_id": jobDescriptionID,
			"error":              err.Error(),
		})
		return 0
	}
	return saved.ID
}
