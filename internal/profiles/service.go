package profiles

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"resume-composer/internal/shared/telemetry"
	"resume-composer/internal/shared/validation"
)

// Service manages a user's profile and its entry lists.
type Service struct {
	Repo Repo

	validate *validator.Validate
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, validate: validation.New()}
}

// Ensure creates an empty profile for the user if none exists.
func (s *Service) Ensure(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrInvalidInput
	}
	_, err := s.Repo.EnsureProfile(ctx, userID)
	return err
}

// Get returns the profile with every entry list, creating the profile on first access.
func (s *Service) Get(ctx context.Context, userID string) (DetailResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return DetailResponse{}, ErrInvalidInput
	}
	p, err := s.Repo.EnsureProfile(ctx, userID)
	if err != nil {
		return DetailResponse{}, err
	}
	return s.detail(ctx, p)
}

// Update applies the non-nil fields of in to the profile.
func (s *Service) Update(ctx context.Context, userID string, in ProfileUpdate) (DetailResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return DetailResponse{}, ErrInvalidInput
	}
	if err := s.validate.Struct(in); err != nil {
		return DetailResponse{}, &ValidationError{Fields: validation.Details(err)}
	}
	p, err := s.Repo.EnsureProfile(ctx, userID)
	if err != nil {
		return DetailResponse{}, err
	}
	in.apply(&p)
	p, err = s.Repo.UpdateProfile(ctx, p)
	if err != nil {
		return DetailResponse{}, err
	}
	telemetry.Info("profile.updated", map[string]any{"user_id": userID})
	return s.detail(ctx, p)
}

func (s *Service) detail(ctx context.Context, p Profile) (DetailResponse, error) {
	entries, err := s.Repo.ListEntries(ctx, p.UserID, "")
	if err != nil {
		return DetailResponse{}, err
	}
	out := DetailResponse{
		FullName:       p.FullName,
		PhoneNumber:    p.PhoneNumber,
		Email:          p.Email,
		LinkedInURL:    p.LinkedInURL,
		GitHubURL:      p.GitHubURL,
		PortfolioURL:   p.PortfolioURL,
		Location:       p.Location,
		Summary:        p.Summary,
		UpdatedAt:      p.UpdatedAt,
		Education:      []Entry{},
		Experiences:    []Entry{},
		Projects:       []Entry{},
		Skills:         []Entry{},
		Certifications: []Entry{},
	}
	for _, e := range entries {
		switch e.Kind {
		case KindEducation:
			out.Education = append(out.Education, e)
		case KindExperience:
			out.Experiences = append(out.Experiences, e)
		case KindProject:
			out.Projects = append(out.Projects, e)
		case KindSkill:
			out.Skills = append(out.Skills, e)
		case KindCertification:
			out.Certifications = append(out.Certifications, e)
		}
	}
	return out, nil
}

func (s *Service) ListEntries(ctx context.Context, userID string, kind Kind) ([]Entry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	if _, err := newPayload(kind); err != nil {
		return nil, err
	}
	return s.Repo.ListEntries(ctx, userID, kind)
}

func (s *Service) GetEntry(ctx context.Context, userID string, kind Kind, id int64) (Entry, error) {
	if strings.TrimSpace(userID) == "" || id <= 0 {
		return Entry{}, ErrNotFound
	}
	return s.Repo.GetEntry(ctx, userID, kind, id)
}

// CreateEntry validates body as the typed entry for kind and stores it.
func (s *Service) CreateEntry(ctx context.Context, userID string, kind Kind, body []byte) (Entry, error) {
	if strings.TrimSpace(userID) == "" {
		return Entry{}, ErrInvalidInput
	}
	payload, err := s.payload(kind, body)
	if err != nil {
		return Entry{}, err
	}
	if _, err := s.Repo.EnsureProfile(ctx, userID); err != nil {
		return Entry{}, err
	}
	return s.Repo.CreateEntry(ctx, Entry{UserID: userID, Kind: kind, Payload: payload})
}

// ReplaceEntry overwrites an entry with body.
func (s *Service) ReplaceEntry(ctx context.Context, userID string, kind Kind, id int64, body []byte) (Entry, error) {
	if _, err := s.GetEntry(ctx, userID, kind, id); err != nil {
		return Entry{}, err
	}
	payload, err := s.payload(kind, body)
	if err != nil {
		return Entry{}, err
	}
	return s.Repo.UpdateEntry(ctx, Entry{ID: id, UserID: userID, Kind: kind, Payload: payload})
}

// PatchEntry merges body onto the stored entry.
func (s *Service) PatchEntry(ctx context.Context, userID string, kind Kind, id int64, body []byte) (Entry, error) {
	existing, err := s.GetEntry(ctx, userID, kind, id)
	if err != nil {
		return Entry{}, err
	}
	payload, err := s.payload(kind, existing.Payload, body)
	if err != nil {
		return Entry{}, err
	}
	return s.Repo.UpdateEntry(ctx, Entry{ID: id, UserID: userID, Kind: kind, Payload: payload})
}

func (s *Service) DeleteEntry(ctx context.Context, userID string, kind Kind, id int64) error {
	if strings.TrimSpace(userID) == "" || id <= 0 {
		return ErrNotFound
	}
	return s.Repo.DeleteEntry(ctx, userID, kind, id)
}

func (s *Service) payload(kind Kind, layers ...[]byte) (json.RawMessage, error) {
	v, err := decodePayload(kind, layers...)
	if err != nil {
		return nil, err
	}
	if err := s.validate.Struct(v); err != nil {
		return nil, &ValidationError{Fields: validation.Details(err)}
	}
	return json.Marshal(v)
}

// Snapshot returns the profile and all entries in typed form.
// It does not create a missing profile.
func (s *Service) Snapshot(ctx context.Context, userID string) (Snapshot, error) {
	p, err := s.Repo.GetProfile(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	entries, err := s.Repo.ListEntries(ctx, userID, "")
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		FullName:       p.FullName,
		Email:          p.Email,
		PhoneNumber:    p.PhoneNumber,
		Location:       p.Location,
		LinkedInURL:    p.LinkedInURL,
		GitHubURL:      p.GitHubURL,
		PortfolioURL:   p.PortfolioURL,
		Summary:        p.Summary,
		Education:      []Education{},
		Experiences:    []Experience{},
		Projects:       []Project{},
		Skills:         []Skill{},
		Certifications: []Certification{},
	}
	for _, e := range entries {
		if err := snap.add(e); err != nil {
			return Snapshot{}, fmt.Errorf("decode %s entry %d: %w", e.Kind, e.ID, err)
		}
	}
	return snap, nil
}

func (snap *Snapshot) add(e Entry) error {
	switch e.Kind {
	case KindEducation:
		v, err := decodeTyped[Education](e.Payload)
		if err != nil {
			return err
		}
		snap.Education = append(snap.Education, v)
	case KindExperience:
		v, err := decodeTyped[Experience](e.Payload)
		if err != nil {
			return err
		}
		snap.Experiences = append(snap.Experiences, v)
	case KindProject:
		v, err := decodeTyped[Project](e.Payload)
		if err != nil {
			return err
		}
		snap.Projects = append(snap.Projects, v)
	case KindSkill:
		v, err := decodeTyped[Skill](e.Payload)
		if err != nil {
			return err
		}
		snap.Skills = append(snap.Skills, v)
	case KindCertification:
		v, err := decodeTyped[Certification](e.Payload)
		if err != nil {
			return err
		}
		snap.Certifications = append(snap.Certifications, v)
	}
	return nil
}

// DeleteByUser removes the profile and every entry of the user.
func (s *Service) DeleteByUser(ctx context.Context, userID string) error {
	return s.Repo.DeleteByUser(ctx, userID)
}
