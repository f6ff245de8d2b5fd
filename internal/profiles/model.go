package profiles

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Profile holds the contact header and summary of a user.
type Profile struct {
	UserID       string
	FullName     string
	PhoneNumber  string
	Email        string
	LinkedInURL  string
	GitHubURL    string
	PortfolioURL string
	Location     string
	Summary      string
	UpdatedAt    time.Time
}

// ProfileUpdate carries the fields to change; nil fields are left alone.
type ProfileUpdate struct {
	FullName     *string `json:"full_name" validate:"omitempty,max=255"`
	PhoneNumber  *string `json:"phone_number" validate:"omitempty,max=20"`
	Email        *string `json:"email" validate:"omitempty,email,max=255"`
	LinkedInURL  *string `json:"linkedin_url" validate:"omitempty,url"`
	GitHubURL    *string `json:"github_url" validate:"omitempty,url"`
	PortfolioURL *string `json:"portfolio_url" validate:"omitempty,url"`
	Location     *string `json:"location" validate:"omitempty,max=255"`
	Summary      *string `json:"summary"`
}

func (u ProfileUpdate) apply(p *Profile) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.FullName, u.FullName)
	set(&p.PhoneNumber, u.PhoneNumber)
	set(&p.Email, u.Email)
	set(&p.LinkedInURL, u.LinkedInURL)
	set(&p.GitHubURL, u.GitHubURL)
	set(&p.PortfolioURL, u.PortfolioURL)
	set(&p.Location, u.Location)
	set(&p.Summary, u.Summary)
}

// Kind names a profile entry list.
type Kind string

const (
	KindEducation     Kind = "education"
	KindExperience    Kind = "experience"
	KindProject       Kind = "project"
	KindSkill         Kind = "skill"
	KindCertification Kind = "certification"
)

// Kinds lists every entry kind in snapshot order.
var Kinds = []Kind{KindEducation, KindExperience, KindProject, KindSkill, KindCertification}

type Education struct {
	InstitutionName string  `json:"institution_name" validate:"required,max=255"`
	Degree          string  `json:"degree" validate:"required,max=255"`
	FieldOfStudy    string  `json:"field_of_study" validate:"max=255"`
	StartDate       string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate         *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Description     string  `json:"description"`
}

type Experience struct {
	CompanyName string  `json:"company_name" validate:"required,max=255"`
	JobTitle    string  `json:"job_title" validate:"required,max=255"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Description string  `json:"description" validate:"required"`
	Location    string  `json:"location" validate:"max=255"`
}

type Project struct {
	ProjectName      string `json:"project_name" validate:"required,max=255"`
	Description      string `json:"description" validate:"required"`
	ProjectURL       string `json:"project_url" validate:"omitempty,url"`
	TechnologiesUsed string `json:"technologies_used" validate:"max=500"`
}

type Skill struct {
	Name string `json:"name" validate:"required,max=100"`
}

type Certification struct {
	Name                string  `json:"name" validate:"required,max=255"`
	IssuingOrganization string  `json:"issuing_organization" validate:"required,max=255"`
	IssueDate           string  `json:"issue_date" validate:"required,datetime=2006-01-02"`
	ExpirationDate      *string `json:"expiration_date" validate:"omitempty,datetime=2006-01-02"`
	CredentialID        string  `json:"credential_id" validate:"max=255"`
	CredentialURL       string  `json:"credential_url" validate:"omitempty,url"`
}

// Entry is one stored list item; Payload is the JSON of the typed struct for Kind.
type Entry struct {
	ID        int64
	UserID    string
	Kind      Kind
	Payload   json.RawMessage
	CreatedAt time.Time
}

// MarshalJSON renders the payload fields plus the entry id.
func (e Entry) MarshalJSON() ([]byte, error) {
	fields := map[string]any{}
	if len(e.Payload) > 0 {
		if err := json.Unmarshal(e.Payload, &fields); err != nil {
			return nil, err
		}
	}
	fields["id"] = e.ID
	return json.Marshal(fields)
}

func newPayload(kind Kind) (any, error) {
	switch kind {
	case KindEducation:
		return &Education{}, nil
	case KindExperience:
		return &Experience{}, nil
	case KindProject:
		return &Project{}, nil
	case KindSkill:
		return &Skill{}, nil
	case KindCertification:
		return &Certification{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown entry kind %q", ErrInvalidInput, kind)
	}
}

// decodePayload decodes each JSON layer in turn onto a fresh value for kind,
// so later layers override earlier ones.
func decodePayload(kind Kind, layers ...[]byte) (any, error) {
	v, err := newPayload(kind)
	if err != nil {
		return nil, err
	}
	for _, layer := range layers {
		if len(bytes.TrimSpace(layer)) == 0 {
			continue
		}
		if err := json.Unmarshal(layer, v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	return v, nil
}

func decodeTyped[T any](raw json.RawMessage) (T, error) {
	var out T
	err := json.Unmarshal(raw, &out)
	return out, err
}

// Snapshot is the read model handed to resume composition.
type Snapshot struct {
	FullName       string          `json:"full_name"`
	Email          string          `json:"email"`
	PhoneNumber    string          `json:"phone_number"`
	Location       string          `json:"location"`
	LinkedInURL    string          `json:"linkedin_url"`
	GitHubURL      string          `json:"github_url"`
	PortfolioURL   string          `json:"portfolio_url"`
	Summary        string          `json:"summary"`
	Education      []Education     `json:"education"`
	Experiences    []Experience    `json:"experiences"`
	Projects       []Project       `json:"projects"`
	Skills         []Skill         `json:"skills"`
	Certifications []Certification `json:"certifications"`
}

// DetailResponse is the profile with all entry lists.
type DetailResponse struct {
	FullName       string    `json:"full_name"`
	PhoneNumber    string    `json:"phone_number"`
	Email          string    `json:"email"`
	LinkedInURL    string    `json:"linkedin_url"`
	GitHubURL      string    `json:"github_url"`
	PortfolioURL   string    `json:"portfolio_url"`
	Location       string    `json:"location"`
	Summary        string    `json:"summary"`
	UpdatedAt      time.Time `json:"updated_at"`
	Education      []Entry   `json:"education"`
	Experiences    []Entry   `json:"experiences"`
	Projects       []Entry   `json:"projects"`
	Skills         []Entry   `json:"skills"`
	Certifications []Entry   `json:"certifications"`
}
