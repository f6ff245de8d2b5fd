package resumes

import "time"

// Template is a predefined resume layout.
type Template struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Description    string    `json:"description"`
	PrimaryColor   string    `json:"primary_color"`
	SecondaryColor string    `json:"secondary_color"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

const (
	StatusDraft     = "draft"
	StatusCompleted = "completed"
	StatusSubmitted = "submitted"
)

// Resume is a manually entered resume owned by a user.
type Resume struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"-"`
	TemplateID *int64    `json:"template"`
	Title      *string   `json:"title"`
	Status     string    `json:"status"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Location   string    `json:"location"`
	Summary    string    `json:"summary"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Input carries resume fields; nil fields are left alone on update.
type Input struct {
	TemplateID *int64  `json:"template" validate:"omitempty,gt=0"`
	Title      *string `json:"title" validate:"omitempty,max=200"`
	Status     *string `json:"status" validate:"omitempty,oneof=draft completed submitted"`
	FirstName  *string `json:"first_name" validate:"omitempty,max=100"`
	LastName   *string `json:"last_name" validate:"omitempty,max=100"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone" validate:"omitempty,max=20"`
	Location   *string `json:"location" validate:"omitempty,max=200"`
	Summary    *string `json:"summary"`
}

func (in Input) apply(r *Resume) {
	if in.TemplateID != nil {
		id := *in.TemplateID
		r.TemplateID = &id
	}
	if in.Title != nil {
		title := *in.Title
		r.Title = &title
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&r.Status, in.Status)
	set(&r.FirstName, in.FirstName)
	set(&r.LastName, in.LastName)
	set(&r.Email, in.Email)
	set(&r.Phone, in.Phone)
	set(&r.Location, in.Location)
	set(&r.Summary, in.Summary)
}

// seedTemplates mirrors the rows inserted by the initial migration.
func seedTemplates(now time.Time) []Template {
	return []Template{
		{ID: 1, Name: "Modern Minimal", Category: "minimal", Description: "Clean single-column layout with generous whitespace.", PrimaryColor: "#1e88e5", SecondaryColor: "#43a047", IsActive: true, CreatedAt: now},
		{ID: 2, Name: "Creative Bold", Category: "creative", Description: "Two-column layout with accent colors for creative roles.", PrimaryColor: "#8e24aa", SecondaryColor: "#fb8c00", IsActive: true, CreatedAt: now},
		{ID: 3, Name: "Executive Classic", Category: "executive", Description: "Traditional layout emphasising leadership experience.", PrimaryColor: "#263238", SecondaryColor: "#546e7a", IsActive: true, CreatedAt: now},
	}
}
