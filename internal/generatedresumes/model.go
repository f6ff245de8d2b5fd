package generatedresumes

import "time"

// GeneratedResume is AI-composed resume content tailored to one job description.
type GeneratedResume struct {
	ID               int64
	UserID           string
	JobDescriptionID int64
	GeneratedContent string
	CreatedAt        time.Time
}

// UpdateInput carries the editable content.
type UpdateInput struct {
	GeneratedContent *string `json:"generated_content"`
}

// Response is the outward-facing representation of a generated resume.
type Response struct {
	ID                  int64     `json:"id"`
	JobDescriptionID    int64     `json:"job_description_id"`
	JobDescriptionTitle *string   `json:"job_description_title"`
	GeneratedContent    string    `json:"generated_content"`
	CreatedAt           time.Time `json:"created_at"`
}

func toResponse(gr GeneratedResume, titles map[int64]*string) Response {
	return Response{
		ID:                  gr.ID,
		JobDescriptionID:    gr.JobDescriptionID,
		JobDescriptionTitle: titles[gr.JobDescriptionID],
		GeneratedContent:    gr.GeneratedContent,
		CreatedAt:           gr.CreatedAt,
	}
}
