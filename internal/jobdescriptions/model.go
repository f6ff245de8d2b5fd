package jobdescriptions

import "time"

// JobDescription is a posting a user wants to tailor a resume to.
// SourceKey points at the archived upload and is never serialized.
type JobDescription struct {
	ID               int64
	UserID           string
	Title            *string
	OriginalFilename *string
	RawText          string
	SourceKey        string
	UploadedAt       time.Time
	UpdatedAt        time.Time
}

// IngestInput is one ingestion request. A non-empty FileName marks a file upload.
type IngestInput struct {
	FileName string
	FileData []byte
	RawText  string
	Title    *string
}

func (in IngestInput) hasFile() bool {
	return in.FileName != "" || len(in.FileData) > 0
}

// UpdateInput changes title and text; nil fields are left alone.
type UpdateInput struct {
	Title   *string `json:"title" validate:"omitempty,max=255"`
	RawText *string `json:"raw_text"`
}

// Response is the outward-facing representation of a job description.
type Response struct {
	ID               int64     `json:"id"`
	Title            *string   `json:"title"`
	OriginalFilename *string   `json:"original_filename"`
	RawText          string    `json:"raw_text"`
	UploadedAt       time.Time `json:"uploaded_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func toResponse(jd JobDescription) Response {
	return Response{
		ID:               jd.ID,
		Title:            jd.Title,
		OriginalFilename: jd.OriginalFilename,
		RawText:          jd.RawText,
		UploadedAt:       jd.UploadedAt,
		UpdatedAt:        jd.UpdatedAt,
	}
}
