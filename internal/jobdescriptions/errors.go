package jobdescriptions

import (
	"errors"
	"fmt"

	"resume-composer/internal/extract"
)

var (
	// ErrNotFound indicates the job description does not exist for the user.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingInput is returned when neither a file nor raw text was supplied.
	ErrMissingInput = errors.New("missing file or raw text")

	// ErrUnsupportedFileType is returned for uploads that are not .pdf or .docx.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrEmptyContent is returned when the resolved text is blank.
	ErrEmptyContent = errors.New("empty content")
)

var messages = map[error]string{
	ErrMissingInput:        "Either a 'file' or 'raw_text' must be provided.",
	ErrUnsupportedFileType: "Unsupported file type. Please upload a PDF or DOCX file.",
	ErrEmptyContent:        "Could not extract text from file or no text provided.",
	ErrNotFound:            "Not found.",
}

// ExtractionError reports a supported upload that could not be parsed.
type ExtractionError struct {
	Kind extract.Kind
	Err  error
}

func (e *ExtractionError) Error() string {
	cause := e.Err
	var xe *extract.Error
	if errors.As(cause, &xe) {
		cause = xe.Err
	}
	return fmt.Sprintf("Error processing %s file: %v", e.Kind, cause)
}

func (e *ExtractionError) Unwrap() []error {
	return []error{ErrInvalidInput, e.Err}
}

// ValidationError carries per-field messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
