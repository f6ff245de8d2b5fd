package resumes

import "errors"

var (
	// ErrNotFound indicates the resume or template does not exist for the caller.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownTemplate is returned when a resume references a missing or inactive template.
	ErrUnknownTemplate = errors.New("unknown template")
)

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
