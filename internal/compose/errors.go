package compose

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates a missing or malformed job description id.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates the job description is absent or owned by someone else.
	ErrNotFound = errors.New("job description not found")

	// ErrProfileMissing indicates the user has no profile.
	ErrProfileMissing = errors.New("profile missing")

	// ErrConfiguration indicates the AI client is not configured.
	ErrConfiguration = errors.New("ai api key not configured")
)

// CompositionError reports a failed completion call.
type CompositionError struct {
	Err error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("Error calling AI model: %v", e.Err)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}
