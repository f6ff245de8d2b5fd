package generatedresumes

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the record does not exist for the user.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBlankContent rejects an update without generated content.
	ErrBlankContent = fmt.Errorf("%w: blank generated content", ErrInvalidInput)
)
