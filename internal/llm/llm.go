package llm

import (
	"context"
	"errors"
)

// Client abstracts chat-completion providers.
type Client interface {
	Complete(ctx context.Context, req Request) (Completion, error)
}

// Request is a single system+user exchange.
type Request struct {
	Model  string
	System string
	Prompt string
}

// Completion is the first choice returned by the provider.
type Completion struct {
	Model   string
	Content string
}

// ErrEmptyCompletion is returned when the provider answers without any choice.
var ErrEmptyCompletion = errors.New("llm returned no content")

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, req Request) (Completion, error)

// Complete calls f.
func (f ClientFunc) Complete(ctx context.Context, req Request) (Completion, error) {
	return f(ctx, req)
}
