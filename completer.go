package locallink

import "context"

// CompletionRequest is a single-turn prompt for an upstream model.
type CompletionRequest struct {
	Model        string // empty = completer default
	SystemPrompt string
	Message      string
}

// Completer asks an upstream model for a reply. It returns
// ErrNoCompletion when the model produced no candidates.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
