package ai

import "context"

// Request is a single-turn completion: a system instruction plus one user message.
type Request struct {
	System      string
	Message     string
	MaxTokens   int
	Temperature float64
}

// Completer produces an assistant reply for a request.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
	Model() string
}
