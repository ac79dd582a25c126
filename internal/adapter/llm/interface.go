package llm

import "context"

// CompletionClient defines the completion operation the service depends on.
type CompletionClient interface {
	// Complete sends an ordered message list and returns the assistant
	// text, or ErrEmptyCompletion when the response carries no usable
	// content.
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// Ensure Client implements CompletionClient interface.
var _ CompletionClient = (*Client)(nil)
