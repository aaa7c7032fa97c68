package reactloop

import "context"

// Model is the text-completion collaborator used by the loop.
//
// Complete must honour stopSequences by truncating the generated text before the first
// occurrence of any of them. Implementations should respect ctx cancellation; the loop
// enforces its own timeout regardless.
type Model interface {
	Complete(ctx context.Context, prompt string, stopSequences []string) (string, error)
}

// ModelFunc adapts a plain function to [Model].
type ModelFunc func(ctx context.Context, prompt string, stopSequences []string) (string, error)

// Complete calls f.
func (f ModelFunc) Complete(ctx context.Context, prompt string, stopSequences []string) (string, error) {
	return f(ctx, prompt, stopSequences)
}
