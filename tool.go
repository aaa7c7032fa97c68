package reactloop

import (
	"context"
)

// Tool is a named capability the model can invoke with a single text input.
//
// The method set matches langchaingo's tools.Tool, so any langchaingo tool can be
// registered directly.
//
// Call should not return errors for recoverable domain failures; it can describe them in the
// returned text instead. Any error it does return is converted into an observation so the
// model can self-correct. Retries are the tool's own responsibility.
type Tool interface {
	// Name returns the tool's identifier used in "Action:" lines.
	Name() string

	// Description returns a human-readable description shown to the model.
	Description() string

	// Call executes the tool with the given input.
	Call(ctx context.Context, input string) (string, error)
}

// SchemaTool is implemented by tools that accept structured input. The registry validates
// the decoded input (YAML or JSON) against the schema before calling the tool.
type SchemaTool interface {
	Tool

	// InputSchema returns the JSON Schema for the tool's input.
	// Returns nil if the input is free text.
	InputSchema() map[string]any
}

// ToolDescription is a (name, description) pair used to build the prompt's tool listing.
type ToolDescription struct {
	Name        string
	Description string
}

// ToolFunc is a convenience type for creating tools from functions.
type ToolFunc struct {
	name        string
	description string
	schema      map[string]any
	fn          func(ctx context.Context, input string) (string, error)
}

// NewToolFunc creates a new ToolFunc.
func NewToolFunc(
	name, description string,
	fn func(ctx context.Context, input string) (string, error),
) *ToolFunc {
	return &ToolFunc{
		name:        name,
		description: description,
		fn:          fn,
	}
}

// WithSchema sets the JSON Schema the tool input must satisfy.
func (t *ToolFunc) WithSchema(schema map[string]any) *ToolFunc {
	t.schema = schema
	return t
}

// Name returns the tool's identifier.
func (t *ToolFunc) Name() string {
	return t.name
}

// Description returns a human-readable description for the model.
func (t *ToolFunc) Description() string {
	return t.description
}

// InputSchema returns the JSON Schema for the tool's input, or nil.
func (t *ToolFunc) InputSchema() map[string]any {
	return t.schema
}

// Call executes the tool function.
func (t *ToolFunc) Call(ctx context.Context, input string) (string, error) {
	return t.fn(ctx, input)
}

var _ SchemaTool = (*ToolFunc)(nil)
