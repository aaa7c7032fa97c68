package reactloop

import "context"

// ToolRegistry is the tool collection the agent loop dispatches against.
//
// # Implementing a ToolRegistry
//
// The toolchain package provides the standard implementation. Custom registries must keep
// these contracts:
//   - DescribeAll and Names return tools in registration order, and are idempotent.
//   - Lookup returns an error matching [ErrUnknownTool] for unregistered names.
//   - Invoke never panics on tool failure; it returns the error for the loop to observe.
type ToolRegistry interface {
	// Lookup returns the tool registered under name.
	Lookup(name string) (Tool, error)

	// DescribeAll returns (name, description) pairs in registration order.
	DescribeAll() []ToolDescription

	// Names returns tool names in registration order.
	Names() []string

	// Prompt renders the tool listing shown to the model.
	Prompt() string

	// Invoke looks up the tool, validates the input and calls the tool.
	Invoke(ctx context.Context, name, input string) (string, error)
}
