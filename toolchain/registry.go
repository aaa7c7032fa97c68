package toolchain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/reactloop/reactloop"
	"github.com/reactloop/reactloop/schema"
	"gopkg.in/yaml.v3"
)

// Registry is the standard [reactloop.ToolRegistry].
type Registry struct {
	tools   []reactloop.Tool
	toolMap map[string]reactloop.Tool
	schemas map[string]*schema.Schema
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tools:   make([]reactloop.Tool, 0),
		toolMap: make(map[string]reactloop.Tool),
		schemas: make(map[string]*schema.Schema),
	}
}

// Register adds a tool.
//
// Returns a [reactloop.DuplicateToolError] if the name is already registered, or an error if
// the tool is nil, has an empty name, or declares a schema that does not compile.
func (r *Registry) Register(tool reactloop.Tool) error {
	if tool == nil {
		return errors.New("toolchain: cannot register nil tool")
	}
	name := tool.Name()
	if strings.TrimSpace(name) == "" {
		return errors.New("toolchain: tool name must not be empty")
	}
	if _, exists := r.toolMap[name]; exists {
		return &reactloop.DuplicateToolError{Name: name}
	}

	if st, ok := tool.(reactloop.SchemaTool); ok {
		compiled, err := schema.Compile(st.InputSchema())
		if err != nil {
			return fmt.Errorf("toolchain: invalid schema for tool %q: %w", name, err)
		}
		if compiled != nil {
			r.schemas[name] = compiled
		}
	}

	r.tools = append(r.tools, tool)
	r.toolMap[name] = tool
	return nil
}

// MustRegister registers each tool and panics on the first error.
// Returns self for method chaining.
func (r *Registry) MustRegister(tools ...reactloop.Tool) *Registry {
	for _, tool := range tools {
		if err := r.Register(tool); err != nil {
			panic(err)
		}
	}
	return r
}

// Lookup returns the tool registered under name, or a [reactloop.UnknownToolError].
func (r *Registry) Lookup(name string) (reactloop.Tool, error) {
	tool, ok := r.toolMap[name]
	if !ok {
		return nil, &reactloop.UnknownToolError{Name: name, Available: r.Names()}
	}
	return tool, nil
}

// DescribeAll returns (name, description) pairs in registration order.
func (r *Registry) DescribeAll() []reactloop.ToolDescription {
	out := make([]reactloop.ToolDescription, 0, len(r.tools))
	for _, tool := range r.tools {
		out = append(out, reactloop.ToolDescription{
			Name:        tool.Name(),
			Description: tool.Description(),
		})
	}
	return out
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.tools))
	for _, tool := range r.tools {
		out = append(out, tool.Name())
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}

// Prompt renders one "name: description" line per tool, in registration order. Tools with
// an input schema get the schema appended as indented YAML.
func (r *Registry) Prompt() string {
	var sb strings.Builder
	for i, desc := range r.DescribeAll() {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s: %s", desc.Name, desc.Description)

		compiled, ok := r.schemas[desc.Name]
		if !ok {
			continue
		}
		schemaYAML, err := yaml.Marshal(compiled.Raw())
		if err != nil {
			continue
		}
		sb.WriteString("\n  Input schema:")
		for _, line := range strings.Split(strings.TrimRight(string(schemaYAML), "\n"), "\n") {
			sb.WriteString("\n    ")
			sb.WriteString(line)
		}
	}
	return sb.String()
}

// Invoke looks up the tool, validates the input against its schema (if any) and calls it.
func (r *Registry) Invoke(ctx context.Context, name, input string) (string, error) {
	tool, err := r.Lookup(name)
	if err != nil {
		return "", err
	}
	if compiled, ok := r.schemas[name]; ok {
		if err := compiled.ValidateInput(input); err != nil {
			return "", fmt.Errorf("invalid input for tool %q: %w", name, err)
		}
	}
	return tool.Call(ctx, input)
}

var _ reactloop.ToolRegistry = (*Registry)(nil)
