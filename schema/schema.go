// Package schema compiles JSON Schemas for tool inputs and validates the text a model
// supplies as "Action Input".
//
// # Quick Start
//
//	tool := reactloop.NewToolFunc("convert", "Convert an amount between currencies", convert).
//	    WithSchema(schema.Object(map[string]*schema.Property{
//	        "amount": schema.Number("Amount to convert").Min(0),
//	        "from":   schema.String("ISO currency code").Pattern(`^[A-Z]{3}$`),
//	        "to":     schema.String("ISO currency code").Pattern(`^[A-Z]{3}$`),
//	    }, "amount", "from", "to"))
//
// The toolchain compiles the schema at registration and validates every input before the
// tool runs. Inputs are decoded as YAML, so both `{"amount": 3, ...}` and block YAML work.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Schema is a compiled JSON Schema together with its raw map form (used for prompts).
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the raw schema map.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate validates already-decoded data against the schema.
func (s *Schema) Validate(data any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	normalized, err := normalize(data)
	if err != nil {
		return &ValidationError{Err: err}
	}
	if err := s.compiled.Validate(normalized); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidateInput decodes a tool input string and validates it.
//
// Schemas whose top-level type is "string" validate the raw text as-is. Everything else is
// decoded as YAML (a superset of JSON) first.
func (s *Schema) ValidateInput(input string) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if t, _ := s.raw["type"].(string); t == "string" {
		return s.Validate(input)
	}
	var decoded any
	if err := yaml.Unmarshal([]byte(input), &decoded); err != nil {
		return &ValidationError{Err: fmt.Errorf("input is not valid YAML or JSON: %w", err)}
	}
	return s.Validate(decoded)
}

// normalize converts decoded YAML values into the JSON value model the validator expects.
func normalize(data any) (any, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(b))
}

// ValidationError wraps a JSON Schema validation error with a cleaner message.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Compile compiles a raw schema map. A nil map compiles to a nil *Schema, which accepts
// every input.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	doc, err := normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Schema{
		raw:      raw,
		compiled: compiled,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// -----------------------------------------------------------------------------
// Schema Builders
// -----------------------------------------------------------------------------

// Object creates an object schema. Pass property names as variadic arguments to mark them
// as required.
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}

	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Text creates a top-level string schema for free-text tool inputs.
func Text(description string) *Property {
	return String(description)
}

// Property is a property in an object schema.
type Property struct {
	typ         string
	description string
	enum        []any
	minimum     *float64
	maximum     *float64
	minLength   *int
	maxLength   *int
	pattern     string
}

// Build returns the property as a raw schema map.
func (p *Property) Build() map[string]any {
	return p.build()
}

func (p *Property) build() map[string]any {
	m := map[string]any{}

	if p.typ != "" {
		m["type"] = p.typ
	}
	if p.description != "" {
		m["description"] = p.description
	}
	if len(p.enum) > 0 {
		m["enum"] = p.enum
	}
	if p.minimum != nil {
		m["minimum"] = *p.minimum
	}
	if p.maximum != nil {
		m["maximum"] = *p.maximum
	}
	if p.minLength != nil {
		m["minLength"] = *p.minLength
	}
	if p.maxLength != nil {
		m["maxLength"] = *p.maxLength
	}
	if p.pattern != "" {
		m["pattern"] = p.pattern
	}

	return m
}

// String creates a string property.
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// Integer creates an integer property.
func Integer(description string) *Property {
	return &Property{typ: "integer", description: description}
}

// Number creates a number property.
func Number(description string) *Property {
	return &Property{typ: "number", description: description}
}

// Boolean creates a boolean property.
func Boolean(description string) *Property {
	return &Property{typ: "boolean", description: description}
}

// Enum sets allowed values.
func (p *Property) Enum(values ...any) *Property {
	p.enum = values
	return p
}

// Min sets the minimum for number/integer properties.
func (p *Property) Min(min float64) *Property {
	p.minimum = &min
	return p
}

// Max sets the maximum for number/integer properties.
func (p *Property) Max(max float64) *Property {
	p.maximum = &max
	return p
}

// MinLength sets the minimum length for string properties.
func (p *Property) MinLength(min int) *Property {
	p.minLength = &min
	return p
}

// MaxLength sets the maximum length for string properties.
func (p *Property) MaxLength(max int) *Property {
	p.maxLength = &max
	return p
}

// Pattern sets a regex the string must match.
func (p *Property) Pattern(pattern string) *Property {
	p.pattern = pattern
	return p
}
