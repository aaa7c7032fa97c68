package reactloop

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors. The typed errors below match these via errors.Is.
var (
	ErrParse                 = errors.New("could not parse model output")
	ErrUnknownTool           = errors.New("unknown tool")
	ErrDuplicateTool         = errors.New("duplicate tool")
	ErrToolTimeout           = errors.New("tool call timed out")
	ErrModelTimeout          = errors.New("model call timed out")
	ErrMaxIterationsExceeded = errors.New("maximum iterations exceeded")
)

// ParseError is returned when model output matches neither the action nor the final answer
// shape. Recoverable: the loop feeds it back to the model.
type ParseError struct {
	// Raw is the offending model output.
	Raw string

	// Reason describes what was missing.
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %s", ErrParse, e.Reason)
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// UnknownToolError is returned when a tool name is not registered. Recoverable.
type UnknownToolError struct {
	Name      string
	Available []string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownTool, e.Name)
}

func (e *UnknownToolError) Is(target error) bool { return target == ErrUnknownTool }

// DuplicateToolError is returned when registering a name twice. Fatal at startup.
type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("%v: %q is already registered", ErrDuplicateTool, e.Name)
}

func (e *DuplicateToolError) Is(target error) bool { return target == ErrDuplicateTool }

// ToolTimeoutError is returned when a tool call exceeds its timeout.
type ToolTimeoutError struct {
	Name    string
	Timeout time.Duration
}

func (e *ToolTimeoutError) Error() string {
	return fmt.Sprintf("%v: %q after %v", ErrToolTimeout, e.Name, e.Timeout)
}

func (e *ToolTimeoutError) Is(target error) bool { return target == ErrToolTimeout }

// ModelTimeoutError is returned when a model call exceeds its timeout.
type ModelTimeoutError struct {
	Timeout time.Duration
}

func (e *ModelTimeoutError) Error() string {
	return fmt.Sprintf("%v after %v", ErrModelTimeout, e.Timeout)
}

func (e *ModelTimeoutError) Is(target error) bool { return target == ErrModelTimeout }

// MaxIterationsExceededError is returned when the loop is still running after the
// iteration cap. Fatal for the request: no answer is produced.
type MaxIterationsExceededError struct {
	MaxIterations int
}

func (e *MaxIterationsExceededError) Error() string {
	return fmt.Sprintf("%v: exceeded %d iterations", ErrMaxIterationsExceeded, e.MaxIterations)
}

func (e *MaxIterationsExceededError) Is(target error) bool {
	return target == ErrMaxIterationsExceeded
}
