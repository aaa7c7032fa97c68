package reactloop

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTypedErrors_MatchSentinels(t *testing.T) {
	type input struct {
		err error
	}

	type expected struct {
		sentinel error
		message  string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:  "parse error",
			input: input{err: &ParseError{Raw: "hm", Reason: "Missing 'Action:' after 'Thought:'"}},
			expected: expected{
				sentinel: ErrParse,
				message:  "could not parse model output: Missing 'Action:' after 'Thought:'",
			},
		},
		{
			name:  "unknown tool",
			input: input{err: &UnknownToolError{Name: "search", Available: []string{"a"}}},
			expected: expected{
				sentinel: ErrUnknownTool,
				message:  `unknown tool: "search"`,
			},
		},
		{
			name:  "duplicate tool",
			input: input{err: &DuplicateToolError{Name: "search"}},
			expected: expected{
				sentinel: ErrDuplicateTool,
				message:  `duplicate tool: "search" is already registered`,
			},
		},
		{
			name:  "tool timeout",
			input: input{err: &ToolTimeoutError{Name: "search", Timeout: 2 * time.Second}},
			expected: expected{
				sentinel: ErrToolTimeout,
				message:  `tool call timed out: "search" after 2s`,
			},
		},
		{
			name:  "model timeout",
			input: input{err: &ModelTimeoutError{Timeout: time.Minute}},
			expected: expected{
				sentinel: ErrModelTimeout,
				message:  "model call timed out after 1m0s",
			},
		},
		{
			name:  "max iterations",
			input: input{err: &MaxIterationsExceededError{MaxIterations: 15}},
			expected: expected{
				sentinel: ErrMaxIterationsExceeded,
				message:  "maximum iterations exceeded: exceeded 15 iterations",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected.message, tt.input.err.Error())
			assert.ErrorIs(t, tt.input.err, tt.expected.sentinel)

			wrapped := fmt.Errorf("AgentLoop.Next (iteration 3): %w", tt.input.err)
			assert.ErrorIs(t, wrapped, tt.expected.sentinel)
		})
	}
}

func TestTypedErrors_DoNotCrossMatch(t *testing.T) {
	err := &ToolTimeoutError{Name: "search"}

	assert.False(t, errors.Is(err, ErrModelTimeout))
	assert.False(t, errors.Is(err, ErrParse))

	var parseErr *ParseError
	assert.False(t, errors.As(err, &parseErr))

	var timeoutErr *ToolTimeoutError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &timeoutErr))
	assert.Equal(t, "search", timeoutErr.Name)
}
