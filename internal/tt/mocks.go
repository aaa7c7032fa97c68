// Package tt holds test doubles shared by the package tests.
package tt

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/reactloop/reactloop"
)

// -----------------------------------------------------------------------------
// MockModel - implements reactloop.Model with scripted completions
// -----------------------------------------------------------------------------

type mockResponse struct {
	text  string
	err   error
	delay time.Duration

	// stall ignores ctx while delaying, simulating a collaborator that never checks it.
	stall bool
}

// MockModel returns queued responses in order. Once the queue is exhausted it keeps
// returning the fallback text. It honours stop sequences by truncating its output.
type MockModel struct {
	mu        sync.Mutex
	responses []mockResponse
	fallback  string
	callCount int

	// CapturedPrompts stores the prompt of every Complete call.
	CapturedPrompts []string

	// CapturedStops stores the stop sequences of every Complete call.
	CapturedStops [][]string
}

// NewMockModel creates a MockModel whose fallback is an unparsable reply.
func NewMockModel() *MockModel {
	return &MockModel{fallback: "I am not sure what to do."}
}

// AddResponse queues a completion.
func (m *MockModel) AddResponse(text string) *MockModel {
	m.responses = append(m.responses, mockResponse{text: text})
	return m
}

// AddError queues an error.
func (m *MockModel) AddError(err error) *MockModel {
	m.responses = append(m.responses, mockResponse{err: err})
	return m
}

// AddDelayedResponse queues a completion that arrives after delay unless ctx ends first.
func (m *MockModel) AddDelayedResponse(text string, delay time.Duration) *MockModel {
	m.responses = append(m.responses, mockResponse{text: text, delay: delay})
	return m
}

// AddStalledResponse queues a completion that arrives after delay, ignoring ctx.
func (m *MockModel) AddStalledResponse(text string, delay time.Duration) *MockModel {
	m.responses = append(m.responses, mockResponse{text: text, delay: delay, stall: true})
	return m
}

// WithFallback sets the text returned once the queue is exhausted.
func (m *MockModel) WithFallback(text string) *MockModel {
	m.fallback = text
	return m
}

// CallCount returns the number of Complete calls.
func (m *MockModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Prompts returns a copy of the captured prompts.
func (m *MockModel) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.CapturedPrompts))
	copy(out, m.CapturedPrompts)
	return out
}

// Complete implements reactloop.Model.
func (m *MockModel) Complete(
	ctx context.Context,
	prompt string,
	stopSequences []string,
) (string, error) {
	m.mu.Lock()
	idx := m.callCount
	m.callCount++
	m.CapturedPrompts = append(m.CapturedPrompts, prompt)
	m.CapturedStops = append(m.CapturedStops, append([]string(nil), stopSequences...))
	resp := mockResponse{text: m.fallback}
	if idx < len(m.responses) {
		resp = m.responses[idx]
	}
	m.mu.Unlock()

	if resp.delay > 0 {
		if resp.stall {
			time.Sleep(resp.delay)
		} else {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(resp.delay):
			}
		}
	}
	if resp.err != nil {
		return "", resp.err
	}
	return Truncate(resp.text, stopSequences), nil
}

// Truncate cuts text before the earliest stop sequence.
func Truncate(text string, stopSequences []string) string {
	cut := len(text)
	for _, stop := range stopSequences {
		if stop == "" {
			continue
		}
		if i := strings.Index(text, stop); i >= 0 && i < cut {
			cut = i
		}
	}
	return text[:cut]
}

var _ reactloop.Model = (*MockModel)(nil)

// -----------------------------------------------------------------------------
// MockTool - implements reactloop.Tool and records its inputs
// -----------------------------------------------------------------------------

// MockTool is a configurable tool.
type MockTool struct {
	mu          sync.Mutex
	name        string
	description string
	fn          func(ctx context.Context, input string) (string, error)
	delay       time.Duration
	stall       bool

	// Inputs stores the input of every call.
	Inputs []string
}

// NewMockTool creates a tool that always returns output.
func NewMockTool(name, description, output string) *MockTool {
	return &MockTool{
		name:        name,
		description: description,
		fn: func(context.Context, string) (string, error) {
			return output, nil
		},
	}
}

// WithFunc replaces the tool behaviour.
func (t *MockTool) WithFunc(fn func(ctx context.Context, input string) (string, error)) *MockTool {
	t.fn = fn
	return t
}

// WithDelay makes every call wait for delay unless ctx ends first.
func (t *MockTool) WithDelay(delay time.Duration) *MockTool {
	t.delay = delay
	return t
}

// WithStall makes every call sleep for delay, ignoring ctx.
func (t *MockTool) WithStall(delay time.Duration) *MockTool {
	t.delay = delay
	t.stall = true
	return t
}

// Name implements reactloop.Tool.
func (t *MockTool) Name() string { return t.name }

// Description implements reactloop.Tool.
func (t *MockTool) Description() string { return t.description }

// CallCount returns the number of calls.
func (t *MockTool) CallCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.Inputs)
}

// Call implements reactloop.Tool.
func (t *MockTool) Call(ctx context.Context, input string) (string, error) {
	t.mu.Lock()
	t.Inputs = append(t.Inputs, input)
	t.mu.Unlock()

	if t.delay > 0 {
		if t.stall {
			time.Sleep(t.delay)
		} else {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(t.delay):
			}
		}
	}
	return t.fn(ctx, input)
}

var _ reactloop.Tool = (*MockTool)(nil)
