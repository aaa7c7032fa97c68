package tt

import (
	"context"
	"sync"

	"github.com/reactloop/reactloop"
)

// RecordingHook implements every hook interface and records what it saw.
type RecordingHook struct {
	mu sync.Mutex

	// Events is the ordered list of event names, e.g. reactloop.EventNameModelCallBefore.
	Events []string

	ModelCalls []reactloop.AfterModelCallEvent
	ToolCalls  []reactloop.AfterToolCallEvent
	Errors     []reactloop.ErrorEvent
	Iterations []reactloop.AfterIterationEvent
	Execution  *reactloop.AfterExecutionEvent

	// RewriteToolInput, if set, replaces the input of every tool call.
	RewriteToolInput func(toolName, input string) string
}

// NewRecordingHook creates an empty RecordingHook.
func NewRecordingHook() *RecordingHook {
	return &RecordingHook{}
}

func (h *RecordingHook) record(name string) {
	h.Events = append(h.Events, name)
}

// EventNames returns a copy of the recorded event names.
func (h *RecordingHook) EventNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.Events))
	copy(out, h.Events)
	return out
}

func (h *RecordingHook) OnBeforeExecution(
	_ context.Context, _ *reactloop.ExecutionContext, _ reactloop.BeforeExecutionEvent,
) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(reactloop.EventNameExecutionBefore)
}

func (h *RecordingHook) OnAfterExecution(
	_ context.Context, _ *reactloop.ExecutionContext, e reactloop.AfterExecutionEvent,
) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(reactloop.EventNameExecutionAfter)
	h.Execution = &e
}

func (h *RecordingHook) OnBeforeIteration(
	_ context.Context, _ *reactloop.ExecutionContext, _ reactloop.BeforeIterationEvent,
) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(reactloop.EventNameIterationBefore)
}

func (h *RecordingHook) OnAfterIteration(
	_ context.Context, _ *reactloop.ExecutionContext, e reactloop.AfterIterationEvent,
) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(reactloop.EventNameIterationAfter)
	h.Iterations = append(h.Iterations, e)
}

func (h *RecordingHook) OnError(
	_ context.Context, _ *reactloop.ExecutionContext, e reactloop.ErrorEvent,
) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(reactloop.EventNameError)
	h.Errors = append(h.Errors, e)
}

func (h *RecordingHook) OnBeforeModelCall(
	_ context.Context, _ *reactloop.ExecutionContext, _ reactloop.BeforeModelCallEvent,
) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(reactloop.EventNameModelCallBefore)
}

func (h *RecordingHook) OnAfterModelCall(
	_ context.Context, _ *reactloop.ExecutionContext, e reactloop.AfterModelCallEvent,
) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(reactloop.EventNameModelCallAfter)
	h.ModelCalls = append(h.ModelCalls, e)
}

func (h *RecordingHook) OnBeforeToolCall(
	_ context.Context, _ *reactloop.ExecutionContext, e *reactloop.BeforeToolCallEvent,
) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(reactloop.EventNameToolCallBefore)
	if h.RewriteToolInput != nil {
		e.Input = h.RewriteToolInput(e.ToolName, e.Input)
	}
}

func (h *RecordingHook) OnAfterToolCall(
	_ context.Context, _ *reactloop.ExecutionContext, e reactloop.AfterToolCallEvent,
) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(reactloop.EventNameToolCallAfter)
	h.ToolCalls = append(h.ToolCalls, e)
}

var (
	_ reactloop.BeforeExecutionHook = (*RecordingHook)(nil)
	_ reactloop.AfterExecutionHook  = (*RecordingHook)(nil)
	_ reactloop.BeforeIterationHook = (*RecordingHook)(nil)
	_ reactloop.AfterIterationHook  = (*RecordingHook)(nil)
	_ reactloop.ErrorHook           = (*RecordingHook)(nil)
	_ reactloop.BeforeModelCallHook = (*RecordingHook)(nil)
	_ reactloop.AfterModelCallHook  = (*RecordingHook)(nil)
	_ reactloop.BeforeToolCallHook  = (*RecordingHook)(nil)
	_ reactloop.AfterToolCallHook   = (*RecordingHook)(nil)
)
