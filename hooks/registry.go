package hooks

import (
	"context"

	"github.com/reactloop/reactloop"
)

// Registry stores hooks in registration order and dispatches events to the hooks that
// implement the matching interface.
//
// Registry is NOT safe for concurrent registration. Register all hooks before starting
// execution; firing from concurrent runs is safe as long as the hooks themselves are.
type Registry struct {
	hooks []any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make([]any, 0),
	}
}

// Register adds a hook to the registry. The hook can implement any combination of hook
// interfaces. Hooks are called in the order they are registered.
func (r *Registry) Register(hook any) *Registry {
	r.hooks = append(r.hooks, hook)
	return r
}

// FireBeforeExecution dispatches to all BeforeExecutionHook implementations.
func (r *Registry) FireBeforeExecution(
	ctx context.Context,
	execCtx *reactloop.ExecutionContext,
	event reactloop.BeforeExecutionEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.BeforeExecutionHook); ok {
			hook.OnBeforeExecution(ctx, execCtx, event)
		}
	}
}

// FireAfterExecution dispatches to all AfterExecutionHook implementations.
func (r *Registry) FireAfterExecution(
	ctx context.Context,
	execCtx *reactloop.ExecutionContext,
	event reactloop.AfterExecutionEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.AfterExecutionHook); ok {
			hook.OnAfterExecution(ctx, execCtx, event)
		}
	}
}

// FireBeforeIteration dispatches to all BeforeIterationHook implementations.
func (r *Registry) FireBeforeIteration(
	ctx context.Context,
	execCtx *reactloop.ExecutionContext,
	event reactloop.BeforeIterationEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.BeforeIterationHook); ok {
			hook.OnBeforeIteration(ctx, execCtx, event)
		}
	}
}

// FireAfterIteration dispatches to all AfterIterationHook implementations.
func (r *Registry) FireAfterIteration(
	ctx context.Context,
	execCtx *reactloop.ExecutionContext,
	event reactloop.AfterIterationEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.AfterIterationHook); ok {
			hook.OnAfterIteration(ctx, execCtx, event)
		}
	}
}

// FireError dispatches to all ErrorHook implementations.
func (r *Registry) FireError(
	ctx context.Context,
	execCtx *reactloop.ExecutionContext,
	event reactloop.ErrorEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.ErrorHook); ok {
			hook.OnError(ctx, execCtx, event)
		}
	}
}

// FireBeforeModelCall dispatches to all BeforeModelCallHook implementations.
func (r *Registry) FireBeforeModelCall(
	ctx context.Context,
	execCtx *reactloop.ExecutionContext,
	event reactloop.BeforeModelCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.BeforeModelCallHook); ok {
			hook.OnBeforeModelCall(ctx, execCtx, event)
		}
	}
}

// FireAfterModelCall dispatches to all AfterModelCallHook implementations.
func (r *Registry) FireAfterModelCall(
	ctx context.Context,
	execCtx *reactloop.ExecutionContext,
	event reactloop.AfterModelCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.AfterModelCallHook); ok {
			hook.OnAfterModelCall(ctx, execCtx, event)
		}
	}
}

// FireBeforeToolCall dispatches to all BeforeToolCallHook implementations.
// Hooks can modify event.Input to change the tool input.
func (r *Registry) FireBeforeToolCall(
	ctx context.Context,
	execCtx *reactloop.ExecutionContext,
	event *reactloop.BeforeToolCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.BeforeToolCallHook); ok {
			hook.OnBeforeToolCall(ctx, execCtx, event)
		}
	}
}

// FireAfterToolCall dispatches to all AfterToolCallHook implementations.
func (r *Registry) FireAfterToolCall(
	ctx context.Context,
	execCtx *reactloop.ExecutionContext,
	event reactloop.AfterToolCallEvent,
) {
	for _, h := range r.hooks {
		if hook, ok := h.(reactloop.AfterToolCallHook); ok {
			hook.OnAfterToolCall(ctx, execCtx, event)
		}
	}
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	return len(r.hooks)
}

// Clear removes all registered hooks.
func (r *Registry) Clear() {
	r.hooks = make([]any, 0)
}

var _ reactloop.HookFirer = (*Registry)(nil)
