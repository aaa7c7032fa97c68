package reactloop

import (
	"context"
)

// -----------------------------------------------------------------------------
// Hook Interfaces
// -----------------------------------------------------------------------------
//
// Hooks observe execution at various points. To use hooks:
//
//  1. Implement the desired hook interface(s)
//  2. Register with hooks.Registry (or executor.RegisterHook)
//
// Example:
//
//	type PromptLogger struct {
//	    logger log.Logger
//	}
//
//	func (h *PromptLogger) OnAfterModelCall(
//	    ctx context.Context, execCtx *ExecutionContext, e AfterModelCallEvent,
//	) {
//	    h.logger.Debug("prompt:\n%s\nresponse:\n%s", e.Prompt, e.Response)
//	}
//
// Hooks are called in registration order. For paired hooks (Before/After), the After hook is
// always called if the Before hook was called, even on error. Hooks never affect control
// flow; the one exception is BeforeToolCallHook, which may rewrite the tool input.

// BeforeExecutionHook is notified once before the first iteration.
type BeforeExecutionHook interface {
	OnBeforeExecution(ctx context.Context, execCtx *ExecutionContext, event BeforeExecutionEvent)
}

// AfterExecutionHook is notified once after the loop ends, successfully or not.
type AfterExecutionHook interface {
	OnAfterExecution(ctx context.Context, execCtx *ExecutionContext, event AfterExecutionEvent)
}

// BeforeIterationHook is notified before each iteration.
type BeforeIterationHook interface {
	OnBeforeIteration(ctx context.Context, execCtx *ExecutionContext, event BeforeIterationEvent)
}

// AfterIterationHook is notified after each iteration that did not fail.
type AfterIterationHook interface {
	OnAfterIteration(ctx context.Context, execCtx *ExecutionContext, event AfterIterationEvent)
}

// ErrorHook is notified of errors, recoverable or not.
type ErrorHook interface {
	OnError(ctx context.Context, execCtx *ExecutionContext, event ErrorEvent)
}

// BeforeModelCallHook is notified before each model call attempt.
type BeforeModelCallHook interface {
	OnBeforeModelCall(ctx context.Context, execCtx *ExecutionContext, event BeforeModelCallEvent)
}

// AfterModelCallHook is notified after each model call attempt.
type AfterModelCallHook interface {
	OnAfterModelCall(ctx context.Context, execCtx *ExecutionContext, event AfterModelCallEvent)
}

// BeforeToolCallHook is notified before each tool call attempt.
// The hook can modify event.Input to change the input.
type BeforeToolCallHook interface {
	OnBeforeToolCall(ctx context.Context, execCtx *ExecutionContext, event *BeforeToolCallEvent)
}

// AfterToolCallHook is notified after each tool call attempt.
type AfterToolCallHook interface {
	OnAfterToolCall(ctx context.Context, execCtx *ExecutionContext, event AfterToolCallEvent)
}

// HookFirer dispatches events to hooks. hooks.Registry is the standard implementation; the
// executor installs it on the ExecutionContext so agent loops can fire model and tool
// events without depending on the hooks package.
type HookFirer interface {
	FireBeforeExecution(ctx context.Context, execCtx *ExecutionContext, event BeforeExecutionEvent)
	FireAfterExecution(ctx context.Context, execCtx *ExecutionContext, event AfterExecutionEvent)
	FireBeforeIteration(ctx context.Context, execCtx *ExecutionContext, event BeforeIterationEvent)
	FireAfterIteration(ctx context.Context, execCtx *ExecutionContext, event AfterIterationEvent)
	FireError(ctx context.Context, execCtx *ExecutionContext, event ErrorEvent)
	FireBeforeModelCall(ctx context.Context, execCtx *ExecutionContext, event BeforeModelCallEvent)
	FireAfterModelCall(ctx context.Context, execCtx *ExecutionContext, event AfterModelCallEvent)
	FireBeforeToolCall(ctx context.Context, execCtx *ExecutionContext, event *BeforeToolCallEvent)
	FireAfterToolCall(ctx context.Context, execCtx *ExecutionContext, event AfterToolCallEvent)
}
