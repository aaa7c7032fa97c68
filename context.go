package reactloop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ExecutionContext is the ambient per-run context passed through the agent loop. It owns the
// run's [LoopState], stats and termination outcome, and dispatches hook events.
//
// One ExecutionContext is created per question; it is never shared between runs.
type ExecutionContext struct {
	mu sync.RWMutex

	ctx   context.Context
	runID string
	name  string

	state *LoopState
	stats *ExecutionStats
	hooks HookFirer

	iteration int
	startTime time.Time

	status LoopStatus
	answer string
	err    error
}

// NewExecutionContext creates a new ExecutionContext for the given question. Every context
// gets a fresh run ID and an empty transcript.
func NewExecutionContext(ctx context.Context, name string, question string) *ExecutionContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &ExecutionContext{
		ctx:       ctx,
		runID:     uuid.NewString(),
		name:      name,
		state:     NewLoopState(question),
		stats:     NewExecutionStats(),
		startTime: time.Now(),
		status:    StatusRunning,
	}
}

// Context returns the underlying context.Context.
func (c *ExecutionContext) Context() context.Context {
	return c.ctx
}

// RunID returns the unique identifier of this run.
func (c *ExecutionContext) RunID() string {
	return c.runID
}

// Name returns the name of this execution (e.g. "main").
func (c *ExecutionContext) Name() string {
	return c.name
}

// State returns the run's loop state.
func (c *ExecutionContext) State() *LoopState {
	return c.state
}

// Stats returns the run's counters.
func (c *ExecutionContext) Stats() *ExecutionStats {
	return c.stats
}

// StartTime returns when the context was created.
func (c *ExecutionContext) StartTime() time.Time {
	return c.startTime
}

// SetHookFirer installs the hook dispatcher. Called by the executor.
func (c *ExecutionContext) SetHookFirer(h HookFirer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = h
}

func (c *ExecutionContext) hookFirer() HookFirer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hooks
}

// -----------------------------------------------------------------------------
// Iteration & Termination
// -----------------------------------------------------------------------------

// Iteration returns the current iteration number (1-indexed), or 0 before the first one.
func (c *ExecutionContext) Iteration() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.iteration
}

// StartIteration begins a new iteration. Called by the executor.
func (c *ExecutionContext) StartIteration() int {
	c.mu.Lock()
	c.iteration++
	n := c.iteration
	c.mu.Unlock()
	c.stats.incr(KeyIterations, 1)
	return n
}

// Finish marks the run as finished with the given answer.
func (c *ExecutionContext) Finish(answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = StatusFinished
	c.answer = answer
	c.err = nil
}

// Fail records the error that ended the run. The status stays StatusRunning.
func (c *ExecutionContext) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// Status returns StatusFinished once a final answer was accepted.
func (c *ExecutionContext) Status() LoopStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Answer returns the final answer, or "" if the run did not finish.
func (c *ExecutionContext) Answer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.answer
}

// Err returns the error that ended the run, if any.
func (c *ExecutionContext) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// -----------------------------------------------------------------------------
// Event Publishing
// -----------------------------------------------------------------------------
//
// Publish methods update stats and then dispatch to hooks. Agent loops must use them for
// every model call attempt, tool call attempt and recoverable error.

// PublishBeforeModelCall records a model call attempt.
func (c *ExecutionContext) PublishBeforeModelCall(event BeforeModelCallEvent) {
	c.stats.incr(KeyModelCalls, 1)
	if h := c.hookFirer(); h != nil {
		h.FireBeforeModelCall(c.ctx, c, event)
	}
}

// PublishAfterModelCall records the outcome of a model call attempt.
func (c *ExecutionContext) PublishAfterModelCall(event AfterModelCallEvent) {
	if errors.Is(event.Error, ErrModelTimeout) {
		c.stats.incr(KeyModelTimeouts, 1)
	}
	if h := c.hookFirer(); h != nil {
		h.FireAfterModelCall(c.ctx, c, event)
	}
}

// PublishBeforeToolCall records a tool call attempt. Hooks may rewrite event.Input.
func (c *ExecutionContext) PublishBeforeToolCall(event *BeforeToolCallEvent) {
	c.stats.incr(KeyToolCalls, 1)
	c.stats.incr(KeyToolCallsFor+event.ToolName, 1)
	if h := c.hookFirer(); h != nil {
		h.FireBeforeToolCall(c.ctx, c, event)
	}
}

// PublishAfterToolCall records the outcome of a tool call attempt.
func (c *ExecutionContext) PublishAfterToolCall(event AfterToolCallEvent) {
	switch {
	case event.Error == nil:
	case errors.Is(event.Error, ErrToolTimeout):
		c.stats.incr(KeyToolTimeouts, 1)
	default:
		c.stats.incr(KeyToolErrors, 1)
	}
	if h := c.hookFirer(); h != nil {
		h.FireAfterToolCall(c.ctx, c, event)
	}
}

// PublishError records an error. Recoverable errors are those absorbed into the transcript.
func (c *ExecutionContext) PublishError(err error, recoverable bool) {
	switch {
	case errors.Is(err, ErrParse):
		c.stats.incr(KeyParseErrors, 1)
	case errors.Is(err, ErrUnknownTool):
		c.stats.incr(KeyUnknownTools, 1)
	}
	if h := c.hookFirer(); h != nil {
		h.FireError(c.ctx, c, ErrorEvent{
			Iteration:   c.Iteration(),
			Err:         err,
			Recoverable: recoverable,
		})
	}
}
