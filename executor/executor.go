package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/reactloop/reactloop"
	"github.com/reactloop/reactloop/hooks"
)

// DefaultMaxIterations is the iteration cap used when Config.MaxIterations is not set.
const DefaultMaxIterations = 15

// Config holds configuration options for the Executor.
type Config struct {
	// MaxIterations caps the number of iterations per run. The loop may use all of them;
	// attempting one more fails with *reactloop.MaxIterationsExceededError.
	// Zero or negative means DefaultMaxIterations.
	MaxIterations int

	// Name is reported by ExecutionContext.Name(). Defaults to "main".
	Name string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxIterations: DefaultMaxIterations,
		Name:          "main",
	}
}

// Result is the outcome of one run.
type Result struct {
	// RunID identifies the run in logs and hook events.
	RunID string

	// Answer is the final answer. Empty unless Status is StatusFinished.
	Answer string

	// Status is StatusFinished on success.
	Status reactloop.LoopStatus

	// Iterations is the number of iterations started.
	Iterations int

	// Transcript is the run's transcript in invocation order.
	Transcript []reactloop.TranscriptEntry

	// Stats is a snapshot of the run's counters.
	Stats map[string]int64
}

// Executor orchestrates the execution of an AgentLoop, managing the lifecycle, the
// iteration cap and hooks.
//
// The Executor is responsible for:
//   - Creating a fresh ExecutionContext (and LoopState) for every question
//   - Running the AgentLoop repeatedly until it returns [reactloop.LATerminate]
//   - Enforcing the iteration cap and checking cancellation between iterations
//   - Invoking lifecycle hooks at appropriate points
//
// An Executor holds no per-run state, so it may serve concurrent questions as long as the
// AgentLoop and registered hooks are safe for concurrent use.
type Executor struct {
	loop   reactloop.AgentLoop
	config Config
	hooks  *hooks.Registry
}

// New creates a new Executor with the given AgentLoop and configuration.
func New(loop reactloop.AgentLoop, config Config) *Executor {
	if config.MaxIterations <= 0 {
		config.MaxIterations = DefaultMaxIterations
	}
	if config.Name == "" {
		config.Name = "main"
	}
	return &Executor{
		loop:   loop,
		config: config,
		hooks:  hooks.NewRegistry(),
	}
}

// WithHooks replaces the executor's hook registry with the provided one.
// Use this when you need to share a registry across multiple executors.
// Returns the executor for chaining.
//
// Example:
//
//	sharedRegistry := hooks.NewRegistry()
//	sharedRegistry.Register(&MetricsHook{})
//
//	exec1 := executor.New(loop1, config).WithHooks(sharedRegistry)
//	exec2 := executor.New(loop2, config).WithHooks(sharedRegistry)
func (e *Executor) WithHooks(h *hooks.Registry) *Executor {
	e.hooks = h
	return e
}

// RegisterHook adds a hook to the executor's existing hook registry.
// The hook can implement any combination of hook interfaces
// (BeforeExecutionHook, AfterToolCallHook, etc.).
// Returns the executor for chaining.
//
// Example:
//
//	exec := executor.New(loop, config).
//	    RegisterHook(loggers.NewLoggerHook(logger)).
//	    RegisterHook(&MetricsHook{})
func (e *Executor) RegisterHook(hook any) *Executor {
	e.hooks.Register(hook)
	return e
}

// Config returns the effective configuration.
func (e *Executor) Config() Config {
	return e.config
}

// Execute runs the AgentLoop on question until it produces a final answer.
//
// The execution flow:
//  1. Fire BeforeExecution
//  2. Repeatedly call AgentLoop.Next until:
//     - It returns LATerminate
//     - The iteration cap would be exceeded
//     - ctx is canceled
//     - Next returns an error
//  3. Fire AfterExecution
//
// The returned Result is never nil; on error it holds the partial transcript and stats.
func (e *Executor) Execute(ctx context.Context, question string) (*Result, error) {
	execCtx := reactloop.NewExecutionContext(ctx, e.config.Name, question)
	if e.hooks != nil {
		execCtx.SetHookFirer(e.hooks)
	}

	err := e.run(execCtx)
	if err != nil {
		execCtx.Fail(err)
	}

	if e.hooks != nil {
		e.hooks.FireAfterExecution(execCtx.Context(), execCtx, reactloop.AfterExecutionEvent{
			Status:     execCtx.Status(),
			Answer:     execCtx.Answer(),
			Iterations: execCtx.Iteration(),
			Error:      err,
		})
	}

	return &Result{
		RunID:      execCtx.RunID(),
		Answer:     execCtx.Answer(),
		Status:     execCtx.Status(),
		Iterations: execCtx.Iteration(),
		Transcript: execCtx.State().Transcript(),
		Stats:      execCtx.Stats().Counters(),
	}, err
}

func (e *Executor) run(execCtx *reactloop.ExecutionContext) error {
	goCtx := execCtx.Context()

	if e.hooks != nil {
		e.hooks.FireBeforeExecution(goCtx, execCtx, reactloop.BeforeExecutionEvent{
			Question: execCtx.State().Question(),
		})
	}

	for {
		// Cancellation is only observed between iterations.
		if err := goCtx.Err(); err != nil {
			execCtx.PublishError(err, false)
			return err
		}

		if execCtx.Iteration() >= e.config.MaxIterations {
			err := &reactloop.MaxIterationsExceededError{MaxIterations: e.config.MaxIterations}
			execCtx.PublishError(err, false)
			return err
		}

		iteration := execCtx.StartIteration()
		iterStart := time.Now()

		if e.hooks != nil {
			e.hooks.FireBeforeIteration(goCtx, execCtx, reactloop.BeforeIterationEvent{
				Iteration: iteration,
			})
		}

		loopResult, loopErr := e.loop.Next(execCtx)
		iterDuration := time.Since(iterStart)

		if loopErr != nil {
			err := fmt.Errorf("AgentLoop.Next (iteration %d): %w", iteration, loopErr)
			execCtx.PublishError(err, false)
			return err
		}

		if e.hooks != nil {
			e.hooks.FireAfterIteration(goCtx, execCtx, reactloop.AfterIterationEvent{
				Iteration: iteration,
				Result:    loopResult,
				Duration:  iterDuration,
			})
		}

		if loopResult.Action == reactloop.LATerminate {
			execCtx.Finish(loopResult.Answer)
			return nil
		}
	}
}
