package reactloop

import "time"

// -----------------------------------------------------------------------------
// Executor Events
// -----------------------------------------------------------------------------

// BeforeExecutionEvent is emitted once before the first iteration begins.
type BeforeExecutionEvent struct {
	// Question is the question that started the run.
	Question string
}

// AfterExecutionEvent is emitted once after execution ends.
type AfterExecutionEvent struct {
	// Status is StatusFinished on success, StatusRunning if the run was abandoned.
	Status LoopStatus

	// Answer is the final answer (empty on failure).
	Answer string

	// Iterations is the number of iterations started.
	Iterations int

	// Error is the error if execution failed (nil on success).
	Error error
}

// BeforeIterationEvent is emitted before each AgentLoop.Next call.
type BeforeIterationEvent struct {
	// Iteration is the current iteration number (1-indexed).
	Iteration int
}

// AfterIterationEvent is emitted after each successful AgentLoop.Next call.
type AfterIterationEvent struct {
	// Iteration is the current iteration number (1-indexed).
	Iteration int

	// Result is the AgentLoopResult from this iteration.
	Result *AgentLoopResult

	// Duration is how long this iteration took.
	Duration time.Duration
}

// ErrorEvent is emitted for every error during execution, including recoverable ones that
// are fed back to the model.
type ErrorEvent struct {
	// Iteration is the iteration where the error occurred (0 if before first iteration).
	Iteration int

	// Err is the error that occurred.
	Err error

	// Recoverable is true when the error was absorbed into the transcript.
	Recoverable bool
}

// -----------------------------------------------------------------------------
// Model Call Events
// -----------------------------------------------------------------------------

// BeforeModelCallEvent is emitted before each model call attempt.
type BeforeModelCallEvent struct {
	// Model is the model identifier, if known.
	Model string

	// Prompt is the full prompt sent to the model.
	Prompt string

	// StopSequences are the stop sequences passed to the model.
	StopSequences []string

	// Attempt is 1 for the first call, incremented on timeout retries.
	Attempt int
}

// AfterModelCallEvent is emitted after each model call attempt.
type AfterModelCallEvent struct {
	Model string

	Prompt string

	// Response is the raw completion (empty on error).
	Response string

	Attempt int

	Duration time.Duration

	// Error is any error that occurred (nil if successful).
	Error error
}

// -----------------------------------------------------------------------------
// Tool Call Events
// -----------------------------------------------------------------------------

// BeforeToolCallEvent is emitted before each tool call attempt.
// Hooks can modify Input to change what the tool receives.
type BeforeToolCallEvent struct {
	ToolName string
	Input    string
	Attempt  int
}

// AfterToolCallEvent is emitted after each tool call attempt.
type AfterToolCallEvent struct {
	ToolName string
	Input    string

	// Output is the tool's output (empty if an error occurred).
	Output string

	Attempt  int
	Duration time.Duration
	Error    error
}
