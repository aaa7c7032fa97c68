package reactloop

// AgentLoop performs one iteration of an agent loop. An iteration is responsible for:
//  1. Constructing the prompt to be sent to the model.
//  2. Calling the model with the constructed prompt.
//  3. Parsing the model output and acting on it (tool dispatch or termination).
//  4. Deciding whether to continue the loop or terminate with a result.
//
// The executor calls [AgentLoop.Next] repeatedly until it returns [LATerminate], an error,
// or the iteration cap is reached.
type AgentLoop interface {
	// Next performs one iteration of the agent loop. The loop state is reachable via
	// execCtx.State(); implementations must not keep per-run state on the receiver.
	//
	// Recoverable failures (parse errors, unknown tools, timeouts) must be recorded in the
	// transcript and reported as [LAContinue]. A returned error terminates execution.
	Next(execCtx *ExecutionContext) (*AgentLoopResult, error)
}

// LoopAction tells the executor what to do after an iteration.
type LoopAction string

const (
	LAContinue  LoopAction = "c"
	LATerminate LoopAction = "t"
)

// LoopStatus is the state of one loop run.
type LoopStatus string

const (
	StatusRunning  LoopStatus = "running"
	StatusFinished LoopStatus = "finished"
)

// AgentLoopResult is the outcome of a single iteration.
type AgentLoopResult struct {
	// Action indicates whether to continue or terminate the loop.
	Action LoopAction

	// Step is the parsed model output for this iteration. Nil when the model output could
	// not be parsed or the model call timed out.
	Step ParsedStep

	// Entry is the transcript entry appended during this iteration, if any.
	Entry *TranscriptEntry

	// Answer is only set when Action is [LATerminate].
	Answer string
}
