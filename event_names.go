package reactloop

// Event name constants identify hook events in logs and recordings.
//
// Event names follow the pattern "reactloop:category:timing"; timing is omitted for
// single events such as errors.
const (
	// Execution lifecycle
	EventNameExecutionBefore = "reactloop:execution:before"
	EventNameExecutionAfter  = "reactloop:execution:after"

	// Iteration lifecycle
	EventNameIterationBefore = "reactloop:iteration:before"
	EventNameIterationAfter  = "reactloop:iteration:after"

	// Model calls
	EventNameModelCallBefore = "reactloop:model_call:before"
	EventNameModelCallAfter  = "reactloop:model_call:after"

	// Tool calls
	EventNameToolCallBefore = "reactloop:tool_call:before"
	EventNameToolCallAfter  = "reactloop:tool_call:after"

	// Errors, recoverable or not
	EventNameError = "reactloop:error"
)
