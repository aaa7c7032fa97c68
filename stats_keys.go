package reactloop

// KeyPrefix is the prefix of every standard stat key. Use your own prefix (e.g. "myapp:")
// for custom counters to avoid collisions.
const KeyPrefix = "reactloop:"

// KeyIterations counts loop iterations.
// This key is protected: IncrCounter ignores it. Only the ExecutionContext increments it.
const KeyIterations = "reactloop:iterations"

// Model call tracking keys.
const (
	KeyModelCalls    = "reactloop:model_calls"
	KeyModelTimeouts = "reactloop:model_timeouts"
)

// Tool call tracking keys.
const (
	KeyToolCalls    = "reactloop:tool_calls"
	KeyToolCallsFor = "reactloop:tool_calls:" // + tool name
	KeyToolErrors   = "reactloop:tool_errors"
	KeyToolTimeouts = "reactloop:tool_timeouts"
	KeyUnknownTools = "reactloop:unknown_tools"
)

// KeyParseErrors counts model outputs that matched neither output shape.
const KeyParseErrors = "reactloop:parse_errors"

var protectedKeys = map[string]bool{
	KeyIterations: true,
}

func isProtectedKey(key string) bool {
	return protectedKeys[key]
}
