package reactloop

// ParsedStep is the parsed form of one model completion. It is a closed sum type: the only
// implementations are [*ActionStep] and [*FinishStep]. Handle it with a type switch:
//
//	switch s := step.(type) {
//	case *reactloop.ActionStep:
//	    // dispatch s.ToolName with s.ToolInput
//	case *reactloop.FinishStep:
//	    // return s.Answer
//	}
type ParsedStep interface {
	// Log returns the raw model text the step was parsed from.
	Log() string

	parsedStep()
}

// ActionStep is a request to invoke a tool.
type ActionStep struct {
	ToolName  string
	ToolInput string
	RawLog    string
}

// Log returns the raw model text.
func (s *ActionStep) Log() string { return s.RawLog }

func (*ActionStep) parsedStep() {}

// FinishStep carries the final answer.
type FinishStep struct {
	Answer string
	RawLog string
}

// Log returns the raw model text.
func (s *FinishStep) Log() string { return s.RawLog }

func (*FinishStep) parsedStep() {}

// ExceptionToolName is the pseudo tool recorded in the transcript when the model output
// could not be used (parse error or model timeout).
const ExceptionToolName = "_Exception"
