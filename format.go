package reactloop

// OutputParser classifies raw model text into a [ParsedStep].
//
// Parse must return exactly one of: an [*ActionStep], a [*FinishStep], or an error matching
// [ErrParse]. The error is recoverable; the loop feeds it back to the model.
//
// Instructions renders the output format block of the prompt for the given tool names.
type OutputParser interface {
	Parse(text string) (ParsedStep, error)
	Instructions(toolNames []string) string
}
