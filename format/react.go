package format

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/reactloop/reactloop"
)

// Markers of the ReAct text format.
const (
	MarkerThought     = "Thought:"
	MarkerAction      = "Action:"
	MarkerActionInput = "Action Input:"
	MarkerObservation = "Observation:"
	MarkerFinalAnswer = "Final Answer:"
)

// Parse failure reasons.
const (
	ReasonMissingAction      = "Missing 'Action:' after 'Thought:'"
	ReasonMissingActionInput = "Missing 'Action Input:' after 'Action:'"
	ReasonMissingToolName    = "Missing tool name after 'Action:'"
)

var (
	// "Action:" up to the end of its line. Never matches "Action Input:".
	actionRe = regexp.MustCompile(`Action:[ \t]*([^\r\n]*)`)

	// A line the model over-generated on behalf of a tool.
	observationLineRe = regexp.MustCompile(`(?m)^[ \t]*Observation:`)
)

// ReAct parses the Thought / Action / Action Input / Final Answer text format.
// It is stateless and safe for concurrent use.
type ReAct struct{}

// NewReAct creates a new ReAct parser.
func NewReAct() *ReAct {
	return &ReAct{}
}

// Parse classifies one model completion.
func (p *ReAct) Parse(text string) (reactloop.ParsedStep, error) {
	if idx := strings.Index(text, MarkerFinalAnswer); idx >= 0 {
		return &reactloop.FinishStep{
			Answer: strings.TrimSpace(text[idx+len(MarkerFinalAnswer):]),
			RawLog: text,
		}, nil
	}

	loc := actionRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, &reactloop.ParseError{Raw: text, Reason: ReasonMissingAction}
	}
	toolName := strings.TrimSpace(text[loc[2]:loc[3]])

	rest := text[loc[1]:]
	inputIdx := strings.Index(rest, MarkerActionInput)
	if inputIdx < 0 {
		return nil, &reactloop.ParseError{Raw: text, Reason: ReasonMissingActionInput}
	}
	if toolName == "" {
		return nil, &reactloop.ParseError{Raw: text, Reason: ReasonMissingToolName}
	}

	input := rest[inputIdx+len(MarkerActionInput):]
	if obs := observationLineRe.FindStringIndex(input); obs != nil {
		input = input[:obs[0]]
	}

	return &reactloop.ActionStep{
		ToolName:  toolName,
		ToolInput: cleanToolInput(input),
		RawLog:    text,
	}, nil
}

// cleanToolInput trims whitespace and then any surrounding quote characters.
// Inputs whose meaningful content starts or ends with a quote lose it.
func cleanToolInput(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}

// Instructions renders the output format block shown to the model.
func (p *ReAct) Instructions(toolNames []string) string {
	var sb strings.Builder
	sb.WriteString("Use the following format:\n\n")
	sb.WriteString("Question: the input question you must answer\n")
	sb.WriteString(MarkerThought + " you should always think about what to do\n")
	fmt.Fprintf(&sb, "%s the action to take, should be one of [%s]\n",
		MarkerAction, strings.Join(toolNames, ", "))
	sb.WriteString(MarkerActionInput + " the input to the action\n")
	sb.WriteString(MarkerObservation + " the result of the action\n")
	sb.WriteString("... (this Thought/Action/Action Input/Observation can repeat N times)\n")
	sb.WriteString(MarkerThought + " I now know the final answer\n")
	sb.WriteString(MarkerFinalAnswer + " the final answer to the original input question")
	return sb.String()
}

// FormatTranscript renders the scratchpad replayed into the next prompt. Entries appear in
// invocation order, each as the raw model text followed by its observation.
func FormatTranscript(entries []reactloop.TranscriptEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		if e.Step != nil {
			sb.WriteString(e.Step.Log())
		}
		sb.WriteString("\n" + MarkerObservation + " ")
		sb.WriteString(e.Observation)
		sb.WriteString("\n" + MarkerThought + " ")
	}
	return sb.String()
}

// Compile-time check that ReAct implements reactloop.OutputParser.
var _ reactloop.OutputParser = (*ReAct)(nil)
