// Package format parses model output written in the ReAct text format and renders the
// transcript back into prompt text.
//
// # The Format
//
// The model is instructed to answer with either an action:
//
//	Thought: I should count.
//	Action: get_text_length
//	Action Input: 'Dog'
//
// or a final answer:
//
//	Thought: I now know the final answer
//	Final Answer: 3
//
// [ReAct.Parse] turns one completion into a [reactloop.ActionStep] or
// [reactloop.FinishStep]. "Final Answer:" wins whenever it appears, even if Action markers
// precede it. Anything else fails with a [*reactloop.ParseError], which the loop feeds back
// to the model as an observation.
//
// # Scratchpad
//
// [FormatTranscript] renders previous iterations the way the model produced them, each
// followed by its observation and a fresh "Thought: " prompt:
//
//	Thought: I should count.
//	Action: get_text_length
//	Action Input: 'Dog'
//	Observation: 3
//	Thought:
//
// # Custom Parsers
//
// Implement [reactloop.OutputParser] and pass it to react.Agent.WithParser.
package format
