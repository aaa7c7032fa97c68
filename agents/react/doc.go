// Package react implements the ReAct (Reasoning and Acting) agent loop.
//
// # Overview
//
// Each call to [Agent.Next] performs one iteration:
//
//  1. Render the prompt: tool listing, format instructions, question and the transcript of
//     previous iterations.
//  2. Call the model with the stop sequence "\nObservation:" so it cannot invent tool
//     results.
//  3. Parse the completion with the configured [reactloop.OutputParser].
//  4. Dispatch the requested tool and append its observation, or terminate with the final
//     answer.
//
// Use the executor package to run iterations until the loop finishes.
//
// # Recoverable Conditions
//
// The following never end the run. Each becomes the observation of a transcript entry so the
// model can correct itself on the next iteration:
//
//   - Unparsable output: "Invalid Format: <reason>. Invalid format, try again."
//   - Unknown tool: "<name> is not a valid tool, try one of [a, b]."
//   - Tool error: "Error: <message>"
//   - Model or tool timeout, once retries are exhausted.
//
// Other model errors and context cancellation are returned to the executor and end the run.
//
// # Configuration
//
//   - WithModelTimeout: per model call timeout (default 60s)
//   - WithToolTimeout: per tool call timeout (default 30s)
//   - WithMaxRetries: retries after a timeout (default 1)
//   - WithStopSequences: replaces the default stop sequence
//   - WithParser: custom output parser (default format.NewReAct())
//   - WithPromptTemplate / WithPromptTemplateString: custom prompt
//
// # Templates
//
// The prompt is a Go text/template with access to [PromptData]:
//   - {{.Tools}}, {{.ToolNames}}
//   - {{.FormatInstructions}}
//   - {{.Question}}, {{.Scratchpad}}
package react
