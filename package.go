// Package reactloop provides a manual ReAct (Reasoning and Acting) agent loop for LLMs.
//
// The loop repeats a parse-act-observe cycle: it renders a prompt from static instructions,
// the tool listing and the running transcript, asks the model for a completion, parses the
// completion into either a tool invocation or a final answer, and dispatches the tool. The
// tool's result is appended to the transcript as an observation and replayed into the next
// prompt. The loop ends when the model emits a final answer or the iteration cap is hit.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/reactloop/reactloop/agents/react"
//	    "github.com/reactloop/reactloop/executor"
//	    "github.com/reactloop/reactloop/models"
//	    "github.com/reactloop/reactloop/toolchain"
//	    "github.com/reactloop/reactloop/tools"
//	    "github.com/tmc/langchaingo/llms/openai"
//	)
//
//	func main() {
//	    llm, _ := openai.New(openai.WithModel("gpt-4.1"))
//	    model := models.NewLCGWrapper(llm).WithModelName("gpt-4.1")
//
//	    registry := toolchain.NewRegistry().MustRegister(tools.NewTextLength())
//
//	    agent := react.NewAgent(model, registry)
//	    exec := executor.New(agent, executor.DefaultConfig())
//
//	    result, err := exec.Execute(context.Background(), "What is the length of 'Dog'?")
//	    if err != nil {
//	        panic(err)
//	    }
//	    fmt.Println(result.Answer)
//	}
//
// # Output Format
//
// The model is instructed to answer in one of two shapes:
//
//	Thought: <free text>
//	Action: <tool name>
//	Action Input: <tool input>
//
// or
//
//	Thought: <free text>
//	Final Answer: <final text>
//
// The format package parses these into a [ParsedStep], which is either an [*ActionStep] or a
// [*FinishStep]. "Final Answer:" always wins when both shapes appear.
//
// # Errors
//
// Per-iteration failures are absorbed into the transcript so the model can correct itself:
//   - [ParseError]: the completion matched neither shape
//   - [UnknownToolError]: the model asked for a tool that is not registered
//   - [ToolTimeoutError], [ModelTimeoutError]: a call exceeded its timeout after retries
//
// Only configuration errors ([DuplicateToolError]), the iteration cap
// ([MaxIterationsExceededError]), non-timeout model failures and context cancellation escape
// to the caller.
//
// # Hooks
//
// Hooks observe execution. Implement any of the hook interfaces (e.g. [AfterModelCallHook])
// and register the value with the executor:
//
//	exec := executor.New(agent, executor.DefaultConfig()).
//	    RegisterHook(loggers.NewLoggerHook(log.NewDefaultLogger(log.LogLevelDebug)))
//
// Hooks are a pure side channel; they never change control flow.
package reactloop
