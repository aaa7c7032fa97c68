package react

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/reactloop/reactloop"
	"github.com/reactloop/reactloop/format"
)

// Defaults applied by NewAgent.
const (
	DefaultModelTimeout = 60 * time.Second
	DefaultToolTimeout  = 30 * time.Second
	DefaultMaxRetries   = 1

	// DefaultStopSequence halts generation before the model writes its own observation.
	DefaultStopSequence = "\n" + format.MarkerObservation
)

// errCallTimedOut is returned by callWithTimeout when the deadline fires first.
var errCallTimedOut = errors.New("call timed out")

// Agent implements the ReAct (Reasoning and Acting) agent loop.
// Flow: Think -> Act -> Observe -> Repeat until a final answer.
//
// Agent holds configuration only. All per-run state lives in the ExecutionContext, so one
// Agent can serve concurrent runs.
type Agent struct {
	model          reactloop.Model
	modelName      string
	registry       reactloop.ToolRegistry
	parser         reactloop.OutputParser
	promptTemplate *template.Template
	stopSequences  []string
	modelTimeout   time.Duration
	toolTimeout    time.Duration
	maxRetries     int
}

// NewAgent creates a new Agent with the given model and tool registry.
// Defaults:
//   - Parser: format.NewReAct()
//   - PromptTemplate: DefaultPromptTemplate
//   - StopSequences: ["\nObservation:"]
//   - ModelTimeout: 60s, ToolTimeout: 30s, MaxRetries: 1
func NewAgent(model reactloop.Model, registry reactloop.ToolRegistry) *Agent {
	return &Agent{
		model:          model,
		registry:       registry,
		parser:         format.NewReAct(),
		promptTemplate: DefaultPromptTemplate,
		stopSequences:  []string{DefaultStopSequence},
		modelTimeout:   DefaultModelTimeout,
		toolTimeout:    DefaultToolTimeout,
		maxRetries:     DefaultMaxRetries,
	}
}

// WithModelName sets the model identifier reported in model call events.
func (r *Agent) WithModelName(name string) *Agent {
	r.modelName = name
	return r
}

// WithModelTimeout sets the timeout for each model call. Zero disables the timeout.
func (r *Agent) WithModelTimeout(d time.Duration) *Agent {
	r.modelTimeout = d
	return r
}

// WithToolTimeout sets the timeout for each tool call. Zero disables the timeout.
func (r *Agent) WithToolTimeout(d time.Duration) *Agent {
	r.toolTimeout = d
	return r
}

// WithMaxRetries sets how many times a timed out model or tool call is retried within the
// same iteration. Negative values are treated as zero.
func (r *Agent) WithMaxRetries(n int) *Agent {
	if n < 0 {
		n = 0
	}
	r.maxRetries = n
	return r
}

// WithStopSequences replaces the stop sequences passed to the model.
func (r *Agent) WithStopSequences(stops ...string) *Agent {
	r.stopSequences = stops
	return r
}

// WithParser sets the output parser.
func (r *Agent) WithParser(p reactloop.OutputParser) *Agent {
	r.parser = p
	return r
}

// WithPromptTemplate sets a custom prompt template.
// See DefaultPromptTemplate for the expected template structure.
func (r *Agent) WithPromptTemplate(tmpl *template.Template) *Agent {
	r.promptTemplate = tmpl
	return r
}

// WithPromptTemplateString sets a custom prompt template from a string.
// The string is parsed as a Go text/template with access to PromptData fields.
//
// Example:
//
//	agent.WithPromptTemplateString(`Tools:
//	{{.Tools}}
//	{{.FormatInstructions}}
//	Question: {{.Question}}
//	Thought:{{.Scratchpad}}`)
//
// Returns error if the template string is invalid.
func (r *Agent) WithPromptTemplateString(tmplStr string) (*Agent, error) {
	tmpl, err := template.New("react_prompt").Parse(tmplStr)
	if err != nil {
		return r, fmt.Errorf("failed to parse template: %w", err)
	}
	r.promptTemplate = tmpl
	return r, nil
}

// BuildPrompt renders the prompt for the current state of the loop.
func (r *Agent) BuildPrompt(state *reactloop.LoopState) (string, error) {
	names := r.registry.Names()
	return ExecuteTemplate(r.promptTemplate, PromptData{
		Tools:              r.registry.Prompt(),
		ToolNames:          strings.Join(names, ", "),
		FormatInstructions: r.parser.Instructions(names),
		Question:           state.Question(),
		Scratchpad:         format.FormatTranscript(state.Transcript()),
	})
}

// Next performs one iteration of the ReAct loop.
func (r *Agent) Next(execCtx *reactloop.ExecutionContext) (*reactloop.AgentLoopResult, error) {
	state := execCtx.State()

	prompt, err := r.BuildPrompt(state)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	output, err := r.callModel(execCtx, prompt)
	if err != nil {
		if !errors.Is(err, reactloop.ErrModelTimeout) {
			return nil, err
		}
		execCtx.PublishError(err, true)
		return r.record(state, nil, reactloop.TranscriptEntry{
			Step: &reactloop.ActionStep{
				ToolName: reactloop.ExceptionToolName,
			},
			Observation: fmt.Sprintf("Error: %v. Try again.", err),
		}), nil
	}

	step, err := r.parser.Parse(output)
	if err != nil {
		if !errors.Is(err, reactloop.ErrParse) {
			return nil, fmt.Errorf("parse model output: %w", err)
		}
		raw, reason := output, err.Error()
		var parseErr *reactloop.ParseError
		if errors.As(err, &parseErr) {
			reason = parseErr.Reason
			if parseErr.Raw != "" {
				raw = parseErr.Raw
			}
		}
		execCtx.PublishError(err, true)
		return r.record(state, nil, reactloop.TranscriptEntry{
			Step: &reactloop.ActionStep{
				ToolName:  reactloop.ExceptionToolName,
				ToolInput: raw,
				RawLog:    raw,
			},
			Observation: fmt.Sprintf("Invalid Format: %s. Invalid format, try again.", reason),
		}), nil
	}

	switch s := step.(type) {
	case *reactloop.FinishStep:
		return &reactloop.AgentLoopResult{
			Action: reactloop.LATerminate,
			Step:   s,
			Answer: s.Answer,
		}, nil
	case *reactloop.ActionStep:
		observation, err := r.act(execCtx, s)
		if err != nil {
			return nil, err
		}
		return r.record(state, s, reactloop.TranscriptEntry{
			Step:        s,
			Observation: observation,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported step type %T", step)
	}
}

func (r *Agent) record(
	state *reactloop.LoopState,
	step reactloop.ParsedStep,
	entry reactloop.TranscriptEntry,
) *reactloop.AgentLoopResult {
	state.Append(entry)
	return &reactloop.AgentLoopResult{
		Action: reactloop.LAContinue,
		Step:   step,
		Entry:  &entry,
	}
}

// callModel calls the model, retrying timeouts up to maxRetries times.
func (r *Agent) callModel(execCtx *reactloop.ExecutionContext, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.maxRetries+1; attempt++ {
		execCtx.PublishBeforeModelCall(reactloop.BeforeModelCallEvent{
			Model:         r.modelName,
			Prompt:        prompt,
			StopSequences: r.stopSequences,
			Attempt:       attempt,
		})

		start := time.Now()
		output, err := callWithTimeout(execCtx.Context(), r.modelTimeout,
			func(ctx context.Context) (string, error) {
				return r.model.Complete(ctx, prompt, r.stopSequences)
			})
		if errors.Is(err, errCallTimedOut) {
			err = &reactloop.ModelTimeoutError{Timeout: r.modelTimeout}
		}

		execCtx.PublishAfterModelCall(reactloop.AfterModelCallEvent{
			Model:    r.modelName,
			Prompt:   prompt,
			Response: output,
			Attempt:  attempt,
			Duration: time.Since(start),
			Error:    err,
		})

		if err == nil {
			return output, nil
		}
		if !errors.Is(err, reactloop.ErrModelTimeout) {
			return "", fmt.Errorf("model call: %w", err)
		}
		lastErr = err
	}
	return "", lastErr
}

// act dispatches an ActionStep and returns its observation. Only context cancellation is
// returned as an error; everything else becomes observation text.
func (r *Agent) act(execCtx *reactloop.ExecutionContext, step *reactloop.ActionStep) (string, error) {
	if _, err := r.registry.Lookup(step.ToolName); err != nil {
		if !errors.Is(err, reactloop.ErrUnknownTool) {
			return "", err
		}
		available := r.registry.Names()
		var unknown *reactloop.UnknownToolError
		if errors.As(err, &unknown) && unknown.Available != nil {
			available = unknown.Available
		}
		execCtx.PublishError(err, true)
		return fmt.Sprintf("%s is not a valid tool, try one of [%s].",
			step.ToolName, strings.Join(available, ", ")), nil
	}

	var lastErr error
	for attempt := 1; attempt <= r.maxRetries+1; attempt++ {
		event := &reactloop.BeforeToolCallEvent{
			ToolName: step.ToolName,
			Input:    step.ToolInput,
			Attempt:  attempt,
		}
		execCtx.PublishBeforeToolCall(event)
		input := event.Input

		start := time.Now()
		output, err := callWithTimeout(execCtx.Context(), r.toolTimeout,
			func(ctx context.Context) (string, error) {
				return r.registry.Invoke(ctx, step.ToolName, input)
			})
		if errors.Is(err, errCallTimedOut) {
			err = &reactloop.ToolTimeoutError{Name: step.ToolName, Timeout: r.toolTimeout}
		}

		execCtx.PublishAfterToolCall(reactloop.AfterToolCallEvent{
			ToolName: step.ToolName,
			Input:    input,
			Output:   output,
			Attempt:  attempt,
			Duration: time.Since(start),
			Error:    err,
		})

		if err == nil {
			return output, nil
		}
		if ctxErr := execCtx.Context().Err(); ctxErr != nil {
			return "", ctxErr
		}
		lastErr = err
		if !errors.Is(err, reactloop.ErrToolTimeout) {
			break
		}
	}

	execCtx.PublishError(lastErr, true)
	return fmt.Sprintf("Error: %v", lastErr), nil
}

// callWithTimeout runs fn in its own goroutine and waits for it, the timeout or the parent
// context, whichever comes first. A fn that ignores its context is abandoned; its result is
// discarded when it eventually returns. A panicking fn is reported as an error.
func callWithTimeout(
	parent context.Context,
	timeout time.Duration,
	fn func(ctx context.Context) (string, error),
) (string, error) {
	if err := parent.Err(); err != nil {
		return "", err
	}
	if timeout <= 0 {
		return safeCall(parent, fn)
	}

	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	type result struct {
		output string
		err    error
	}
	done := make(chan result, 1)
	go func() {
		output, err := safeCall(ctx, fn)
		done <- result{output: output, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil && parent.Err() == nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", errCallTimedOut
		}
		return res.output, res.err
	case <-ctx.Done():
		if err := parent.Err(); err != nil {
			return "", err
		}
		return "", errCallTimedOut
	}
}

// safeCall runs fn and converts a panic into an error.
func safeCall(
	ctx context.Context,
	fn func(ctx context.Context) (string, error),
) (output string, err error) {
	defer func() {
		if p := recover(); p != nil {
			output, err = "", fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(ctx)
}

// Compile-time check that Agent implements reactloop.AgentLoop.
var _ reactloop.AgentLoop = (*Agent)(nil)
