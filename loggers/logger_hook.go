package loggers

import (
	"context"
	"strings"

	"github.com/reactloop/reactloop"
	"github.com/reactloop/reactloop/log"
	"gopkg.in/yaml.v3"
)

const rule = "******************************************"

// LoggerHook logs every event of a run. Prompts and raw model responses are logged at
// debug level, iteration flow at info, recoverable errors at warn and failed runs at error.
type LoggerHook struct {
	logger log.Logger
}

// NewLoggerHook creates a LoggerHook. A nil logger discards everything.
func NewLoggerHook(logger log.Logger) *LoggerHook {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &LoggerHook{logger: logger}
}

func (h *LoggerHook) OnBeforeExecution(
	_ context.Context,
	execCtx *reactloop.ExecutionContext,
	e reactloop.BeforeExecutionEvent,
) {
	h.logger.Info("[%s] question: %s", execCtx.RunID(), e.Question)
}

func (h *LoggerHook) OnAfterExecution(
	_ context.Context,
	execCtx *reactloop.ExecutionContext,
	e reactloop.AfterExecutionEvent,
) {
	if e.Error != nil {
		h.logger.Error("[%s] failed after %d iterations: %v", execCtx.RunID(), e.Iterations, e.Error)
	} else {
		h.logger.Info("[%s] finished after %d iterations: %s", execCtx.RunID(), e.Iterations, e.Answer)
	}
	h.logger.Debug("[%s] stats:\n%s", execCtx.RunID(), dump(execCtx.Stats().Counters()))
}

func (h *LoggerHook) OnBeforeIteration(
	_ context.Context,
	execCtx *reactloop.ExecutionContext,
	e reactloop.BeforeIterationEvent,
) {
	h.logger.Debug("[%s] iteration %d", execCtx.RunID(), e.Iteration)
}

func (h *LoggerHook) OnAfterIteration(
	_ context.Context,
	execCtx *reactloop.ExecutionContext,
	e reactloop.AfterIterationEvent,
) {
	if e.Result == nil || e.Result.Entry == nil {
		return
	}
	h.logger.Info("[%s] iteration %d: %s(%q) -> %q (%v)", execCtx.RunID(), e.Iteration,
		e.Result.Entry.Step.ToolName, e.Result.Entry.Step.ToolInput,
		e.Result.Entry.Observation, e.Duration)
}

func (h *LoggerHook) OnError(
	_ context.Context,
	execCtx *reactloop.ExecutionContext,
	e reactloop.ErrorEvent,
) {
	if e.Recoverable {
		h.logger.Warn("[%s] iteration %d: %v", execCtx.RunID(), e.Iteration, e.Err)
		return
	}
	h.logger.Error("[%s] iteration %d: %v", execCtx.RunID(), e.Iteration, e.Err)
}

func (h *LoggerHook) OnBeforeModelCall(
	_ context.Context,
	execCtx *reactloop.ExecutionContext,
	e reactloop.BeforeModelCallEvent,
) {
	h.logger.Debug("[%s] ***Prompt to LLM was (attempt %d):***\n%s\n%s",
		execCtx.RunID(), e.Attempt, e.Prompt, rule)
}

func (h *LoggerHook) OnAfterModelCall(
	_ context.Context,
	execCtx *reactloop.ExecutionContext,
	e reactloop.AfterModelCallEvent,
) {
	if e.Error != nil {
		h.logger.Debug("[%s] model call failed after %v: %v", execCtx.RunID(), e.Duration, e.Error)
		return
	}
	h.logger.Debug("[%s] ***LLM response was (%v):***\n%s\n%s",
		execCtx.RunID(), e.Duration, e.Response, rule)
}

func (h *LoggerHook) OnBeforeToolCall(
	_ context.Context,
	execCtx *reactloop.ExecutionContext,
	e *reactloop.BeforeToolCallEvent,
) {
	h.logger.Debug("[%s] calling tool:\n%s", execCtx.RunID(), dump(map[string]any{
		"tool":    e.ToolName,
		"input":   e.Input,
		"attempt": e.Attempt,
	}))
}

func (h *LoggerHook) OnAfterToolCall(
	_ context.Context,
	execCtx *reactloop.ExecutionContext,
	e reactloop.AfterToolCallEvent,
) {
	result := map[string]any{
		"tool":     e.ToolName,
		"output":   e.Output,
		"duration": e.Duration.String(),
	}
	if e.Error != nil {
		result["error"] = e.Error.Error()
	}
	h.logger.Debug("[%s] tool returned:\n%s", execCtx.RunID(), dump(result))
}

// dump renders v as YAML, falling back to an inline error.
func dump(v any) string {
	out, err := yaml.Marshal(v)
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return strings.TrimRight(string(out), "\n")
}

var (
	_ reactloop.BeforeExecutionHook = (*LoggerHook)(nil)
	_ reactloop.AfterExecutionHook  = (*LoggerHook)(nil)
	_ reactloop.BeforeIterationHook = (*LoggerHook)(nil)
	_ reactloop.AfterIterationHook  = (*LoggerHook)(nil)
	_ reactloop.ErrorHook           = (*LoggerHook)(nil)
	_ reactloop.BeforeModelCallHook = (*LoggerHook)(nil)
	_ reactloop.AfterModelCallHook  = (*LoggerHook)(nil)
	_ reactloop.BeforeToolCallHook  = (*LoggerHook)(nil)
	_ reactloop.AfterToolCallHook   = (*LoggerHook)(nil)
)
