package models

import (
	"context"

	"github.com/reactloop/reactloop/log"
	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/llms"
)

// CallbackHandler is a langchaingo callbacks.Handler that logs provider traffic: request
// size, response stop reason and provider errors. Attach it with e.g. openai.WithCallback.
//
// Prompt and response text are left to loggers.LoggerHook, so enabling both does not print
// them twice. The handler sees every provider request, including retries made by the client.
type CallbackHandler struct {
	callbacks.SimpleHandler
	logger log.Logger
}

// NewCallbackHandler creates a CallbackHandler logging at debug level.
func NewCallbackHandler(logger log.Logger) *CallbackHandler {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &CallbackHandler{logger: logger}
}

// HandleLLMGenerateContentStart logs the request size.
func (h *CallbackHandler) HandleLLMGenerateContentStart(
	_ context.Context,
	ms []llms.MessageContent,
) {
	h.logger.Debug("LLM request: %d messages, %d chars", len(ms), textLen(ms))
}

// HandleLLMGenerateContentEnd logs the first choice's stop reason and size.
func (h *CallbackHandler) HandleLLMGenerateContentEnd(
	_ context.Context,
	res *llms.ContentResponse,
) {
	if res == nil || len(res.Choices) == 0 {
		h.logger.Debug("LLM response: no choices")
		return
	}
	choice := res.Choices[0]
	h.logger.Debug("LLM response: %d choices, stop reason %q, %d chars",
		len(res.Choices), choice.StopReason, len(choice.Content))
}

// HandleLLMError logs provider errors.
func (h *CallbackHandler) HandleLLMError(_ context.Context, err error) {
	h.logger.Warn("LLM error: %v", err)
}

func textLen(ms []llms.MessageContent) int {
	n := 0
	for _, m := range ms {
		for _, part := range m.Parts {
			if text, ok := part.(llms.TextContent); ok {
				n += len(text.Text)
			}
		}
	}
	return n
}

var _ callbacks.Handler = (*CallbackHandler)(nil)
