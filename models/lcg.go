package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/reactloop/reactloop"
	"github.com/tmc/langchaingo/llms"
	lcschema "github.com/tmc/langchaingo/schema"
)

// Usage is the normalized token usage of one completion.
type Usage struct {
	InputTokens       int
	OutputTokens      int
	TotalTokens       int
	CachedInputTokens int
	ReasoningTokens   int
	Duration          time.Duration
}

// LCGWrapper wraps an llms.Model and implements reactloop.Model.
// The prompt is sent as a single human message; stop sequences are passed with
// llms.WithStopWords and re-applied to the returned text for providers that ignore them.
//
// Example usage:
//
//	llm, _ := openai.New(openai.WithToken(apiKey), openai.WithModel("gpt-4.1"))
//	model := models.NewLCGWrapper(llm).
//	    WithModelName("gpt-4.1").
//	    WithCallOptions(llms.WithTemperature(0))
type LCGWrapper struct {
	model       llms.Model
	modelName   string
	callOptions []llms.CallOption
	onUsage     func(Usage)
}

// ErrEmptyResponse is returned when the provider returns no choices.
var ErrEmptyResponse = errors.New("model returned no choices")

// NewLCGWrapper creates a new LCGWrapper wrapping the given llms.Model.
func NewLCGWrapper(model llms.Model) *LCGWrapper {
	return &LCGWrapper{
		model: model,
	}
}

// WithModelName sets the model name. Returns the model for chaining.
func (m *LCGWrapper) WithModelName(name string) *LCGWrapper {
	m.modelName = name
	return m
}

// WithCallOptions sets options passed on every call, e.g. llms.WithTemperature(0).
func (m *LCGWrapper) WithCallOptions(opts ...llms.CallOption) *LCGWrapper {
	m.callOptions = opts
	return m
}

// WithUsageHandler registers a function called with the token usage of every successful
// completion. It may be called from concurrent runs.
func (m *LCGWrapper) WithUsageHandler(fn func(Usage)) *LCGWrapper {
	m.onUsage = fn
	return m
}

// ModelName returns the configured model name.
func (m *LCGWrapper) ModelName() string {
	return m.modelName
}

// Unwrap returns the underlying llms.Model.
func (m *LCGWrapper) Unwrap() llms.Model {
	return m.model
}

// Complete implements reactloop.Model.
func (m *LCGWrapper) Complete(
	ctx context.Context,
	prompt string,
	stopSequences []string,
) (string, error) {
	opts := make([]llms.CallOption, 0, len(m.callOptions)+1)
	opts = append(opts, m.callOptions...)
	if len(stopSequences) > 0 {
		opts = append(opts, llms.WithStopWords(stopSequences))
	}

	start := time.Now()
	resp, err := m.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(lcschema.ChatMessageTypeHuman, prompt),
	}, opts...)
	duration := time.Since(start)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	if m.onUsage != nil {
		m.onUsage(extractUsage(resp, duration))
	}

	return truncateAtStop(resp.Choices[0].Content, stopSequences), nil
}

// truncateAtStop cuts text before the earliest stop sequence.
func truncateAtStop(text string, stopSequences []string) string {
	cut := len(text)
	for _, stop := range stopSequences {
		if stop == "" {
			continue
		}
		if i := strings.Index(text, stop); i >= 0 && i < cut {
			cut = i
		}
	}
	return text[:cut]
}

// extractUsage normalizes token usage across providers.
func extractUsage(resp *llms.ContentResponse, duration time.Duration) Usage {
	usage := Usage{Duration: duration}
	if len(resp.Choices) == 0 || resp.Choices[0].GenerationInfo == nil {
		return usage
	}
	rawInfo := resp.Choices[0].GenerationInfo
	usage.InputTokens = extractInputTokens(rawInfo)
	usage.OutputTokens = extractOutputTokens(rawInfo)
	usage.TotalTokens = extractTotalTokens(rawInfo, usage.InputTokens, usage.OutputTokens)
	usage.CachedInputTokens = extractCachedInputTokens(rawInfo)
	usage.ReasoningTokens = extractReasoningTokens(rawInfo)
	return usage
}

// String renders the usage on one line.
func (u Usage) String() string {
	return fmt.Sprintf("in=%d out=%d total=%d cached=%d reasoning=%d (%v)",
		u.InputTokens, u.OutputTokens, u.TotalTokens, u.CachedInputTokens, u.ReasoningTokens,
		u.Duration)
}

// extractInputTokens extracts input/prompt token count from GenerationInfo.
// Handles different key names used by different providers.
func extractInputTokens(info map[string]any) int {
	// OpenAI / Ollama / Maritaca / Google (compat)
	if v := getIntFromMap(info, "PromptTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := getIntFromMap(info, "InputTokens"); v > 0 {
		return v
	}
	// Google / Bedrock
	if v := getIntFromMap(info, "input_tokens"); v > 0 {
		return v
	}
	return 0
}

// extractOutputTokens extracts output/completion token count from GenerationInfo.
func extractOutputTokens(info map[string]any) int {
	// OpenAI / Ollama / Maritaca / Google (compat)
	if v := getIntFromMap(info, "CompletionTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := getIntFromMap(info, "OutputTokens"); v > 0 {
		return v
	}
	// Google / Bedrock
	if v := getIntFromMap(info, "output_tokens"); v > 0 {
		return v
	}
	return 0
}

// extractTotalTokens extracts total token count or computes it.
func extractTotalTokens(info map[string]any, input, output int) int {
	// OpenAI / Ollama / Maritaca / Google (compat)
	if v := getIntFromMap(info, "TotalTokens"); v > 0 {
		return v
	}
	// Google / Bedrock
	if v := getIntFromMap(info, "total_tokens"); v > 0 {
		return v
	}
	// Compute if not available
	return input + output
}

// extractCachedInputTokens extracts cached input token count from GenerationInfo.
func extractCachedInputTokens(info map[string]any) int {
	// OpenAI
	if v := getIntFromMap(info, "PromptCachedTokens"); v > 0 {
		return v
	}
	// Anthropic
	if v := getIntFromMap(info, "CacheReadInputTokens"); v > 0 {
		return v
	}
	// Google / Ollama
	if v := getIntFromMap(info, "CachedTokens"); v > 0 {
		return v
	}
	return 0
}

// extractReasoningTokens extracts reasoning/thinking token count from GenerationInfo.
func extractReasoningTokens(info map[string]any) int {
	// OpenAI
	if v := getIntFromMap(info, "ReasoningTokens"); v > 0 {
		return v
	}
	if v := getIntFromMap(info, "CompletionReasoningTokens"); v > 0 {
		return v
	}
	// OpenAI standardized field
	if v := getIntFromMap(info, "ThinkingTokens"); v > 0 {
		return v
	}
	return 0
}

// getIntFromMap extracts an int value from a map, handling various numeric types.
func getIntFromMap(m map[string]any, key string) int {
	v, ok := m[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	default:
		return 0
	}
}

// Compile-time check that LCGWrapper implements reactloop.Model.
var _ reactloop.Model = (*LCGWrapper)(nil)
