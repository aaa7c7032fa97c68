package react

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/reactloop/reactloop"
	"github.com/reactloop/reactloop/format"
	"github.com/reactloop/reactloop/hooks"
	"github.com/reactloop/reactloop/internal/tt"
	"github.com/reactloop/reactloop/schema"
	"github.com/reactloop/reactloop/toolchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	countDogAction = "Thought: I should count.\nAction: get_text_length\nAction Input: 'Dog'\n"
	finishThree    = "Thought: done.\nFinal Answer: 3\n"
)

func textLengthTool() *tt.MockTool {
	return tt.NewMockTool("get_text_length", "Returns the length of a text by character", "").
		WithFunc(func(_ context.Context, input string) (string, error) {
			return fmt.Sprintf("%d", len(input)), nil
		})
}

func newExecCtx(t *testing.T, question string, hook any) *reactloop.ExecutionContext {
	t.Helper()
	execCtx := reactloop.NewExecutionContext(context.Background(), "test", question)
	if hook != nil {
		execCtx.SetHookFirer(hooks.NewRegistry().Register(hook))
	}
	return execCtx
}

func TestAgent_Next_Action(t *testing.T) {
	model := tt.NewMockModel().AddResponse(countDogAction)
	tool := textLengthTool()
	registry := toolchain.NewRegistry().MustRegister(tool)

	execCtx := newExecCtx(t, "length of 'Dog'", nil)
	result, err := NewAgent(model, registry).Next(execCtx)
	require.NoError(t, err)

	assert.Equal(t, reactloop.LAContinue, result.Action)
	step, ok := result.Step.(*reactloop.ActionStep)
	require.True(t, ok, "expected ActionStep, got %T", result.Step)
	assert.Equal(t, "get_text_length", step.ToolName)
	assert.Equal(t, "Dog", step.ToolInput)

	require.NotNil(t, result.Entry)
	assert.Equal(t, "3", result.Entry.Observation)
	assert.Equal(t, []string{"Dog"}, tool.Inputs)

	transcript := execCtx.State().Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, step, transcript[0].Step)
	assert.Equal(t, "3", transcript[0].Observation)

	assert.Equal(t, int64(1), execCtx.Stats().GetCounter(reactloop.KeyModelCalls))
	assert.Equal(t, int64(1), execCtx.Stats().GetToolCallCount())
	assert.Equal(t, int64(1),
		execCtx.Stats().GetCounter(reactloop.KeyToolCallsFor+"get_text_length"))
}

func TestAgent_Next_Finish(t *testing.T) {
	model := tt.NewMockModel().AddResponse(finishThree)
	registry := toolchain.NewRegistry().MustRegister(textLengthTool())

	execCtx := newExecCtx(t, "length of 'Dog'", nil)
	result, err := NewAgent(model, registry).Next(execCtx)
	require.NoError(t, err)

	assert.Equal(t, reactloop.LATerminate, result.Action)
	assert.Equal(t, "3", result.Answer)
	assert.Nil(t, result.Entry)
	assert.Equal(t, 0, execCtx.State().Len())
}

func TestAgent_Next_RecoverableObservations(t *testing.T) {
	type input struct {
		response string
		tools    []reactloop.Tool
	}

	type expected struct {
		toolName    string
		observation string
		counterKey  string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "unparsable output",
			input: input{
				response: "I am not sure what to do.",
				tools:    []reactloop.Tool{textLengthTool()},
			},
			expected: expected{
				toolName: reactloop.ExceptionToolName,
				observation: "Invalid Format: Missing 'Action:' after 'Thought:'. " +
					"Invalid format, try again.",
				counterKey: reactloop.KeyParseErrors,
			},
		},
		{
			name: "action without input",
			input: input{
				response: "Thought: hmm\nAction: get_text_length\n",
				tools:    []reactloop.Tool{textLengthTool()},
			},
			expected: expected{
				toolName: reactloop.ExceptionToolName,
				observation: "Invalid Format: Missing 'Action Input:' after 'Action:'. " +
					"Invalid format, try again.",
				counterKey: reactloop.KeyParseErrors,
			},
		},
		{
			name: "unknown tool",
			input: input{
				response: "Thought: search it\nAction: search\nAction Input: dogs\n",
				tools: []reactloop.Tool{
					textLengthTool(),
					tt.NewMockTool("echo", "Echoes input", "echo"),
				},
			},
			expected: expected{
				toolName:    "search",
				observation: "search is not a valid tool, try one of [get_text_length, echo].",
				counterKey:  reactloop.KeyUnknownTools,
			},
		},
		{
			name: "tool error",
			input: input{
				response: "Action: broken\nAction Input: x\n",
				tools: []reactloop.Tool{
					tt.NewMockTool("broken", "Always fails", "").
						WithFunc(func(context.Context, string) (string, error) {
							return "", errors.New("disk on fire")
						}),
				},
			},
			expected: expected{
				toolName:    "broken",
				observation: "Error: disk on fire",
				counterKey:  reactloop.KeyToolErrors,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			model := tt.NewMockModel().AddResponse(tc.input.response)
			registry := toolchain.NewRegistry().MustRegister(tc.input.tools...)
			recorder := tt.NewRecordingHook()

			execCtx := newExecCtx(t, "question", recorder)
			result, err := NewAgent(model, registry).Next(execCtx)
			require.NoError(t, err)

			assert.Equal(t, reactloop.LAContinue, result.Action)
			require.NotNil(t, result.Entry)
			assert.Equal(t, tc.expected.toolName, result.Entry.Step.ToolName)
			assert.Equal(t, tc.expected.observation, result.Entry.Observation)
			assert.Equal(t, 1, execCtx.State().Len())
			assert.Equal(t, int64(1), execCtx.Stats().GetCounter(tc.expected.counterKey))

			require.Len(t, recorder.Errors, 1)
			assert.True(t, recorder.Errors[0].Recoverable)
		})
	}
}

func TestAgent_Next_ParseErrorReplaysRawOutput(t *testing.T) {
	model := tt.NewMockModel().
		AddResponse("gibberish").
		AddResponse(finishThree)
	registry := toolchain.NewRegistry().MustRegister(textLengthTool())
	agent := NewAgent(model, registry)

	execCtx := newExecCtx(t, "question", nil)
	_, err := agent.Next(execCtx)
	require.NoError(t, err)
	_, err = agent.Next(execCtx)
	require.NoError(t, err)

	prompts := model.Prompts()
	require.Len(t, prompts, 2)
	assert.True(t, strings.HasSuffix(prompts[1],
		"Thought:gibberish\nObservation: Invalid Format: Missing 'Action:' after 'Thought:'. "+
			"Invalid format, try again.\nThought: "),
		"unexpected prompt:\n%s", prompts[1])
}

func TestAgent_BuildPrompt(t *testing.T) {
	model := tt.NewMockModel().
		AddResponse(countDogAction).
		AddResponse(finishThree)
	registry := toolchain.NewRegistry().MustRegister(textLengthTool())
	agent := NewAgent(model, registry)

	execCtx := newExecCtx(t, "length of 'Dog'", nil)
	_, err := agent.Next(execCtx)
	require.NoError(t, err)
	_, err = agent.Next(execCtx)
	require.NoError(t, err)

	prompts := model.Prompts()
	require.Len(t, prompts, 2)

	first := prompts[0]
	assert.True(t, strings.HasPrefix(first,
		"Answer the following questions as best you can. You have access to the following tools:\n\n"+
			"get_text_length: Returns the length of a text by character\n\n"+
			"Use the following format:"), "unexpected prompt:\n%s", first)
	assert.Contains(t, first, "should be one of [get_text_length]")
	assert.True(t, strings.HasSuffix(first, "Begin!\n\nQuestion: length of 'Dog'\nThought:"),
		"unexpected prompt:\n%s", first)

	second := prompts[1]
	assert.True(t, strings.HasSuffix(second,
		"Question: length of 'Dog'\nThought:"+countDogAction+"\nObservation: 3\nThought: "),
		"unexpected prompt:\n%s", second)

	assert.Equal(t, [][]string{{"\nObservation:"}, {"\nObservation:"}}, model.CapturedStops)
}

func TestAgent_WithPromptTemplateString(t *testing.T) {
	model := tt.NewMockModel().AddResponse(finishThree)
	registry := toolchain.NewRegistry().MustRegister(textLengthTool())

	agent, err := NewAgent(model, registry).
		WithStopSequences("\nObservation:", "\nQuestion:").
		WithPromptTemplateString("[{{.ToolNames}}] Q={{.Question}}")
	require.NoError(t, err)

	_, err = agent.Next(newExecCtx(t, "why?", nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"[get_text_length] Q=why?"}, model.Prompts())
	assert.Equal(t, [][]string{{"\nObservation:", "\nQuestion:"}}, model.CapturedStops)

	_, err = NewAgent(model, registry).WithPromptTemplateString("{{.Broken")
	assert.Error(t, err)
}

func TestAgent_Next_ModelTimeout(t *testing.T) {
	type input struct {
		maxRetries int
		model      *tt.MockModel
	}

	type expected struct {
		calls       int
		timeouts    int64
		action      reactloop.LoopAction
		exception   bool
		observation string
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "retry succeeds",
			input: input{
				maxRetries: 1,
				model: tt.NewMockModel().
					AddDelayedResponse(finishThree, time.Second).
					AddResponse(finishThree),
			},
			expected: expected{
				calls:    2,
				timeouts: 1,
				action:   reactloop.LATerminate,
			},
		},
		{
			name: "retries exhausted",
			input: input{
				maxRetries: 1,
				model: tt.NewMockModel().
					AddDelayedResponse(finishThree, time.Second).
					AddDelayedResponse(finishThree, time.Second),
			},
			expected: expected{
				calls:       2,
				timeouts:    2,
				action:      reactloop.LAContinue,
				exception:   true,
				observation: "Error: model call timed out after 20ms. Try again.",
			},
		},
		{
			name: "stalled model is abandoned",
			input: input{
				maxRetries: 0,
				model: tt.NewMockModel().
					AddStalledResponse(finishThree, 300*time.Millisecond),
			},
			expected: expected{
				calls:       1,
				timeouts:    1,
				action:      reactloop.LAContinue,
				exception:   true,
				observation: "Error: model call timed out after 20ms. Try again.",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			registry := toolchain.NewRegistry().MustRegister(textLengthTool())
			agent := NewAgent(tc.input.model, registry).
				WithModelTimeout(20 * time.Millisecond).
				WithMaxRetries(tc.input.maxRetries)

			execCtx := newExecCtx(t, "question", nil)
			start := time.Now()
			result, err := agent.Next(execCtx)
			require.NoError(t, err)
			assert.Less(t, time.Since(start), 250*time.Millisecond)

			assert.Equal(t, tc.expected.calls, tc.input.model.CallCount())
			assert.Equal(t, tc.expected.timeouts,
				execCtx.Stats().GetCounter(reactloop.KeyModelTimeouts))
			assert.Equal(t, tc.expected.action, result.Action)

			if tc.expected.exception {
				require.NotNil(t, result.Entry)
				assert.Equal(t, reactloop.ExceptionToolName, result.Entry.Step.ToolName)
				assert.Equal(t, tc.expected.observation, result.Entry.Observation)
				assert.Equal(t, 1, execCtx.State().Len())
			}
		})
	}
}

func TestAgent_Next_ToolTimeout(t *testing.T) {
	type input struct {
		maxRetries int
		tool       *tt.MockTool
	}

	type expected struct {
		calls    int
		timeouts int64
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name: "delayed tool retried once",
			input: input{
				maxRetries: 1,
				tool:       tt.NewMockTool("slow", "Slow tool", "ok").WithDelay(time.Second),
			},
			expected: expected{calls: 2, timeouts: 2},
		},
		{
			name: "stalled tool without retries",
			input: input{
				maxRetries: 0,
				tool:       tt.NewMockTool("slow", "Slow tool", "ok").WithStall(300 * time.Millisecond),
			},
			expected: expected{calls: 1, timeouts: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			model := tt.NewMockModel().AddResponse("Action: slow\nAction Input: now\n")
			registry := toolchain.NewRegistry().MustRegister(tc.input.tool)
			agent := NewAgent(model, registry).
				WithToolTimeout(20 * time.Millisecond).
				WithMaxRetries(tc.input.maxRetries)

			execCtx := newExecCtx(t, "question", nil)
			start := time.Now()
			result, err := agent.Next(execCtx)
			require.NoError(t, err)
			assert.Less(t, time.Since(start), 250*time.Millisecond)

			assert.Equal(t, reactloop.LAContinue, result.Action)
			require.NotNil(t, result.Entry)
			assert.Equal(t, "slow", result.Entry.Step.ToolName)
			assert.Equal(t, `Error: tool call timed out: "slow" after 20ms`,
				result.Entry.Observation)
			assert.Equal(t, tc.expected.calls, tc.input.tool.CallCount())
			assert.Equal(t, tc.expected.timeouts,
				execCtx.Stats().GetCounter(reactloop.KeyToolTimeouts))
		})
	}
}

func TestAgent_Next_FatalErrors(t *testing.T) {
	t.Run("model error", func(t *testing.T) {
		authErr := errors.New("401 unauthorized")
		model := tt.NewMockModel().AddError(authErr)
		registry := toolchain.NewRegistry().MustRegister(textLengthTool())

		execCtx := newExecCtx(t, "question", nil)
		result, err := NewAgent(model, registry).Next(execCtx)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, authErr)
		assert.Equal(t, 1, model.CallCount())
		assert.Equal(t, 0, execCtx.State().Len())
	})

	t.Run("cancelled context", func(t *testing.T) {
		model := tt.NewMockModel().AddResponse(finishThree)
		registry := toolchain.NewRegistry().MustRegister(textLengthTool())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		execCtx := reactloop.NewExecutionContext(ctx, "test", "question")

		result, err := NewAgent(model, registry).Next(execCtx)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, model.CallCount())
	})

	t.Run("cancelled during tool call", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		tool := tt.NewMockTool("wait", "Waits", "").
			WithFunc(func(ctx context.Context, _ string) (string, error) {
				cancel()
				<-ctx.Done()
				return "", ctx.Err()
			})
		model := tt.NewMockModel().AddResponse("Action: wait\nAction Input: x\n")
		registry := toolchain.NewRegistry().MustRegister(tool)

		execCtx := reactloop.NewExecutionContext(ctx, "test", "question")
		result, err := NewAgent(model, registry).Next(execCtx)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, execCtx.State().Len())
	})
}

func TestAgent_Next_SchemaValidation(t *testing.T) {
	var received string
	tool := reactloop.NewToolFunc("lookup", "Looks up a user",
		func(_ context.Context, input string) (string, error) {
			received = input
			return "found", nil
		}).
		WithSchema(schema.Object(map[string]*schema.Property{
			"id": schema.Integer("User ID").Min(1),
		}, "id"))
	registry := toolchain.NewRegistry().MustRegister(tool)

	model := tt.NewMockModel().
		AddResponse("Action: lookup\nAction Input: {\"name\": \"bob\"}\n").
		AddResponse("Action: lookup\nAction Input: {\"id\": 7}\n")
	agent := NewAgent(model, registry)

	execCtx := newExecCtx(t, "question", nil)
	result, err := agent.Next(execCtx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Entry.Observation, `Error: invalid input for tool "lookup"`),
		"unexpected observation: %s", result.Entry.Observation)
	assert.Empty(t, received)

	result, err = agent.Next(execCtx)
	require.NoError(t, err)
	assert.Equal(t, "found", result.Entry.Observation)
	assert.Equal(t, `{"id": 7}`, received)
}

func TestAgent_Next_HookRewritesToolInput(t *testing.T) {
	tool := textLengthTool()
	registry := toolchain.NewRegistry().MustRegister(tool)
	model := tt.NewMockModel().AddResponse(countDogAction)

	recorder := tt.NewRecordingHook()
	recorder.RewriteToolInput = func(_, input string) string {
		return strings.ToUpper(input) + "GY"
	}

	execCtx := newExecCtx(t, "question", recorder)
	result, err := NewAgent(model, registry).Next(execCtx)
	require.NoError(t, err)

	assert.Equal(t, []string{"DOGGY"}, tool.Inputs)
	assert.Equal(t, "5", result.Entry.Observation)
	require.Len(t, recorder.ToolCalls, 1)
	assert.Equal(t, "DOGGY", recorder.ToolCalls[0].Input)
}

func TestAgent_Next_EventOrder(t *testing.T) {
	registry := toolchain.NewRegistry().MustRegister(textLengthTool())
	model := tt.NewMockModel().AddResponse(countDogAction)
	recorder := tt.NewRecordingHook()

	execCtx := newExecCtx(t, "question", recorder)
	_, err := NewAgent(model, registry).WithModelName("mock").Next(execCtx)
	require.NoError(t, err)

	assert.Equal(t, []string{
		reactloop.EventNameModelCallBefore,
		reactloop.EventNameModelCallAfter,
		reactloop.EventNameToolCallBefore,
		reactloop.EventNameToolCallAfter,
	}, recorder.EventNames())

	require.Len(t, recorder.ModelCalls, 1)
	assert.Equal(t, "mock", recorder.ModelCalls[0].Model)
	assert.Equal(t, countDogAction, recorder.ModelCalls[0].Response)
	assert.Equal(t, 1, recorder.ModelCalls[0].Attempt)
}

// wrappingParser reports every non-final output with a plain wrapped ErrParse.
type wrappingParser struct {
	*format.ReAct
}

func (p wrappingParser) Parse(text string) (reactloop.ParsedStep, error) {
	if strings.Contains(text, format.MarkerFinalAnswer) {
		return p.ReAct.Parse(text)
	}
	return nil, fmt.Errorf("%w: bad", reactloop.ErrParse)
}

// wrappingRegistry reports unknown tools with a plain wrapped ErrUnknownTool.
type wrappingRegistry struct {
	*toolchain.Registry
}

func (r wrappingRegistry) Lookup(name string) (reactloop.Tool, error) {
	if _, err := r.Registry.Lookup(name); err != nil {
		return nil, fmt.Errorf("lookup %q: %w", name, reactloop.ErrUnknownTool)
	}
	return r.Registry.Lookup(name)
}

func TestAgent_Next_WrappedSentinelErrorsAreRecoverable(t *testing.T) {
	t.Run("parse error", func(t *testing.T) {
		model := tt.NewMockModel().AddResponse("gibberish")
		registry := toolchain.NewRegistry().MustRegister(textLengthTool())

		execCtx := newExecCtx(t, "question", nil)
		result, err := NewAgent(model, registry).
			WithParser(wrappingParser{format.NewReAct()}).
			Next(execCtx)
		require.NoError(t, err)

		assert.Equal(t, reactloop.LAContinue, result.Action)
		require.NotNil(t, result.Entry)
		assert.Equal(t, reactloop.ExceptionToolName, result.Entry.Step.ToolName)
		assert.Equal(t, "gibberish", result.Entry.Step.ToolInput)
		assert.Equal(t, "gibberish", result.Entry.Step.RawLog)
		assert.Equal(t,
			"Invalid Format: could not parse model output: bad. Invalid format, try again.",
			result.Entry.Observation)
		assert.Equal(t, 1, execCtx.State().Len())
		assert.Equal(t, int64(1), execCtx.Stats().GetParseErrorCount())
	})

	t.Run("unknown tool", func(t *testing.T) {
		model := tt.NewMockModel().AddResponse("Action: nope\nAction Input: x\n")
		registry := wrappingRegistry{toolchain.NewRegistry().MustRegister(
			textLengthTool(),
			tt.NewMockTool("echo", "Echoes input", "echo"),
		)}

		execCtx := newExecCtx(t, "question", nil)
		result, err := NewAgent(model, registry).Next(execCtx)
		require.NoError(t, err)

		assert.Equal(t, reactloop.LAContinue, result.Action)
		require.NotNil(t, result.Entry)
		assert.Equal(t, "nope", result.Entry.Step.ToolName)
		assert.Equal(t, "nope is not a valid tool, try one of [get_text_length, echo].",
			result.Entry.Observation)
		assert.Equal(t, 1, execCtx.State().Len())
		assert.Equal(t, int64(1), execCtx.Stats().GetCounter(reactloop.KeyUnknownTools))
	})
}

func TestAgent_Next_Panics(t *testing.T) {
	type input struct {
		toolTimeout time.Duration
	}

	tests := []struct {
		name  string
		input input
	}{
		{name: "tool with timeout", input: input{toolTimeout: time.Second}},
		{name: "tool without timeout", input: input{toolTimeout: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tool := tt.NewMockTool("broken", "Always panics", "").
				WithFunc(func(context.Context, string) (string, error) {
					panic("disk on fire")
				})
			model := tt.NewMockModel().AddResponse("Action: broken\nAction Input: x\n")
			registry := toolchain.NewRegistry().MustRegister(tool)
			recorder := tt.NewRecordingHook()

			execCtx := newExecCtx(t, "question", recorder)
			result, err := NewAgent(model, registry).
				WithToolTimeout(tc.input.toolTimeout).
				Next(execCtx)
			require.NoError(t, err)

			require.NotNil(t, result.Entry)
			assert.Equal(t, "Error: panic: disk on fire", result.Entry.Observation)
			assert.Equal(t, 1, tool.CallCount())
			require.Len(t, recorder.Errors, 1)
			assert.True(t, recorder.Errors[0].Recoverable)
		})
	}

	t.Run("model", func(t *testing.T) {
		model := reactloop.ModelFunc(func(context.Context, string, []string) (string, error) {
			panic("provider bug")
		})
		registry := toolchain.NewRegistry().MustRegister(textLengthTool())

		result, err := NewAgent(model, registry).Next(newExecCtx(t, "question", nil))
		assert.Nil(t, result)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "panic: provider bug")
	})
}
