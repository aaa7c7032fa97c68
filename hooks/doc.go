// Package hooks provides a registry for managing execution lifecycle hooks.
//
// Hooks observe events during a ReAct run. Each hook interface corresponds to a specific
// event type; implement only the interfaces you need.
//
// # Hook Interfaces
//
// Executor lifecycle hooks:
//   - [reactloop.BeforeExecutionHook] - Called once before first iteration
//   - [reactloop.AfterExecutionHook] - Called once after execution ends
//   - [reactloop.BeforeIterationHook] - Called before each iteration
//   - [reactloop.AfterIterationHook] - Called after each iteration
//   - [reactloop.ErrorHook] - Called for every error, recoverable or not
//
// Model call hooks:
//   - [reactloop.BeforeModelCallHook] - Called before each model call attempt
//   - [reactloop.AfterModelCallHook] - Called after each model call attempt
//
// Tool call hooks:
//   - [reactloop.BeforeToolCallHook] - Called before each tool call (can rewrite input)
//   - [reactloop.AfterToolCallHook] - Called after each tool call
//
// # Registering Hooks
//
//	exec := executor.New(agent, config).
//	    RegisterHook(loggers.NewLoggerHook(logger)).
//	    RegisterHook(&MetricsHook{})
//
// Or share one registry across executors:
//
//	registry := hooks.NewRegistry().Register(&SharedHook{})
//	exec1 := executor.New(agent1, config).WithHooks(registry)
//	exec2 := executor.New(agent2, config).WithHooks(registry)
//
// See the loggers package for a hook that implements every interface.
package hooks
