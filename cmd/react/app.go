package main

import (
	"context"
	"fmt"
	"io"

	"github.com/reactloop/reactloop"
	"github.com/reactloop/reactloop/agents/react"
	"github.com/reactloop/reactloop/executor"
	"github.com/reactloop/reactloop/internal/config"
	"github.com/reactloop/reactloop/log"
	"github.com/reactloop/reactloop/loggers"
	"github.com/reactloop/reactloop/toolchain"
	"github.com/reactloop/reactloop/tools"
	lcgtools "github.com/tmc/langchaingo/tools"
)

// newRegistry registers the tools available to the CLI agent.
func newRegistry() (*toolchain.Registry, error) {
	registry := toolchain.NewRegistry()
	for _, tool := range []reactloop.Tool{
		tools.NewTextLength(),
		lcgtools.Calculator{},
	} {
		if err := registry.Register(tool); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// newExecutor wires the agent, registry and logging hook for one process.
func newExecutor(
	cfg config.Config,
	model reactloop.Model,
	logger log.Logger,
) (*executor.Executor, error) {
	registry, err := newRegistry()
	if err != nil {
		return nil, fmt.Errorf("register tools: %w", err)
	}

	agent := react.NewAgent(model, registry).
		WithModelName(cfg.Model).
		WithModelTimeout(cfg.ModelTimeout).
		WithToolTimeout(cfg.ToolTimeout).
		WithMaxRetries(cfg.MaxRetries)

	return executor.New(agent, executor.Config{MaxIterations: cfg.MaxIterations}).
		RegisterHook(loggers.NewLoggerHook(logger)), nil
}

// ask runs one question and writes the answer to w.
func ask(ctx context.Context, w io.Writer, exec *executor.Executor, question string) error {
	result, err := exec.Execute(ctx, question)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, result.Answer)
	return err
}
