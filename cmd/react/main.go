// Command react answers questions with a ReAct agent backed by an OpenAI model.
//
// Usage:
//
//	react -q "What is the length of the word 'Dog' in characters?"
//	react            # interactive mode, one independent question per line
//
// Configuration is read from .env and the environment: OPENAI_API_KEY, REACT_MODEL,
// REACT_BASE_URL, REACT_MAX_ITERATIONS, REACT_MAX_RETRIES, REACT_MODEL_TIMEOUT,
// REACT_TOOL_TIMEOUT and REACT_LOG_LEVEL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/reactloop/reactloop/executor"
	"github.com/reactloop/reactloop/internal/config"
	"github.com/reactloop/reactloop/log"
	"github.com/reactloop/reactloop/models"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorDim    = "\033[2m"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr,
			"%sError: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}

func run() error {
	question := flag.String("q", "", "question to answer; omit for interactive mode")
	envFile := flag.String("env", ".env", "path of the .env file")
	verbose := flag.Bool("v", false, "log prompts and responses (same as REACT_LOG_LEVEL=debug)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if *verbose {
		level = log.LogLevelDebug
	}
	logger := log.NewDefaultLogger(level)

	opts := []openai.Option{
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithModel(cfg.Model),
		openai.WithCallback(models.NewCallbackHandler(logger)),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return fmt.Errorf("create OpenAI client: %w", err)
	}

	model := models.NewLCGWrapper(llm).
		WithModelName(cfg.Model).
		WithCallOptions(llms.WithTemperature(0)).
		WithUsageHandler(func(u models.Usage) {
			logger.Debug("token usage: %s", u)
		})

	exec, err := newExecutor(cfg, model, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *question != "" {
		return ask(ctx, os.Stdout, exec, *question)
	}
	return repl(exec)
}

// repl reads questions until EOF or "q". Each question is an independent run.
func repl(exec *executor.Executor) error {
	rl, err := readline.New(colorCyan + "Question (or 'q' to quit): " + colorReset)
	if err != nil {
		return fmt.Errorf(
			"failed to create readline: %w", err)
	}
	defer rl.Close()

	for {
		input, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				fmt.Printf("\n%sGoodbye!%s\n", colorGreen, colorReset)
				return nil
			}
			return fmt.Errorf(
				"failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "q" || input == "Q" {
			fmt.Printf("%sGoodbye!%s\n", colorGreen, colorReset)
			return nil
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		fmt.Print(colorGreen)
		err = ask(ctx, os.Stdout, exec, input)
		fmt.Print(colorReset)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr,
				"%sError: %v%s\n", colorYellow, err, colorReset)
		}

		fmt.Printf("%s%s%s\n",
			colorDim, strings.Repeat("-", 60), colorReset)
	}
}
