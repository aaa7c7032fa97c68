// Package config loads the host configuration from .env files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables.
const (
	EnvOpenAIAPIKey  = "OPENAI_API_KEY"
	EnvBaseURL       = "REACT_BASE_URL"
	EnvModel         = "REACT_MODEL"
	EnvMaxIterations = "REACT_MAX_ITERATIONS"
	EnvMaxRetries    = "REACT_MAX_RETRIES"
	EnvModelTimeout  = "REACT_MODEL_TIMEOUT"
	EnvToolTimeout   = "REACT_TOOL_TIMEOUT"
	EnvLogLevel      = "REACT_LOG_LEVEL"
)

// Config is the host configuration.
type Config struct {
	OpenAIAPIKey  string
	BaseURL       string
	Model         string
	MaxIterations int
	MaxRetries    int
	ModelTimeout  time.Duration
	ToolTimeout   time.Duration
	LogLevel      string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Model:         "gpt-4.1",
		MaxIterations: 15,
		MaxRetries:    1,
		ModelTimeout:  60 * time.Second,
		ToolTimeout:   30 * time.Second,
		LogLevel:      "info",
	}
}

// Load reads the given .env files (".env" when none are given) and then the process
// environment. A variable set in the environment wins over the files; later files win over
// earlier ones. Missing files are skipped.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	values := map[string]string{}
	for _, file := range files {
		fileValues, err := godotenv.Read(file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", file, err)
		}
		for k, v := range fileValues {
			values[k] = v
		}
	}

	lookup := func(key string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(values[key])
	}

	cfg := Default()
	cfg.OpenAIAPIKey = lookup(EnvOpenAIAPIKey)
	cfg.BaseURL = lookup(EnvBaseURL)
	if v := lookup(EnvModel); v != "" {
		cfg.Model = v
	}
	if v := lookup(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	var err error
	if cfg.MaxIterations, err = intVar(lookup, EnvMaxIterations, cfg.MaxIterations, 1); err != nil {
		return Config{}, err
	}
	if cfg.MaxRetries, err = intVar(lookup, EnvMaxRetries, cfg.MaxRetries, 0); err != nil {
		return Config{}, err
	}
	if cfg.ModelTimeout, err = durationVar(lookup, EnvModelTimeout, cfg.ModelTimeout); err != nil {
		return Config{}, err
	}
	if cfg.ToolTimeout, err = durationVar(lookup, EnvToolTimeout, cfg.ToolTimeout); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports settings the CLI cannot run without.
func (c Config) Validate() error {
	if c.OpenAIAPIKey == "" {
		return fmt.Errorf("%s is not set", EnvOpenAIAPIKey)
	}
	return nil
}

func intVar(lookup func(string) string, key string, def, min int) (int, error) {
	v := lookup(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n < min {
		return 0, fmt.Errorf("%s: must be >= %d, got %d", key, min, n)
	}
	return n, nil
}

// durationVar accepts Go durations ("90s") or a plain number of seconds ("90"). The
// duration must be positive.
func durationVar(lookup func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := lookup(key)
	if v == "" {
		return def, nil
	}
	var d time.Duration
	if secs, err := strconv.Atoi(v); err == nil {
		d = time.Duration(secs) * time.Second
	} else if d, err = time.ParseDuration(v); err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be > 0, got %v", key, d)
	}
	return d, nil
}
