package app

import (
	"errors"
	"fmt"
)

// Output formats for command results.
const (
	OutputText = "text"
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// NoFallback disables the calculation fallback.
const NoFallback = -1

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LogFormat string
	LogLevel  string
	Output    string

	// Strict turns count mismatches and unknown stitch codes into errors.
	Strict bool
	// CalcFallback is the count unknown calculations evaluate to, or
	// NoFallback to fail on them.
	CalcFallback int

	// WorkerCount bounds how many documents are validated at once.
	WorkerCount int
}

func NewConfig(cfg Config) (*Config, error) {
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	switch cfg.Output {
	case "":
		cfg.Output = OutputText
	case OutputText, OutputYAML, OutputJSON:
	default:
		return nil, fmt.Errorf("invalid output %q: must be 'text', 'yaml' or 'json'", cfg.Output)
	}
	if cfg.CalcFallback < NoFallback {
		return nil, errors.New("calc-fallback must be a count of at least 0, or -1 to disable it")
	}
	if cfg.WorkerCount < 1 {
		return nil, errors.New("workers must be at least 1")
	}
	return &cfg, nil
}
