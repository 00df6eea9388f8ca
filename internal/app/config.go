package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPath is the alias configuration file or directory.
	ConfigPath string
	// Task is the operation to perform.
	Task string
	// Aliases is the requested seed set, in order. The first entry doubles
	// as the build target for the jar and uberjar tasks.
	Aliases []string
	// Profiles activates profiles back to front: later entries win.
	Profiles []string
	// PrependProfiles activates profiles at the lowest precedence.
	PrependProfiles []string
	// Root is an optional project root carried onto the basis.
	Root string
	// LibDir holds pre-fetched dependency jars for the uberjar task.
	LibDir string

	LogFormat string
	LogLevel  string
}

// tasks enumerates the valid Task values. The bool marks tasks that need
// at least one requested alias.
var tasks = map[string]bool{
	"basis":   true,
	"paths":   true,
	"deps":    true,
	"ns":      true,
	"jar":     true,
	"uberjar": true,
	"help":    false,
}

// NewConfig validates the given configuration and returns it, filling in
// the logging defaults. It is the single validation point: cli.Parse and
// the test harness both construct configs through it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	needsAliases, ok := tasks[cfg.Task]
	if !ok {
		return nil, fmt.Errorf("unknown task %q", cfg.Task)
	}
	if needsAliases && len(cfg.Aliases) == 0 {
		return nil, fmt.Errorf("task %q requires at least one alias (-aliases)", cfg.Task)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if _, ok := logLevels[cfg.LogLevel]; !ok {
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	return &cfg, nil
}
