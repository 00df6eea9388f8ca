package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/roterski/basisgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating if the program should exit cleanly, or
// an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("basisgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
basisgo - profile-aware alias resolution and build tooling for monorepos.

Usage:
  basisgo [options] TASK

Tasks:
  basis     Resolve and print a summary of the merged basis.
  paths     Print the merged source path set of the closure.
  deps      Print the merged dependency coordinates of the closure.
  ns        Discover namespaces below the closure's source paths.
  jar       Build a plain jar for the first requested alias.
  uberjar   Build a self-contained jar for the first requested alias.
  help      Show the task list and per-alias documentation.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", ".", "Path to the configuration file or directory.")
	cFlag := flagSet.String("c", "", "Path to the configuration file or directory (shorthand).")
	aliasesFlag := flagSet.String("aliases", "", "Comma-separated list of aliases to resolve.")
	profilesFlag := flagSet.String("profiles", "", "Comma-separated list of profiles to activate, later entries winning.")
	prependProfilesFlag := flagSet.String("prepend-profiles", "", "Comma-separated list of profiles to activate at the lowest precedence.")
	rootFlag := flagSet.String("root", "", "Project root carried onto the basis.")
	libDirFlag := flagSet.String("lib-dir", "", "Directory holding dependency jars merged into an uberjar.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	task := flagSet.Arg(0)

	configPath := *configFlag
	if *cFlag != "" {
		configPath = *cFlag
	}

	// Value validation, including the log fields, lives in app.NewConfig.
	config, err := app.NewConfig(app.Config{
		ConfigPath:      configPath,
		Task:            task,
		Aliases:         splitList(*aliasesFlag),
		Profiles:        splitList(*profilesFlag),
		PrependProfiles: splitList(*prependProfilesFlag),
		Root:            *rootFlag,
		LibDir:          *libDirFlag,
		LogFormat:       strings.ToLower(*logFormatFlag),
		LogLevel:        strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}

// splitList turns a comma-separated flag value into a slice, dropping
// empty segments.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
