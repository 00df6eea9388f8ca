package app

import (
	"io"
	"log/slog"

	"github.com/roterski/basisgo/internal/config"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
}

// NewApp is the constructor for the main application. Task output goes to
// outW; log output goes to errW so the two can be separated by the caller.
// Configuration is loaded inside Run, not here: every invocation re-reads
// the on-disk configuration so the basis always reflects its current
// state.
func NewApp(outW, errW io.Writer, appConfig *Config, loader config.Loader) *App {
	return &App{
		outW:   outW,
		logger: newLogger(appConfig, errW),
		config: appConfig,
		loader: loader,
	}
}
