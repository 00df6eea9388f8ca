package app

import (
	"io"
	"log/slog"
)

// logLevels maps the LogLevel values NewConfig accepts. NewConfig rejects
// anything else, so newLogger never sees an unknown level.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds the app's logger from its validated configuration. The
// logger is never installed globally, so resolutions running side by side
// in tests keep their log streams apart.
func newLogger(cfg *Config, outW io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevels[cfg.LogLevel]}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
