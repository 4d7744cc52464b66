// Package logging provides structured logging built on log/slog.
//
// Every component receives a *Logger derived from the root logger, with
// component-specific default attributes added via With(). Output format,
// level, and destination come from the logging section of config.yaml.
package logging
