// Package logging assembles structured slog loggers and formatting helpers used
// across dialogedit.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so editor code can automatically
// tag log lines with the CLI session ID and the document being edited. The
// package also provides a no-op logger for tests and wiring code that cannot
// fail.
//
// Logs default to stderr so they never interleave with interactive prompts on
// stdout.
package logging
