// Package logging assembles structured slog loggers and formatting helpers used
// across btl.
//
// It owns the console and JSON handlers, centralizes level parsing, and
// exposes context helpers so every line of a single invocation carries the
// same run_id. The package also provides a no-op logger for tests and wiring
// code that cannot fail.
//
// Loggers write to stderr by default. Stdout is reserved for relayed aria2c
// output and move summaries.
package logging
