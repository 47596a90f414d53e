// Package logging builds the slog loggers used across shoplens.
//
// It centralizes level parsing, output fan-out (stdout plus an optional log
// file under the configured log directory), and the console/JSON handler
// choice so every command logs in a consistent shape. Structured field names
// shared between packages live here as constants.
package logging
