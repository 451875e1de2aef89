// Package logger provides structured logging for the application.
//
// It uses Go's standard library log/slog package to emit structured JSON
// logs with configurable levels, and carries request-scoped loggers
// through the context.
package logger
