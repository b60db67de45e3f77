// Package log provides the structured logging surface used by the perceptron
// packages.
//
// Estimators depend only on the Logger interface. Two backends are provided:
// an adapter over log/slog (the default, configured by SetupLogger) and an
// adapter over zerolog. TestLogger captures JSON lines for assertions.
//
// Example usage:
//
//	logger := log.GetLogger().With(log.ModelNameKey, "Perceptron")
//	logger.Info("fit finished",
//	    log.OperationKey, log.OperationFit,
//	    log.SamplesKey, 1000,
//	    log.ConvergedKey, true,
//	)

package log

import (
	"context"
)

// Logger is a slog-style structured logger. fields are alternating key/value
// pairs; an error value under ErrAttrKey gets its stack trace extracted by the
// slog backend.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)

	// With returns a Logger that adds fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether records at level would be emitted. Callers use
	// it to skip building expensive per-iteration fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level is a logging level with slog-compatible values.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
