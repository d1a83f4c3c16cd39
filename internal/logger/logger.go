// Package logger maps the converter's three log levels onto a
// structured logger.
package logger

import (
	"fmt"
	"io"

	charmlog "github.com/charmbracelet/log"
)

// Level is the operator-facing verbosity of a conversion run.
type Level string

const (
	// Silent suppresses all output; failures still surface through the
	// process exit code.
	Silent Level = "silent"
	// Standard reports stage transitions and errors.
	Standard Level = "standard"
	// Verbose adds per-stage details such as the sanitized
	// configuration and process statistics.
	Verbose Level = "verbose"
)

// ParseLevel validates an operator-supplied level string.
func ParseLevel(s string) (Level, error) {
	switch Level(s) {
	case Silent, Standard, Verbose:
		return Level(s), nil
	default:
		return "", fmt.Errorf("invalid log level %q", s)
	}
}

// Logger is the logging interface the converter is constructed with.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

func (l Level) toCharmLevel() charmlog.Level {
	switch l {
	case Silent:
		// Above ErrorLevel, so nothing is emitted.
		return charmlog.FatalLevel
	case Verbose:
		return charmlog.DebugLevel
	default:
		return charmlog.InfoLevel
	}
}

// charmLogger adapts the charm logger to the Logger interface.
type charmLogger struct {
	l *charmlog.Logger
}

func (c *charmLogger) Debug(msg string, keyvals ...any) { c.l.Debug(msg, keyvals...) }
func (c *charmLogger) Info(msg string, keyvals ...any)  { c.l.Info(msg, keyvals...) }
func (c *charmLogger) Warn(msg string, keyvals ...any)  { c.l.Warn(msg, keyvals...) }
func (c *charmLogger) Error(msg string, keyvals ...any) { c.l.Error(msg, keyvals...) }

// New builds a logger writing human-readable output to w.
func New(level Level, w io.Writer) Logger {
	return &charmLogger{l: charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: false,
		Level:           level.toCharmLevel(),
	})}
}
