// Package logging provides structured logging for claude-config runs.
// It wraps Go's log/slog package to produce JSON-formatted logs with
// context propagation (agent name, pipeline phase) for post-hoc analysis
// of generation and validation runs.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Log levels supported by the logger.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// logFileName is the file created inside the configured log directory.
const logFileName = "claude-config.log"

// Logger provides structured logging with context propagation.
// It is safe for concurrent use.
type Logger struct {
	logger *slog.Logger
	writer *RotatingWriter
	attrs  []slog.Attr
}

// NewLogger creates a Logger that writes JSON-formatted logs to
// {logDir}/claude-config.log, rotating per cfg. If logDir is empty, logs go
// to stderr and cfg is ignored.
//
// The level parameter controls which messages are logged: DEBUG logs
// everything, ERROR only errors, with INFO and WARN in between. Unknown
// levels fall back to INFO.
func NewLogger(logDir, level string, cfg RotationConfig) (*Logger, error) {
	var writer io.Writer = os.Stderr
	var rw *RotatingWriter

	if logDir != "" {
		var err error
		rw, err = NewRotatingWriter(filepath.Join(logDir, logFileName), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writer = rw
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: parseLevel(level),
	})

	return &Logger{
		logger: slog.New(handler),
		writer: rw,
	}, nil
}

// parseLevel converts a string log level to slog.Level, defaulting to INFO.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithAgent returns a child Logger with the agent name added to all
// entries.
func (l *Logger) WithAgent(agent string) *Logger {
	return l.withAttr(slog.String("agent", agent))
}

// WithPhase returns a child Logger with the pipeline phase added to all
// entries. Phases include "load", "validate", "optimize", and "compose".
func (l *Logger) WithPhase(phase string) *Logger {
	return l.withAttr(slog.String("phase", phase))
}

// With returns a child Logger with arbitrary alternating key-value
// attributes.
func (l *Logger) With(args ...any) *Logger {
	if len(args) == 0 {
		return l
	}
	newAttrs := make([]slog.Attr, len(l.attrs), len(l.attrs)+len(args)/2)
	copy(newAttrs, l.attrs)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		newAttrs = append(newAttrs, slog.Any(key, args[i+1]))
	}
	return &Logger{logger: l.logger, writer: l.writer, attrs: newAttrs}
}

func (l *Logger) withAttr(attr slog.Attr) *Logger {
	newAttrs := make([]slog.Attr, len(l.attrs)+1)
	copy(newAttrs, l.attrs)
	newAttrs[len(l.attrs)] = attr
	return &Logger{logger: l.logger, writer: l.writer, attrs: newAttrs}
}

// Debug logs at DEBUG level with optional alternating key-value pairs.
func (l *Logger) Debug(msg string, args ...any) { l.log(slog.LevelDebug, msg, args...) }

// Info logs at INFO level with optional alternating key-value pairs.
func (l *Logger) Info(msg string, args ...any) { l.log(slog.LevelInfo, msg, args...) }

// Warn logs at WARN level with optional alternating key-value pairs.
func (l *Logger) Warn(msg string, args ...any) { l.log(slog.LevelWarn, msg, args...) }

// Error logs at ERROR level with optional alternating key-value pairs.
func (l *Logger) Error(msg string, args ...any) { l.log(slog.LevelError, msg, args...) }

func (l *Logger) log(level slog.Level, msg string, args ...any) {
	allArgs := make([]any, 0, len(l.attrs)*2+len(args))
	for _, attr := range l.attrs {
		allArgs = append(allArgs, attr.Key, attr.Value.Any())
	}
	allArgs = append(allArgs, args...)
	l.logger.Log(context.Background(), level, msg, allArgs...)
}

// Close flushes and closes the underlying log file. A no-op for loggers
// writing to stderr.
func (l *Logger) Close() error {
	if l.writer != nil {
		return l.writer.Close()
	}
	return nil
}

// NopLogger returns a Logger that discards all output. Useful for tests
// and for components constructed without an explicit logger.
func NopLogger() *Logger {
	return &Logger{
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
}

// ParseLevel normalizes a level string to one of the supported constants,
// defaulting to INFO.
func ParseLevel(level string) string {
	switch strings.ToUpper(level) {
	case LevelDebug, LevelWarn, LevelError:
		return strings.ToUpper(level)
	default:
		return LevelInfo
	}
}

// ValidLevels returns the supported log level strings.
func ValidLevels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarn, LevelError}
}
