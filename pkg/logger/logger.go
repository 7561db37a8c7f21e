// Package logger provides the leveled logger shared by the mapper's
// packages.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
)

// Level represents the logging level.
type Level int

// Log levels.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

// String returns the string representation of the level.
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
		return ""
	}
}

// ParseLevel maps a level name to a Level; unknown names map to
// LevelInfo.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	case "none":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Logger provides leveled logging.
type Logger struct {
	mu     sync.Mutex
	level  Level
	output io.Writer
	prefix string
}

var defaultLogger = &Logger{
	level:  LevelInfo,
	output: os.Stderr,
	prefix: "semmapper",
}

// Default returns the default logger.
func Default() *Logger {
	return defaultLogger
}

// New creates a new logger.
func New(output io.Writer, level Level) *Logger {
	return &Logger{
		level:  level,
		output: output,
		prefix: "semmapper",
	}
}

// SetLevel sets the logging level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetOutput sets the output writer.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

func (l *Logger) log(level Level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(l.output, "[%s] %s [%s] %s\n", timestamp, l.prefix, level.String(), msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}

// Dump writes a deep dump of v at debug level, for inspecting built
// requests and normalized results while troubleshooting a binding.
func (l *Logger) Dump(label string, v any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.level > LevelDebug {
		return
	}
	_, _ = fmt.Fprintf(l.output, "%s [DEBUG] %s:\n%s", l.prefix, label, spew.Sdump(v))
}
