// Package logger provides the leveled console logger used for fngate's
// diagnostic output. The gate's violation report has its own fixed format
// and does not go through this logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Log level constants for filtering
const (
	levelDebug int = 0
	levelInfo  int = 1
	levelWarn  int = 2
	levelError int = 3
)

// ConsoleLogger writes "[HH:MM:SS] [LEVEL] message" lines to a writer with
// level filtering and thread safety. Color is applied only when the writer
// is a color-capable terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    int
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger writing to w. If w is nil,
// messages are silently discarded. logLevel accepts debug, info, warn or
// error (case-insensitive); anything else defaults to info.
func NewConsoleLogger(w io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		logLevel:    levelToInt(logLevel),
		colorOutput: isTerminal(w),
	}
}

// isTerminal reports whether w is os.Stdout or os.Stderr with color
// support. NO_COLOR is honored through the color library's global flag.
func isTerminal(w io.Writer) bool {
	if w == os.Stdout || w == os.Stderr {
		return !color.NoColor
	}
	return false
}

// levelToInt converts a level name to its numeric value, defaulting to
// info for unknown names.
func levelToInt(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Debugf logs a formatted debug-level message.
func (cl *ConsoleLogger) Debugf(format string, args ...interface{}) {
	cl.logf(levelDebug, "DEBUG", format, args...)
}

// Infof logs a formatted info-level message.
func (cl *ConsoleLogger) Infof(format string, args ...interface{}) {
	cl.logf(levelInfo, "INFO", format, args...)
}

// Warnf logs a formatted warn-level message.
func (cl *ConsoleLogger) Warnf(format string, args ...interface{}) {
	cl.logf(levelWarn, "WARN", format, args...)
}

// Errorf logs a formatted error-level message.
func (cl *ConsoleLogger) Errorf(format string, args ...interface{}) {
	cl.logf(levelError, "ERROR", format, args...)
}

// logf writes a message if the configured level allows it.
func (cl *ConsoleLogger) logf(level int, label, format string, args ...interface{}) {
	if cl.writer == nil || level < cl.logLevel {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := time.Now().Format("15:04:05")
	message := fmt.Sprintf(format, args...)

	if cl.colorOutput {
		label = colorizeLabel(label)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", ts, label, message)
}

// colorizeLabel wraps a level label in its ANSI color.
func colorizeLabel(label string) string {
	switch label {
	case "DEBUG":
		return color.New(color.FgCyan).Sprint(label)
	case "INFO":
		return color.New(color.FgBlue).Sprint(label)
	case "WARN":
		return color.New(color.FgYellow).Sprint(label)
	case "ERROR":
		return color.New(color.FgRed).Sprint(label)
	default:
		return label
	}
}
