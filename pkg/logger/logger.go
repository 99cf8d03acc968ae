// Package logger provides a level-based diagnostic logger writing to stderr
// and optionally to a log file.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Level represents the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

var levelLabels = map[Level]string{
	LevelDebug:   "DEBUG",
	LevelInfo:    "INFO",
	LevelWarning: "WARNING",
	LevelError:   "ERROR",
}

// ParseLevel converts a level name to a Level. Accepts DEBUG, INFO,
// WARNING/WARN, and ERROR in any case; anything else means LevelInfo.
func ParseLevel(name string) Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return LevelDebug
	case "WARNING", "WARN":
		return LevelWarning
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger writes timestamped, level-filtered messages.
type Logger struct {
	level Level
	out   io.Writer
}

// New creates a logger at the given level. If logFile is non-empty the file
// is opened for append and messages go to both stderr and the file; if the
// file cannot be opened, logging falls back to stderr with a warning.
func New(logFile string, level Level) *Logger {
	var out io.Writer = os.Stderr
	if strings.TrimSpace(logFile) != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", logFile, err)
		} else {
			out = io.MultiWriter(os.Stderr, f)
		}
	}
	return &Logger{level: level, out: out}
}

// NewWriter creates a logger that writes to w directly. Used in tests.
func NewWriter(w io.Writer, level Level) *Logger {
	return &Logger{level: level, out: w}
}

func (l *Logger) emit(level Level, format string, args ...interface{}) {
	if l == nil || level < l.level {
		return
	}
	fmt.Fprintf(l.out, "%s [%s] %s\n",
		time.Now().Format("2006-01-02 15:04:05"),
		levelLabels[level],
		fmt.Sprintf(format, args...))
}

// Debugf logs a debug message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.emit(LevelDebug, format, args...)
}

// Infof logs an informational message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.emit(LevelInfo, format, args...)
}

// Warnf logs a warning.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.emit(LevelWarning, format, args...)
}

// Errorf logs an error.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.emit(LevelError, format, args...)
}
