// Package logger writes leveled, prefixed log lines to a file. The terminal
// belongs to the calculator UI, so nothing is ever written to stdout.
package logger

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents a logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	// LevelNone disables all logging
	LevelNone
)

// String returns string representation of log level
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
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name in any case. Unknown names yield LevelInfo
// and an error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "none", "off":
		return LevelNone, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// MarshalText stores the level as its lower-case name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(l.String())), nil
}

// UnmarshalText accepts the names ParseLevel accepts.
func (l *Level) UnmarshalText(text []byte) error {
	level, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// Logger writes "2006-01-02 15:04:05.000 [LEVEL] [prefix] message" lines.
// Loggers derived with WithPrefix share the level and the output of their
// parent.
type Logger struct {
	*sink
	prefix string
}

type sink struct {
	mu       sync.RWMutex
	level    Level
	logger   *log.Logger
	closer   io.Closer
	disabled bool
}

var (
	globalMu     sync.Mutex
	globalLogger *Logger
)

// Init opens the log file and installs the result as the global logger.
func Init(level Level, logPath string) (*Logger, error) {
	l, err := New(level, logPath, "")
	if err != nil {
		return nil, err
	}
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
	return l, nil
}

// New opens logPath for appending. Logging is disabled when level is
// LevelNone or logPath is empty.
func New(level Level, logPath string, prefix string) (*Logger, error) {
	if level == LevelNone || logPath == "" {
		return discard(prefix), nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := NewWriter(level, file, prefix)
	l.closer = file
	return l, nil
}

// NewWriter logs to w, which the logger does not close.
func NewWriter(level Level, w io.Writer, prefix string) *Logger {
	return &Logger{
		sink:   &sink{level: level, logger: log.New(w, "", 0)},
		prefix: prefix,
	}
}

func discard(prefix string) *Logger {
	return &Logger{
		sink:   &sink{level: LevelNone, logger: log.New(io.Discard, "", 0), disabled: true},
		prefix: prefix,
	}
}

// Global returns the logger installed by Init, or a disabled one.
func Global() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		globalLogger = discard("")
	}
	return globalLogger
}

// WithPrefix creates a new logger with an additional prefix
func (l *Logger) WithPrefix(prefix string) *Logger {
	newPrefix := prefix
	if l.prefix != "" {
		newPrefix = l.prefix + ":" + prefix
	}

	return &Logger{sink: l.sink, prefix: newPrefix}
}

// Slog wraps the logger for code that takes a *slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return slog.New(NewSlogHandler(l))
}

// SetLevel changes the level of l and of every logger sharing its output.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *Logger) enabled(level Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return !l.disabled && level >= l.level && level < LevelNone
}

func (l *Logger) log(level Level, format string, args ...any) {
	if !l.enabled(level) {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	msg := fmt.Sprintf(format, args...)

	prefix := l.prefix
	if prefix != "" {
		prefix = "[" + prefix + "] "
	}

	l.logger.Printf("%s [%s] %s%s", timestamp, level, prefix, msg)
}

func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, format, args...) }

// Close closes the log file opened by New. Derived loggers share the file
// and are silent afterwards.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	l.disabled = true
	return err
}

// Debug logs a debug message using the global logger
func Debug(format string, args ...any) { Global().Debug(format, args...) }

// Info logs an informational message using the global logger
func Info(format string, args ...any) { Global().Info(format, args...) }

// Warn logs a warning message using the global logger
func Warn(format string, args ...any) { Global().Warn(format, args...) }

// Error logs an error message using the global logger
func Error(format string, args ...any) { Global().Error(format, args...) }
