// Package log is the leveled key/value logger used by grsched. Diagnostics go
// to stderr so they never mix with command output on stdout.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var (
	mu       sync.Mutex
	levelVar = new(slog.LevelVar)
	logger   = newLogger(os.Stderr)
)

func init() {
	levelVar.Set(slog.LevelWarn)
}

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

// SetOutput redirects log lines, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w)
}

// SetLevel sets the minimum level written. The default is WARN.
func SetLevel(l Level) {
	levelVar.Set(toSlog(l))
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToUpper(strings.TrimSpace(s))); l {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return l, nil
	}
	return "", fmt.Errorf("unknown log level %q", s)
}

func Debug(msg string, kv ...any) {
	logWithLevel(LevelDebug, msg, kv...)
}

func Info(msg string, kv ...any) {
	logWithLevel(LevelInfo, msg, kv...)
}

func Warn(msg string, kv ...any) {
	logWithLevel(LevelWarn, msg, kv...)
}

func Error(msg string, err error, kv ...any) {
	extended := append([]any{"err", err}, kv...)
	logWithLevel(LevelError, msg, extended...)
}

func logWithLevel(level Level, msg string, kv ...any) {
	mu.Lock()
	l := logger
	mu.Unlock()
	l.Log(context.Background(), toSlog(level), msg, kv...)
}

func toSlog(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// HTTPLogger adapts the package logger to the resty.Logger interface.
type HTTPLogger struct{}

func (HTTPLogger) Errorf(format string, v ...any) {
	logWithLevel(LevelError, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "http")
}

func (HTTPLogger) Warnf(format string, v ...any) {
	logWithLevel(LevelWarn, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "http")
}

func (HTTPLogger) Debugf(format string, v ...any) {
	logWithLevel(LevelDebug, strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "http")
}
