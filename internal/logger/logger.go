package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// Logger wraps slog with a scope/function chain so call sites can do
// logger.New("AppController").Function("Submit").Err(...).
type Logger struct {
	slog     *slog.Logger
	scope    string
	function string
	file     string
}

func New(scope string) Logger {
	return Logger{
		slog:  slog.Default(),
		scope: scope,
	}
}

func (l Logger) Function(name string) Logger {
	l.function = name
	return l
}

func (l Logger) File(name string) Logger {
	l.file = name
	return l
}

func (l Logger) attrs(args []any) []any {
	out := make([]any, 0, len(args)+6)
	out = append(out, "scope", l.scope)
	if l.function != "" {
		out = append(out, "function", l.function)
	}
	if l.file != "" {
		out = append(out, "file", l.file)
	}
	return append(out, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, l.attrs(args)...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, l.attrs(args)...)
}

func (l Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, l.attrs(args)...)
}

// Err logs the error with context and returns it wrapped so callers can
// `return log.Err("failed to x", err)`.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.slog.Error(msg, l.attrs(append(args, "error", err))...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Er logs an error without returning one, for paths that continue.
func (l Logger) Er(msg string, err error, args ...any) {
	l.slog.Error(msg, l.attrs(append(args, "error", err))...)
}

// Error logs a message with no underlying error and returns a new one.
func (l Logger) Error(msg string, args ...any) error {
	l.slog.Error(msg, l.attrs(args)...)
	return errors.New(msg)
}

// ErrMsg is Error without structured args.
func (l Logger) ErrMsg(msg string) error {
	l.slog.Error(msg, l.attrs(nil)...)
	return errors.New(msg)
}

// ErMsg logs a plain error message without returning one.
func (l Logger) ErMsg(msg string) {
	l.slog.Error(msg, l.attrs(nil)...)
}

// Init installs the process-wide handler. Text output for dev, JSON
// otherwise.
func Init(level slog.Level, json bool) {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
