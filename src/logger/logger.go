// Copyright (c) 2026 OpsForge Labs All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"io"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the interface for logging operations.
// It provides methods for formatted, user-facing output.
//
// Two implementations exist: a plain CLI logger for terminal output and a
// zap-backed structured logger for log files written by unattended runs.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled.
// This is suitable for user-facing CLI output.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// StructuredLogger implements Logger on top of [zap], emitting JSON lines
// with timestamps. It is used for the optional log file of unattended
// (cron-driven) runs, where the output is read by humans after the fact and
// by log shippers. Certificate PEM bodies, private keys, and session tokens
// must never be passed to it.
//
// StructuredLogger is safe for concurrent use by multiple goroutines.
type StructuredLogger struct {
	mu    sync.Mutex
	sugar *zap.SugaredLogger
}

// NewStructuredLogger creates a structured logger writing JSON entries to w.
func NewStructuredLogger(w io.Writer) *StructuredLogger {
	return &StructuredLogger{sugar: newSugar(w)}
}

// NewFileLogger creates a structured logger appending to the file at path,
// plus a close function flushing buffered entries.
func NewFileLogger(path string) (*StructuredLogger, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	l := NewStructuredLogger(f)
	closer := func() error {
		l.mu.Lock()
		defer l.mu.Unlock()
		_ = l.sugar.Sync()
		return f.Close()
	}
	return l, closer, nil
}

// Printf formats and logs a structured message at info level.
func (s *StructuredLogger) Printf(format string, v ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sugar.Infof(format, v...)
}

// Println logs a structured message at info level.
func (s *StructuredLogger) Println(v ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sugar.Info(v...)
}

// SetOutput replaces the output destination, rebuilding the underlying core.
func (s *StructuredLogger) SetOutput(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w == nil {
		w = io.Discard
	}
	s.sugar = newSugar(w)
}

func newSugar(w io.Writer) *zap.SugaredLogger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(w),
		zapcore.InfoLevel,
	)
	return zap.New(core).Sugar()
}

// tee fans a log call out to multiple loggers.
type tee struct{ loggers []Logger }

// Tee returns a Logger that forwards every call to each of the given
// loggers, typically the CLI logger plus a file logger.
func Tee(loggers ...Logger) Logger { return &tee{loggers: loggers} }

// Printf forwards to every underlying logger.
func (t *tee) Printf(format string, v ...any) {
	for _, l := range t.loggers {
		l.Printf(format, v...)
	}
}

// Println forwards to every underlying logger.
func (t *tee) Println(v ...any) {
	for _, l := range t.loggers {
		l.Println(v...)
	}
}

// SetOutput forwards to every underlying logger.
func (t *tee) SetOutput(w io.Writer) {
	for _, l := range t.loggers {
		l.SetOutput(w)
	}
}
