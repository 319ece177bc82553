// Package log provides centralized logging for gitpick using charmbracelet/log.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Logger is the global logger instance.
var Logger *log.Logger

// logFile is the file opened by ToFile, if any.
var logFile *os.File

func init() {
	Logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: true,
		Level:           log.WarnLevel,
		Prefix:          "gitpick",
	})
}

// SetLevel sets the logging level.
func SetLevel(level log.Level) {
	Logger.SetLevel(level)
}

// SetOutput redirects log output to w.
func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

// ToFile redirects log output to the file at path, appending to it.
// The picker owns the terminal while it runs, so anything written to
// stderr would tear the frame.
func ToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if logFile != nil {
		CloseError("log file", logFile.Close())
	}
	logFile = f
	Logger.SetOutput(f)
	return nil
}

// Close closes the log file opened by ToFile and restores stderr output.
func Close() {
	if logFile == nil {
		return
	}
	Logger.SetOutput(os.Stderr)
	if err := logFile.Close(); err != nil {
		Logger.Warn("failed to close log file", "error", err)
	}
	logFile = nil
}

// Debug logs a debug message.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// CloseError logs an error from a close operation if the error is not nil.
// This is useful for handling deferred close errors.
func CloseError(resource string, err error) {
	if err != nil {
		Logger.Warn("failed to close resource", "resource", resource, "error", err)
	}
}
