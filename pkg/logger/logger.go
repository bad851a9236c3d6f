package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var logger *log.Logger

// Options controls where and how verbosely the CLI logs.
type Options struct {
	// Level is a charmbracelet/log level name ("debug", "info", ...).
	Level string
	// Verbose forces debug level regardless of Level.
	Verbose bool
	// File is the log destination. Empty or unwritable falls back to stderr.
	File string
}

// Init initializes the logger
func Init(opts Options) {
	var w io.Writer = os.Stderr
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err == nil {
			w = f
		}
	}
	InitWithWriter(w, resolveLevel(opts))
}

// InitWithWriter installs a logger writing to w at the given level.
func InitWithWriter(w io.Writer, level log.Level) {
	logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "impactboard",
	})
	logger.SetLevel(level)
}

func resolveLevel(opts Options) log.Level {
	if opts.Verbose {
		return log.DebugLevel
	}
	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Debug logs a debug message
func Debug(msg string, args ...interface{}) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

// Info logs an info message
func Info(msg string, args ...interface{}) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

// Warn logs a warning message
func Warn(msg string, args ...interface{}) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error logs an error message
func Error(msg string, args ...interface{}) {
	if logger != nil {
		logger.Error(msg, args...)
	}
}

// Fatal logs a fatal message and exits
func Fatal(msg string, args ...interface{}) {
	if logger != nil {
		logger.Fatal(msg, args...)
	} else {
		os.Exit(1)
	}
}

// With returns a child logger carrying the given key/value pairs. It never
// returns nil, so components can hold one before Init runs.
func With(keyvals ...interface{}) *log.Logger {
	if logger == nil {
		l := log.New(io.Discard)
		return l.With(keyvals...)
	}
	return logger.With(keyvals...)
}

// GetLogger returns the logger instance
func GetLogger() *log.Logger {
	return logger
}
