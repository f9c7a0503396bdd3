package logger

import corelogger "github.com/wardplan/wardplan/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// NopLogger implements Logger with no-op methods.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

var defaults Options

// Configure sets the options applied by New. Call it once at startup, before
// components build their loggers.
func Configure(opts Options) { defaults = opts }

// New returns a Logger for the given component using the configured options.
func New(component string) Logger {
	return NewZerologLogger(component, defaults)
}
