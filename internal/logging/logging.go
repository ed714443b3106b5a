// Package logging owns the process logger. Libraries log through L so
// embedding applications stay silent unless they opt in with Set.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// Set installs the logger returned by L. Call it once during startup,
// before any registration or resolution happens.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// L returns the installed logger. The default is a nop.
func L() *zap.Logger {
	return logger
}

// Verbose builds a production-encoded logger opened up to debug level,
// for the CLI's --verbose flag.
func Verbose() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	return cfg.Build()
}
