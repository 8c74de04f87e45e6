// Package rayxlog is the process-wide structured logging facade: a single
// package-level *zap.SugaredLogger, configured once at startup, pulled by
// library code rather than threaded through every call. Ported from
// pdfcpu-pdfcpu's zap usage (internal/spaserver, internal/zap4echo), which
// likewise builds one *zap.Logger and hands it to whatever needs to log.
package rayxlog

import "go.uber.org/zap"

var logger = newDefault()

func newDefault() *zap.SugaredLogger {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	return l.Sugar()
}

// Development switches the package logger to zap's human-readable
// development encoder (console output, debug level enabled), matching
// zap.NewDevelopment() used by pdfcpu-pdfcpu's spaserver setup.
func Development() {
	l, err := zap.NewDevelopment()
	if err != nil {
		return
	}
	logger = l.Sugar()
}

// SetLevel replaces the package logger with one built at the given level,
// preserving the production JSON encoder.
func SetLevel(level zap.AtomicLevel) {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	l, err := cfg.Build()
	if err != nil {
		return
	}
	logger = l.Sugar()
}

func Debugf(template string, args ...interface{}) { logger.Debugf(template, args...) }
func Infof(template string, args ...interface{})  { logger.Infof(template, args...) }
func Warnf(template string, args ...interface{})  { logger.Warnf(template, args...) }
func Errorf(template string, args ...interface{}) { logger.Errorf(template, args...) }

// Sync flushes any buffered log entries; callers should defer it from main.
func Sync() error { return logger.Sync() }
