// Package logging provides the structured logger used across the editor,
// kernel and assembly packages. It follows the same shape as the
// zap-backed loggers used elsewhere in the robotics stack this module grew
// out of: a small sugared interface with Named/With child loggers, rather
// than threading *zap.Logger through every signature directly.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the sugared logging interface passed around the application.
// It intentionally mirrors zap.SugaredLogger's most-used methods so call
// sites read like plain fmt.Sprintf-style logging.
type Logger interface {
	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})

	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})

	// Named returns a child logger annotated with an additional name
	// segment (e.g. "editor.dispatch").
	Named(name string) Logger
	// With returns a child logger carrying the given structured fields
	// on every subsequent log line.
	With(keysAndValues ...interface{}) Logger
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// New builds a production-profile Logger writing level+caller-annotated
// JSON to stderr. Use NewTestLogger in tests.
func New(name string) Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	built, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// Build only fails on a malformed config; fall back to a
		// no-op logger (logs are discarded) rather than panicking at
		// startup over a logging misconfiguration.
		built = zap.NewNop()
	}
	return &zapLogger{sugar: built.Named(name).Sugar()}
}

// NewTestLogger builds a Logger suitable for unit tests: human-readable,
// debug level, no sampling.
func NewTestLogger() Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	built, err := cfg.Build()
	if err != nil {
		built = zap.NewNop()
	}
	return &zapLogger{sugar: built.Sugar()}
}

func (l *zapLogger) Debugf(template string, args ...interface{}) { l.sugar.Debugf(template, args...) }
func (l *zapLogger) Infof(template string, args ...interface{})  { l.sugar.Infof(template, args...) }
func (l *zapLogger) Warnf(template string, args ...interface{})  { l.sugar.Warnf(template, args...) }
func (l *zapLogger) Errorf(template string, args ...interface{}) { l.sugar.Errorf(template, args...) }

func (l *zapLogger) Debugw(msg string, kv ...interface{}) { l.sugar.Debugw(msg, kv...) }
func (l *zapLogger) Infow(msg string, kv ...interface{})  { l.sugar.Infow(msg, kv...) }
func (l *zapLogger) Warnw(msg string, kv ...interface{})  { l.sugar.Warnw(msg, kv...) }
func (l *zapLogger) Errorw(msg string, kv ...interface{}) { l.sugar.Errorw(msg, kv...) }

func (l *zapLogger) Named(name string) Logger {
	return &zapLogger{sugar: l.sugar.Named(name)}
}

func (l *zapLogger) With(kv ...interface{}) Logger {
	return &zapLogger{sugar: l.sugar.With(kv...)}
}
