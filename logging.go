package tsgraph

import "go.uber.org/zap"

// Logger captures structured log output from the core, the same shape
// as the teacher's scheduler Logger: a fluent With for attaching
// structured fields, and level methods taking alternating key/value
// pairs. tsgraph itself only logs from a handful of call sites (harness
// node-evaluation errors and its per-tick logging observer); most
// packages that embed this library will pass their own zap-backed
// Logger through.
type Logger interface {
	With(key string, value any) Logger
	Info(msg string, kv ...any)
	Error(msg string, kv ...any)
}

// noopLogger is the default Logger until a real one is supplied,
// matching the teacher's scheduler default.
type noopLogger struct{}

func (noopLogger) With(string, any) Logger { return noopLogger{} }
func (noopLogger) Info(string, ...any)     {}
func (noopLogger) Error(string, ...any)    {}

// NewZapLogger adapts a *zap.SugaredLogger to the Logger interface, the
// real structured-logging backend for hosts that want one (the harness
// package, like Runtime, defaults to a no-op logger until one is
// supplied).
func NewZapLogger(z *zap.SugaredLogger) Logger {
	return zapLogger{sugar: z}
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (l zapLogger) With(key string, value any) Logger {
	return zapLogger{sugar: l.sugar.With(key, value)}
}

func (l zapLogger) Info(msg string, kv ...any)  { l.sugar.Infow(msg, kv...) }
func (l zapLogger) Error(msg string, kv ...any) { l.sugar.Errorw(msg, kv...) }
