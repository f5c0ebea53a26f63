// Package logx wraps go.uber.org/zap into the small logging surface
// the search driver needs. It exists so the engine package never
// imports a logging library at all: spec.md §9 asks for the
// original's global mutable debug stream (cerr <<) to be either routed
// through an injected sink or dropped entirely, and here it is dropped
// from the hot matching path and kept only at the driver layer for
// per-file/per-line tracing.
package logx

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the injected sink passed from the CLI into the search
// driver. A nil *Logger is valid and silently discards everything, so
// callers that do not care about logging can pass one in without a
// guard.
type Logger struct {
	logger *zap.Logger
}

// New builds a console-encoded Logger writing to stderr. debug selects
// DebugLevel (per-file/per-line tracing); otherwise only warnings and
// above are emitted.
func New(debug bool) *Logger {
	level := zap.WarnLevel
	if debug {
		level = zap.DebugLevel
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(zapcore.AddSync(os.Stderr)), level)

	return &Logger{logger: zap.New(core)}
}

// Debug logs a per-line or per-file trace message.
func (l *Logger) Debug(msg string, kv ...interface{}) {
	if l == nil {
		return
	}
	l.logger.Debug(msg, fields(kv)...)
}

// Warn logs a non-fatal problem such as an unreadable file; the driver
// continues to the next file after logging.
func (l *Logger) Warn(msg string, kv ...interface{}) {
	if l == nil {
		return
	}
	l.logger.Warn(msg, fields(kv)...)
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() {
	if l == nil {
		return
	}
	_ = l.logger.Sync()
}

func fields(kv []interface{}) []zap.Field {
	flds := make([]zap.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		flds = append(flds, zap.Any(key, kv[i+1]))
	}
	return flds
}
