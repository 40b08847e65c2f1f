package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base *zap.Logger

func init() {
	base = newLogger("info")
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// Setup mengganti logger global sesuai LOG_LEVEL
func Setup(level string) {
	base = newLogger(level)
}

// Use dipakai di test untuk memasang logger observer / nop
func Use(l *zap.Logger) {
	base = l.WithOptions(zap.AddCallerSkip(1))
}

func L() *zap.Logger {
	return base
}

func Sync() {
	_ = base.Sync()
}

func Info(msg string, v ...interface{}) {
	base.Info(format(msg, v))
}

func Warn(msg string, v ...interface{}) {
	base.Warn(format(msg, v))
}

// Error mencatat error beserta konteks tambahan (map, string, dll.) jika ada
func Error(msg string, err error, v ...interface{}) {
	fields := make([]zap.Field, 0, 2)
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	if ctx := nonNil(v); len(ctx) > 0 {
		fields = append(fields, zap.Any("context", ctx))
	}
	base.Error(msg, fields...)
}

func format(msg string, v []interface{}) string {
	if len(v) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, v...)
}

func nonNil(v []interface{}) []interface{} {
	out := v[:0:0]
	for _, item := range v {
		if item != nil {
			out = append(out, item)
		}
	}
	return out
}
