// Package log 提供全局zap日志
package log

import (
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(newLogger(zapcore.InfoLevel, false))
}

func newLogger(level zapcore.Level, json bool) *zap.Logger {
	var cfg zap.Config
	if json {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// 按级别和格式重建日志，level非法时回退到info
func Init(level string, json bool) {
	lv, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lv = zapcore.InfoLevel
	}
	ReplaceLogger(newLogger(lv, json))
}

// ReplaceLogger swaps the package logger and returns a func restoring the previous one.
func ReplaceLogger(l *zap.Logger) (restore func()) {
	prev := logger.Swap(l)
	return func() {
		logger.Store(prev)
	}
}

func Debug(msg string, fields ...zap.Field) {
	logger.Load().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	logger.Load().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	logger.Load().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	logger.Load().Error(msg, fields...)
}

func Sync() error {
	return logger.Load().Sync()
}
