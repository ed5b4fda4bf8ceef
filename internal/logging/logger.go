// Package logging wraps zap with the small surface the gateway uses.
package logging

import "go.uber.org/zap"

type Logger struct {
	zl *zap.Logger
}

func New(debug bool) *Logger {
	var zl *zap.Logger
	var err error
	if debug {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		zl = zap.NewNop()
	}
	return &Logger{zl: zl}
}

// Nop returns a logger that discards everything. Used in tests and as the
// default when no logger is injected.
func Nop() *Logger { return &Logger{zl: zap.NewNop()} }

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zl.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.zl.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.zl.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.zl.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...zap.Field) { l.zl.Fatal(msg, fields...) }

func (l *Logger) With(fields ...zap.Field) *Logger { return &Logger{zl: l.zl.With(fields...)} }

func (l *Logger) Sync() error { return l.zl.Sync() }
