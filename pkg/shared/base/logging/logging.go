// Package logging は検証コア共通のログ出力を提供する。
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// ILogger は検証コア共通のログ出力契約を表す。
type ILogger interface {
	// Info はINFOログを出力する。
	Info(format string, params ...any)
	// Debug はDEBUGログを出力する。
	Debug(format string, params ...any)
	// Warn はWARNログを出力する。
	Warn(format string, params ...any)
}

var (
	defaultLoggerMu sync.RWMutex
	defaultLogger   ILogger = newSlogLogger(slog.LevelInfo)
)

// DefaultLogger は既定ロガーを返す。
func DefaultLogger() ILogger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger は既定ロガーを差し替える。
func SetDefaultLogger(logger ILogger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = logger
}

// EnableDebug は既定ロガーをDEBUGレベルへ切り替える。
func EnableDebug() {
	SetDefaultLogger(newSlogLogger(slog.LevelDebug))
}

// slogLogger はlog/slogによるILogger実装を表す。
type slogLogger struct {
	logger *slog.Logger
}

// newSlogLogger は指定レベルのslogLoggerを生成する。
func newSlogLogger(level slog.Level) *slogLogger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return &slogLogger{logger: slog.New(handler)}
}

// Info はINFOログを出力する。
func (l *slogLogger) Info(format string, params ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Info(fmt.Sprintf(format, params...))
}

// Debug はDEBUGログを出力する。
func (l *slogLogger) Debug(format string, params ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Debug(fmt.Sprintf(format, params...))
}

// Warn はWARNログを出力する。
func (l *slogLogger) Warn(format string, params ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Warn(fmt.Sprintf(format, params...))
}
