// Package logger provides a lightweight, centralized logging facility
// backed by zap's sugared logger.
//
// Design goals:
//   - Simple API (Errorf, Warnf, Infof, Debugf, Tracef)
//   - Centralized level control configured once at startup
//   - Zero formatting logic at call sites
//
// Verbosity levels (in increasing order):
//
//	Error < Warn < Info < Debug < Trace
//
// Example usage:
//
//	logger.Init("debug", "development")
//	logger.Infof("starting engine")
//	logger.Debugf("spot=%f vol=%f", spot, vol)
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger *zap.SugaredLogger

// Init initializes the global logger.
//
// level is a zap level name ("debug", "info", "warn", "error"); unknown
// names fall back to info. env selects the encoder: "production" emits
// JSON lines, anything else a colored console format.
func Init(level, env string) error {
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	globalLogger = logger.Sugar()
	return nil
}

// Get returns the global sugared logger, initializing a development
// fallback when Init has not been called yet.
func Get() *zap.SugaredLogger {
	if globalLogger == nil {
		logger, _ := zap.NewDevelopment(zap.AddCallerSkip(1))
		globalLogger = logger.Sugar()
	}
	return globalLogger
}

// Errorf logs an error-level message.
// Use this for failures that require attention.
func Errorf(format string, args ...any) { Get().Errorf(format, args...) }

// Warnf logs a warning about a recoverable anomaly.
func Warnf(format string, args ...any) { Get().Warnf(format, args...) }

// Infof logs an informational message.
// Use this for major lifecycle events.
func Infof(format string, args ...any) { Get().Infof(format, args...) }

// Debugf logs debugging information.
// Use this for diagnostic output useful during development.
func Debugf(format string, args ...any) { Get().Debugf(format, args...) }

// Tracef logs very detailed execution traces. zap has no level below debug,
// so trace output shares the debug level.
// Use this sparingly due to high volume.
func Tracef(format string, args ...any) { Get().Debugf(format, args...) }

// Fatalf logs at error level and exits the process with status 1.
func Fatalf(format string, args ...any) { Get().Fatalf(format, args...) }

// Sync flushes any buffered log entries. Call before process exit.
func Sync() error { return Get().Sync() }
