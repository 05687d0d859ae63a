// Package logger holds the process-wide zap logger.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init builds the global logger
// level: debug, info, warn, error
// format: "json" for production output, anything else for console output
func Init(level string, format string) error {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl := zap.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	log = l
	return nil
}

// L returns the global logger
func L() *zap.Logger {
	return log
}

// Set replaces the global logger (tests use zap.NewNop or an observer core)
func Set(l *zap.Logger) {
	log = l
}

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }

// Sync flushes buffered entries
func Sync() error {
	return log.Sync()
}
