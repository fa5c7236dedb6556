// Package logger builds the diagnostic logger used for per-line anomaly
// reporting. Diagnostics go to stderr by default so that event output on
// stdout stays machine-readable; a file path switches them to a rotating
// log file.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/appfwlog/appfwlog/pkg/config"
)

// New creates a logger from the given configuration.
func New(cfg config.LoggingConfig) *zap.SugaredLogger {
	writeSyncer := zapcore.AddSync(os.Stderr)

	if cfg.Path != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		writeSyncer = zapcore.AddSync(rotator)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	level := zapcore.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	}

	core := zapcore.NewCore(encoder, writeSyncer, level)
	return zap.New(core).Sugar()
}
