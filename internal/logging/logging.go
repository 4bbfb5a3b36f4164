// Package logging builds the file-backed zap logger. Log output goes to a
// rotated JSON file only; stdout is reserved for the interactive console.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a JSON logger writing to path with rotation. An empty path
// returns a no-op logger so callers never need to nil-check.
func New(path string) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}

	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(rotator),
		zap.InfoLevel,
	)
	return zap.New(core)
}
