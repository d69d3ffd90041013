package logger

import (
	"strings"

	"job-board/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. LOG_FORMAT=console gives human-readable output,
// anything else gives JSON.
func New(cfg config.LogConfig, appName, env string) (*zap.Logger, error) {
	var zc zap.Config
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "console") {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "ts"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))

	l, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return l.With(zap.String("app", appName), zap.String("env", env)), nil
}

func parseLevel(level string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
