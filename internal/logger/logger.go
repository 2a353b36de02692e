package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Production gets JSON output,
// development and local runs get the console encoder.
func New(env string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if env == "development" || env == "local" {
		cfg = zap.NewDevelopmentConfig()
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
