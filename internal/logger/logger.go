package logger

import (
	"salva-iguaba-api/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Init builds the process-wide logger from config and replaces the zap
// globals. Production gets JSON output, everything else gets the colored
// development encoder.
func Init(cfg *config.Config) error {
	var level zapcore.Level
	switch cfg.Log.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var err error
	if cfg.Environment.Name == "production" {
		prodConfig := zap.NewProductionConfig()
		prodConfig.Level = zap.NewAtomicLevelAt(level)
		prodConfig.EncoderConfig.TimeKey = "timestamp"
		prodConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		log, err = prodConfig.Build(zap.Fields(
			zap.String("service", "salva-iguaba-api"),
			zap.String("environment", cfg.Environment.Name),
		))
	} else {
		devConfig := zap.NewDevelopmentConfig()
		devConfig.Level = zap.NewAtomicLevelAt(level)
		devConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

		log, err = devConfig.Build(zap.Fields(
			zap.String("service", "salva-iguaba-api"),
			zap.String("environment", cfg.Environment.Name),
		))
	}
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(log)
	return nil
}

// Get returns the global logger instance.
func Get() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
