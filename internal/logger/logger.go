package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init initializes the global zap logger.
// env is "dev" or "prod", as set in config.Config.
func Init(env string) (*zap.Logger, error) {
	var cfg zap.Config

	if env == "dev" {
		// Консоль, человекочитаемый формат, уровень Debug
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}

	// После этого zap.L() доступен в любом пакете
	zap.ReplaceGlobals(l)
	return l, nil
}
