package logger

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the application logger. Debug selects zap's development preset;
// any other level uses the production preset at that level, or info when the
// level does not parse.
func New(cfg *Config) (*zap.Logger, error) {
	return zapConfig(cfg).Build()
}

func zapConfig(cfg *Config) zap.Config {
	var zc zap.Config
	if cfg.Level == "debug" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
		if lvl, err := zapcore.ParseLevel(cfg.Level); err == nil {
			zc.Level = zap.NewAtomicLevelAt(lvl)
		}
	}

	if cfg.Format == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	} else {
		zc.Encoding = "json"
	}
	zc.EncoderConfig.LevelKey = "level"
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.MessageKey = "message"
	return zc
}

// WithRayID tags l with the request's ray id when one is set.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if rid, ok := c.Locals("ray_id").(string); ok && rid != "" {
		return l.With(zap.String("ray_id", rid))
	}
	return l
}

// WithSource tags l with the cumulative sheet a pipeline stage is working on.
func WithSource(l *zap.Logger, source string) *zap.Logger {
	if source == "" {
		return l
	}
	return l.With(zap.String("source", source))
}
