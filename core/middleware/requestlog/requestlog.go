package requestlog

import (
	"time"

	"matchup-model/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// New logs every request with its ray id, status and duration. Handler errors
// are logged at error level and passed on to fiber's error handler.
func New(l *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		rl := logger.WithRayID(l, c)
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("took", time.Since(start)),
		}
		if err != nil {
			rl.Error("Request failed", append(fields, zap.Error(err))...)
			return err
		}
		rl.Info("Request", fields...)
		return nil
	}
}
