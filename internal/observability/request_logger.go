package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger emits one structured log line per request and feeds the
// request metrics.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		metrics.TrackInFlight(1)

		err := c.Next()

		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		metrics.TrackInFlight(-1)
		metrics.RecordRequest(c.Path(), c.Method(), status, elapsed.Seconds())

		logger.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("duration", elapsed),
		)
		return err
	}
}
