// Package middleware contains HTTP middlewares for delivery.
package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/jhmfreitas/usermanager-challenge/internal/metrics"
)

// RequestLogger logs HTTP requests with method, path, status and duration,
// and feeds the request-duration histogram. The metric uses the route
// pattern, not the raw URL, to keep label cardinality bounded.
func RequestLogger(log *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		dur := time.Since(start)

		status := c.Response().StatusCode()
		routePath := c.Route().Path
		if routePath == "" {
			routePath = c.Path()
		}
		metrics.ObserveRequest(c.Method(), routePath, strconv.Itoa(status), dur.Seconds())

		reqID, _ := c.Locals("requestid").(string)
		if reqID == "" {
			reqID = c.Get(fiber.HeaderXRequestID)
		}
		log.Infow("http",
			"method", c.Method(),
			"path", c.OriginalURL(),
			"status", status,
			"duration_ms", float64(dur.Microseconds())/1000.0,
			"request_id", reqID,
		)
		return err
	}
}
