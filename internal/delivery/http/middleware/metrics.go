package middleware

import (
	"strconv"
	"time"

	"badge-sync/internal/metrics"

	"github.com/gofiber/fiber/v3"
)

const unmatchedRoute = "unmatched"

// Metrics records request counts and latency per route template, so path parameters do not
// explode label cardinality.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		route := c.Route().Path
		if status == fiber.StatusNotFound || status == fiber.StatusMethodNotAllowed {
			route = unmatchedRoute
		}
		method := c.Method()

		metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}
