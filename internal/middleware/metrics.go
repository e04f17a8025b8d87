package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/x31a/acrobits-websvc/internal/apierror"
	"github.com/x31a/acrobits-websvc/internal/metrics"
)

const unmatchedRoute = "unmatched"

// Metrics records request counts and latency per route template.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status, _ = apierror.Resolve(err)
		}
		route := c.Route().Path
		var fe *fiber.Error
		if errors.As(err, &fe) && fe.Code == fiber.StatusNotFound {
			route = unmatchedRoute
		}
		m.ObserveRequest(route, status, time.Since(start))
		return err
	}
}
