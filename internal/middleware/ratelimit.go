package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/x31a/acrobits-websvc/internal/account"
	"github.com/x31a/acrobits-websvc/internal/apierror"
	"github.com/x31a/acrobits-websvc/internal/metrics"
	"github.com/x31a/acrobits-websvc/internal/ratelimit"
)

// RateLimit rejects requests over budget with 429. The key is the account
// username, or the client IP for anonymous requests. Limiter failures fail
// open.
func RateLimit(limiter ratelimit.Limiter, m *metrics.Metrics, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}
		ok, err := limiter.Allow(c.UserContext(), account.Key(c))
		if err != nil {
			logger.WarnContext(c.UserContext(), "rate limiter unavailable", slog.Any("error", err))
			return c.Next()
		}
		if !ok {
			m.IncrementRateLimited()
			return apierror.ErrTooManyRequests
		}
		return c.Next()
	}
}
