package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Deadline bounds the request context by timeout. When the deadline passes
// before the handler finishes, whatever it wrote is discarded and the error
// handler answers 503 with a timeout message.
func Deadline(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if timeout <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.Response().ResetBody()
			c.Response().Header.Del(fiber.HeaderLastModified)
			return context.DeadlineExceeded
		}
		return err
	}
}
