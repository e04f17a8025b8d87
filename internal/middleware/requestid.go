package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestID ensures each request has a stable request identifier for tracing and logging.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(fiber.HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, reqID)
		c.Locals(fiber.HeaderXRequestID, reqID)

		return c.Next()
	}
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(fiber.HeaderXRequestID).(string)
	return id
}
