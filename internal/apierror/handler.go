package apierror

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const timeoutMessage = "timeout"

// Response is the wire envelope for every failed request.
type Response struct {
	Message string `json:"message"`
}

// Resolve maps err to the status code and message written to the client.
func Resolve(err error) (int, string) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable, timeoutMessage
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Message
	}
	status, _ := StatusOf(err)
	return status, http.StatusText(status)
}

// Handler returns the Fiber error handler that renders {"message": ...}
// for every error escaping a route.
func Handler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := Resolve(err)

		requestID, _ := c.Locals(fiber.HeaderXRequestID).(string)
		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Any("error", err),
		}
		if requestID != "" {
			attrs = append(attrs, slog.String("request_id", requestID))
		}
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.UserContext(), "request failed", attrs...)
		} else {
			logger.DebugContext(c.UserContext(), "request rejected", attrs...)
		}

		c.Response().Header.Del(fiber.HeaderLastModified)
		return c.Status(status).JSON(Response{Message: message})
	}
}
