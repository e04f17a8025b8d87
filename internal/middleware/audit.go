package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mssola/useragent"

	"github.com/x31a/acrobits-websvc/internal/apierror"
)

// Audit emits one structured log line per request. Credentials are never
// logged; the username and the parsed client identity are.
func Audit(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status, _ = apierror.Resolve(err)
		}

		attrs := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
		}
		if id := requestID(c); id != "" {
			attrs = append(attrs, slog.String("request_id", id))
		}
		if username := c.Query("username"); username != "" {
			attrs = append(attrs, slog.String("username", username))
		}
		if ua := c.Get(fiber.HeaderUserAgent); ua != "" {
			attrs = append(attrs, clientAttrs(ua))
		}

		if err != nil {
			attrs = append(attrs, slog.Any("error", err))
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request completed", attrs...)
		case err != nil:
			logger.Warn("request completed", attrs...)
		default:
			logger.Info("request completed", attrs...)
		}
		return err
	}
}

func clientAttrs(raw string) slog.Attr {
	ua := useragent.New(raw)
	name, version := ua.Browser()
	return slog.Group("client",
		slog.String("name", name),
		slog.String("version", version),
		slog.String("os", ua.OS()),
		slog.Bool("mobile", ua.Mobile()),
		slog.Bool("bot", ua.Bot()),
	)
}
