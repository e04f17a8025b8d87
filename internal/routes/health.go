package routes

import (
	"github.com/gofiber/fiber/v2"
)

// Liveness answers the health check. It never touches a collaborator, so a
// 200 only says the process is serving requests.
func Liveness(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("OK")
}
