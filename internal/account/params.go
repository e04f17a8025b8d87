// Package account holds the account parameters every Acrobits web service
// request carries. The gateway forwards them to collaborators verbatim.
package account

import "github.com/gofiber/fiber/v2"

// Params are the account query parameters. Username and Password are the
// softphone's stored credentials; Nonce and User are optional extras the
// client may substitute into the request template.
type Params struct {
	Username string
	Password string
	Nonce    string
	User     string
}

// FromQuery reads the account parameters from the request query string.
func FromQuery(c *fiber.Ctx) Params {
	return Params{
		Username: c.Query("username"),
		Password: c.Query("password"),
		Nonce:    c.Query("nonce"),
		User:     c.Query("user"),
	}
}

// Key identifies the caller for per-account limits: the username when
// present, otherwise the client IP.
func Key(c *fiber.Ctx) string {
	if username := c.Query("username"); username != "" {
		return "user:" + username
	}
	return "ip:" + c.IP()
}
