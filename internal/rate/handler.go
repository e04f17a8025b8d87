package rate

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/x31a/acrobits-websvc/internal/account"
	"github.com/x31a/acrobits-websvc/internal/config"
)

// Handler exposes the rate checker endpoint.
type Handler struct {
	fetcher  Fetcher
	settings config.RateSettings
	logger   *slog.Logger
}

// NewHandler builds a rate HTTP handler.
func NewHandler(fetcher Fetcher, settings config.RateSettings, logger *slog.Logger) *Handler {
	return &Handler{fetcher: fetcher, settings: settings, logger: logger}
}

// Get answers GET {base}/rate. The shape is chosen before the collaborator
// is called so ambiguous requests cost nothing downstream.
func (h *Handler) Get(c *fiber.Ctx) error {
	params := Params{
		Account:      account.FromQuery(c),
		TargetNumber: c.Query("targetNumber"),
		SmartURI:     c.Query("smartUri"),
	}
	variant, err := SelectVariant(params)
	if err != nil {
		return err
	}

	result, err := h.fetcher.FetchRate(c.UserContext(), params)
	if err != nil {
		return err
	}
	h.logger.DebugContext(c.UserContext(), "rate fetched",
		slog.String("username", params.Account.Username),
		slog.String("variant", variant.String()),
	)
	return c.Status(http.StatusOK).JSON(Render(variant, result, h.settings))
}
