package balance

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/x31a/acrobits-websvc/internal/account"
	"github.com/x31a/acrobits-websvc/internal/config"
	"github.com/x31a/acrobits-websvc/internal/format"
)

// Handler exposes the balance checker endpoint.
type Handler struct {
	fetcher  Fetcher
	settings config.BalanceSettings
	logger   *slog.Logger
}

// NewHandler builds a balance HTTP handler.
func NewHandler(fetcher Fetcher, settings config.BalanceSettings, logger *slog.Logger) *Handler {
	return &Handler{fetcher: fetcher, settings: settings, logger: logger}
}

// Get answers GET {base}/balance.
func (h *Handler) Get(c *fiber.Ctx) error {
	params := account.FromQuery(c)
	result, err := h.fetcher.FetchBalance(c.UserContext(), params)
	if err != nil {
		return err
	}
	h.logger.DebugContext(c.UserContext(), "balance fetched", slog.String("username", params.Username))
	return c.Status(http.StatusOK).JSON(NewResponse(result, h.settings))
}

// NewResponse shapes a collaborator result into the wire response. The
// result itself is left untouched.
func NewResponse(b Balance, settings config.BalanceSettings) Response {
	currency := b.Currency
	if currency == "" {
		currency = settings.Currency
	}
	return Response{
		BalanceString: format.Money(b.Amount, currency, settings.Currency),
		Balance:       b.Amount,
		Currency:      currency,
	}
}
