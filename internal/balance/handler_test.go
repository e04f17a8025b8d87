package balance

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x31a/acrobits-websvc/internal/account"
	"github.com/x31a/acrobits-websvc/internal/apierror"
	"github.com/x31a/acrobits-websvc/internal/config"
	"github.com/x31a/acrobits-websvc/internal/logging"
)

var testSettings = config.BalanceSettings{Currency: "USD"}

func newTestApp(fetcher Fetcher) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apierror.Handler(logging.Discard())})
	app.Get("/balance", NewHandler(fetcher, testSettings, logging.Discard()).Get)
	return app
}

func TestNewResponse(t *testing.T) {
	assert.Equal(t,
		Response{BalanceString: "USD 12.50", Balance: 12.5, Currency: "USD"},
		NewResponse(Balance{Amount: 12.5}, testSettings),
	)
	assert.Equal(t,
		Response{BalanceString: "EUR 12.50", Balance: 12.5, Currency: "EUR"},
		NewResponse(Balance{Amount: 12.5, Currency: "EUR"}, testSettings),
	)
	assert.Equal(t,
		Response{BalanceString: "-1.00", Balance: -1, Currency: ""},
		NewResponse(Balance{Amount: -1}, config.BalanceSettings{}),
	)
}

func TestGetBalance(t *testing.T) {
	var got account.Params
	app := newTestApp(FetcherFunc(func(_ context.Context, p account.Params) (Balance, error) {
		got = p
		return Balance{Amount: 12.5}, nil
	}))

	req := httptest.NewRequest(fiber.MethodGet, "/balance?username=alice&password=pw&nonce=n1&user=u1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"balanceString":"USD 12.50","balance":12.5,"currency":"USD"}`, string(body))
	assert.Equal(t, account.Params{Username: "alice", Password: "pw", Nonce: "n1", User: "u1"}, got)
}

func TestGetBalanceWithoutCredentialsIsForwarded(t *testing.T) {
	calls := 0
	app := newTestApp(FetcherFunc(func(context.Context, account.Params) (Balance, error) {
		calls++
		return Balance{}, nil
	}))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/balance", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestGetBalanceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not implemented", apierror.ErrNotImplemented, http.StatusNotImplemented},
		{"unavailable", apierror.ErrUnavailable, http.StatusServiceUnavailable},
		{"forbidden", apierror.ErrForbidden, http.StatusForbidden},
		{"unexpected", errors.New("db exploded"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(FetcherFunc(func(context.Context, account.Params) (Balance, error) {
				return Balance{}, tt.err
			}))
			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/balance?username=a", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.NotContains(t, string(body), "db exploded")
		})
	}
}
