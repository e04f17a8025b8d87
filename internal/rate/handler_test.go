package rate

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x31a/acrobits-websvc/internal/apierror"
	"github.com/x31a/acrobits-websvc/internal/logging"
)

type countingFetcher struct {
	calls int
	last  Params
	rate  Rate
	err   error
}

func (f *countingFetcher) FetchRate(_ context.Context, p Params) (Rate, error) {
	f.calls++
	f.last = p
	return f.rate, f.err
}

func newTestApp(fetcher Fetcher) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apierror.Handler(logging.Discard())})
	app.Get("/rate", NewHandler(fetcher, testSettings, logging.Discard()).Get)
	return app
}

func get(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestGetNumberShape(t *testing.T) {
	fetcher := &countingFetcher{rate: Rate{Call: &Call{Price: 1}, Message: price(2)}}
	app := newTestApp(fetcher)

	status, body := get(t, app, "/rate?username=alice&password=pw&targetNumber=%2B420123456")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"callRateString":"1¢ min.","messageRateString":"2¢"}`, body)
	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, "+420123456", fetcher.last.TargetNumber)
	assert.Equal(t, "alice", fetcher.last.Account.Username)
}

func TestGetURIShape(t *testing.T) {
	fetcher := &countingFetcher{rate: Rate{Message: price(0.3), Currency: "€"}}
	app := newTestApp(fetcher)

	status, body := get(t, app, "/rate?smartUri=sip%3Abob%40example.com")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"smartCallRateString":"","smartMessageRateString":"0.3€"}`, body)
	assert.Equal(t, "sip:bob@example.com", fetcher.last.SmartURI)
}

func TestGetWithoutDestinationIsBadRequest(t *testing.T) {
	fetcher := &countingFetcher{}
	app := newTestApp(fetcher)

	status, body := get(t, app, "/rate?username=alice&password=pw")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"message":"targetNumber or smartUri is required"}`, body)
	assert.Zero(t, fetcher.calls)
}

func TestGetCollaboratorNotImplemented(t *testing.T) {
	fetcher := &countingFetcher{err: apierror.ErrNotImplemented}
	app := newTestApp(fetcher)

	status, body := get(t, app, "/rate?targetNumber=123")
	assert.Equal(t, http.StatusNotImplemented, status)
	assert.JSONEq(t, `{"message":"Not Implemented"}`, body)
}
