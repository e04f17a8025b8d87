package apierror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x31a/acrobits-websvc/internal/logging"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"typed bad request", BadRequest("targetNumber or smartUri is required"), http.StatusBadRequest, "targetNumber or smartUri is required"},
		{"typed default message", New(http.StatusServiceUnavailable, ""), http.StatusServiceUnavailable, "Service Unavailable"},
		{"wrapped not implemented", fmt.Errorf("balance: %w", ErrNotImplemented), http.StatusNotImplemented, "Not Implemented"},
		{"unavailable", ErrUnavailable, http.StatusServiceUnavailable, "Service Unavailable"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "Forbidden"},
		{"too many requests", ErrTooManyRequests, http.StatusTooManyRequests, "Too Many Requests"},
		{"deadline", fmt.Errorf("fetch: %w", context.DeadlineExceeded), http.StatusServiceUnavailable, "timeout"},
		{"fiber not found", fiber.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"server error hides cause", ServerError("invalid contacts snapshot", errors.New("bad date")), http.StatusInternalServerError, "invalid contacts snapshot"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := Resolve(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestHandlerWritesEnvelope(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: Handler(logging.Discard())})
	app.Get("/fail", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderLastModified, "Tue, 01 Aug 2023 00:00:00 GMT")
		return fmt.Errorf("collaborator: %w", ErrNotImplemented)
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/fail", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
	assert.Empty(t, resp.Header.Get(fiber.HeaderLastModified))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded Response
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "Not Implemented", decoded.Message)
}

func TestHandlerUnknownRoute(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: Handler(logging.Discard())})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var decoded Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.NotEmpty(t, decoded.Message)
}
