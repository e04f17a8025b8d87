package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()
	m.ObserveRequest("/balance", http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest("/balance", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest("/rate", http.StatusBadRequest, time.Millisecond)
	m.IncrementRateLimited()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("/balance", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/rate", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RateLimited))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("/x", 200, time.Second)
		m.IncrementRateLimited()
	})
}

func TestInstancesDoNotCollide(t *testing.T) {
	assert.NotPanics(t, func() {
		_ = New()
		_ = New()
	})
}

func TestHandlerServesTextFormat(t *testing.T) {
	m := New()
	m.ObserveRequest("/contacts", http.StatusNotModified, time.Millisecond)

	app := fiber.New()
	app.Get("/metrics", m.Handler())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `acrobits_websvc_requests_total{route="/contacts",status="304"} 1`)
}
