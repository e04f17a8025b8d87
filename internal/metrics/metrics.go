// Package metrics exposes Prometheus counters for the gateway endpoints.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for the web service endpoints.
type Metrics struct {
	registry *prometheus.Registry

	// Requests by route template and response status
	Requests *prometheus.CounterVec

	// Handler latency by route template
	Latency *prometheus.HistogramVec

	// Requests rejected by the rate limiter
	RateLimited prometheus.Counter
}

// New creates a Metrics instance backed by its own registry, so several
// servers in one process do not collide.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "acrobits_websvc_requests_total",
			Help: "Total requests by route and status code",
		}, []string{"route", "status"}),

		Latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "acrobits_websvc_request_duration_seconds",
			Help:    "Duration of request handling by route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"route"}),

		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "acrobits_websvc_rate_limited_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(route string, status int, d time.Duration) {
	if m != nil {
		m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.Latency.WithLabelValues(route).Observe(d.Seconds())
	}
}

// IncrementRateLimited records a rejected request.
func (m *Metrics) IncrementRateLimited() {
	if m != nil {
		m.RateLimited.Inc()
	}
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
