// Package metrics exposes a small Prometheus registry for the route-search
// API, grounded on samirrijal-bilbopass's internal/pkg/metrics package:
// same promauto vectors, the same request-timing middleware shape, and the
// same /metrics handler wiring.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "routeopt",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "routeopt",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// RoutesGenerated tracks how many candidate itineraries the enumerator
	// produces per request, before Pareto reduction.
	RoutesGenerated = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "routeopt",
		Subsystem: "search",
		Name:      "candidate_routes_generated",
		Help:      "Candidate itineraries enumerated per route-search request",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
	})

	// RoutesSelected tracks the final recommendation count after the
	// selector's Pareto-and-diversity reduction.
	RoutesSelected = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "routeopt",
		Subsystem: "search",
		Name:      "final_routes_selected",
		Help:      "Routes returned to the caller per route-search request",
		Buckets:   []float64{1, 2, 3, 5, 8, 13, 20},
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "routeopt",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "routeopt",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})
)

// Middleware records request count and latency for every HTTP call.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler serves the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
