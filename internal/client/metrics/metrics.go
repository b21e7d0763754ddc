// Package metrics instruments API calls with Prometheus collectors.
//
// The CLI is short-lived, so instead of exposing /metrics it can push the
// registry to a Pushgateway once a command finishes.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Collector implements api.Observer.
type Collector struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "moviecat",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "API requests by operation, method and response status (0 = no response).",
		}, []string{"operation", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "moviecat",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "API request latency by operation.",
			Buckets:   []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
	}
	c.registry.MustRegister(c.requests, c.duration)
	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

func (c *Collector) ObserveRequest(operation, method string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(operation, method, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Push sends the registry to the Pushgateway at url under job.
func (c *Collector) Push(url, job string) error {
	return push.New(url, job).Gatherer(c.registry).Push()
}
