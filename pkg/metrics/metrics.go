package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "relay"

// Metrics groups the collectors exported by the relay.
// Each instance owns its registry so tests can build as many as they like.
type Metrics struct {
	registry         *prometheus.Registry
	Requests         *prometheus.CounterVec
	LatencyMS        *prometheus.HistogramVec
	UpstreamAttempts *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 15000, 45000},
	}, []string{"handler"})
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "upstream",
		Name:      "order_attempts_total",
		Help:      "Order creation attempts against the commerce API by outcome.",
	}, []string{"outcome"})

	reg.MustRegister(
		requests,
		latency,
		attempts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Metrics{
		registry:         reg,
		Requests:         requests,
		LatencyMS:        latency,
		UpstreamAttempts: attempts,
	}
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(handler string, status int, elapsed time.Duration) {
	m.Requests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
	m.LatencyMS.WithLabelValues(handler).Observe(float64(elapsed.Milliseconds()))
}

// ObserveAttempt records one upstream order attempt.
func (m *Metrics) ObserveAttempt(outcome string) {
	m.UpstreamAttempts.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
