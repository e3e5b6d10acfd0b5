package declient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the request construction
// and hook-dispatch pipeline. It is safe for concurrent use.
type MetricsCollector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec

	hookDuration *prometheus.HistogramVec

	decodeErrorsTotal *prometheus.CounterVec

	errorsTotal *prometheus.CounterVec

	registry prometheus.Registerer
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using supplied registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	mc := &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "declient_requests_total",
				Help: "Total number of HTTP requests made",
			},
			[]string{"method", "status_code", "resource", "route"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "declient_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status_code", "resource", "route"},
		),
		requestsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "declient_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
			[]string{"resource", "route"},
		),
		hookDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "declient_hook_duration_seconds",
				Help:    "Duration of individual hook invocations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"hook", "phase"},
		),
		decodeErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "declient_decode_errors_total",
				Help: "Total number of response body decoding failures",
			},
			[]string{"resource", "route"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "declient_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type", "resource", "route"},
		),
		registry: registry,
	}

	return mc
}

// RecordRequest records request count and duration.
func (mc *MetricsCollector) RecordRequest(method, resource, route string, statusCode int, duration time.Duration) {
	if mc == nil {
		return
	}

	statusCodeStr := strconv.Itoa(statusCode)
	mc.requestsTotal.WithLabelValues(method, statusCodeStr, resource, route).Inc()
	mc.requestDuration.WithLabelValues(method, statusCodeStr, resource, route).Observe(duration.Seconds())
}

// RecordRequestStart increments in-flight gauge.
func (mc *MetricsCollector) RecordRequestStart(resource, route string) {
	if mc == nil {
		return
	}

	mc.requestsInFlight.WithLabelValues(resource, route).Inc()
}

// RecordRequestEnd decrements in-flight gauge.
func (mc *MetricsCollector) RecordRequestEnd(resource, route string) {
	if mc == nil {
		return
	}

	mc.requestsInFlight.WithLabelValues(resource, route).Dec()
}

// RecordHook records the duration of one hook invocation in the given phase
// ("before" or "after").
func (mc *MetricsCollector) RecordHook(hook, phase string, duration time.Duration) {
	if mc == nil {
		return
	}

	mc.hookDuration.WithLabelValues(hook, phase).Observe(duration.Seconds())
}

// RecordDecodeError increments the decode failure counter.
func (mc *MetricsCollector) RecordDecodeError(resource, route string) {
	if mc == nil {
		return
	}

	mc.decodeErrorsTotal.WithLabelValues(resource, route).Inc()
}

// RecordError increments error counter by type.
func (mc *MetricsCollector) RecordError(errorType, resource, route string) {
	if mc == nil {
		return
	}

	mc.errorsTotal.WithLabelValues(errorType, resource, route).Inc()
}

// Registry exposes the underlying prometheus registerer.
func (mc *MetricsCollector) Registry() prometheus.Registerer {
	return mc.registry
}
