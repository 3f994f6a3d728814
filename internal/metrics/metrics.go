// Package metrics provides Prometheus metrics collection for the packing service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/palletform/binpack3d/internal/packing"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// PackRequestsTotal tracks total pack requests by outcome.
	PackRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pack_requests_total",
			Help: "Total number of packing requests",
		},
		[]string{"status"},
	)

	// PackDuration tracks how long a single pack request takes end to end.
	PackDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pack_duration_seconds",
			Help:    "Packing request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// PackedBoxCount tracks how many boxes a successful pack result used.
	PackedBoxCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "packed_box_count",
			Help:    "Number of boxes in a successful packing result",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
		},
	)

	// RedistributionSwapsTotal tracks weight-redistribution swap attempts by outcome.
	RedistributionSwapsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redistribution_swaps_total",
			Help: "Total number of weight-redistribution swap attempts",
		},
		[]string{"outcome"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordPackRequest records outcome and duration metrics for a pack request.
// boxCount is only meaningful when status is "success"; callers pass 0 on error.
func RecordPackRequest(duration time.Duration, status string, boxCount int) {
	PackDuration.Observe(duration.Seconds())
	PackRequestsTotal.WithLabelValues(status).Inc()
	if status == "success" {
		PackedBoxCount.Observe(float64(boxCount))
	}
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

// PackingSink adapts the packing engine's LogSink to Prometheus, so
// redistribution swap decisions are counted without the packing package
// depending on Prometheus itself.
type PackingSink struct {
	next packing.LogSink
}

// NewPackingSink wraps next, forwarding every event to it after recording
// the metrics this package cares about. next may be nil, in which case
// events are only recorded as metrics.
func NewPackingSink(next packing.LogSink) PackingSink {
	return PackingSink{next: next}
}

func (s PackingSink) Debug(msg string, fields map[string]any) {
	s.record(msg)
	if s.next != nil {
		s.next.Debug(msg, fields)
	}
}

func (s PackingSink) Info(msg string, fields map[string]any) {
	if s.next != nil {
		s.next.Info(msg, fields)
	}
}

func (s PackingSink) Warn(msg string, fields map[string]any) {
	if s.next != nil {
		s.next.Warn(msg, fields)
	}
}

func (s PackingSink) record(msg string) {
	switch msg {
	case "swap accepted":
		RedistributionSwapsTotal.WithLabelValues("accepted").Inc()
	case "swap rejected":
		RedistributionSwapsTotal.WithLabelValues("rejected").Inc()
	}
}
