// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file holds the Prometheus collectors of the transport layer: request
// counts, latencies, in-flight requests and response sizes per route, plus
// webhook signature verification outcomes. Route labels use the registered
// Gin path (e.g. /api/v1/orders/:id) so cardinality stays bounded; unmatched
// requests fall back to the raw URL path.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	// Order payloads and catalogs are small JSON documents; buckets stop at 1 MiB,
	// the request body cap.
	httpRespSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Size of HTTP responses in bytes.",
			Buckets: prometheus.ExponentialBuckets(256, 4, 7),
		},
		[]string{"method", "path"},
	)

	// webhookVerifications counts VerifyWebhook outcomes by result
	// (ok, signature_missing, signature_invalid, signature_mismatch,
	// secret_not_configured).
	webhookVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_signature_verifications_total",
			Help: "Webhook signature verification outcomes.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, httpRespSize, webhookVerifications)
}

// Metrics returns a Gin middleware that instruments requests with Prometheus.
// Mount promhttp.Handler() separately to expose the collectors.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method

		httpReqs.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpLat.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		// Size is -1 when nothing was written.
		if size := c.Writer.Size(); size >= 0 {
			httpRespSize.WithLabelValues(method, path).Observe(float64(size))
		}
	}
}
