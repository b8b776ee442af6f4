package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels recorded for rate provider calls.
const (
	OutcomeSuccess     = "success"
	OutcomeNetwork     = "network_error"
	OutcomeParse       = "parse_error"
	OutcomeMissingRate = "missing_rate"
)

// unmatchedRoute labels requests that hit no registered route, keeping label cardinality bounded.
const unmatchedRoute = "unmatched"

// CatalogMetrics holds the prometheus collectors of the catalog service
type CatalogMetrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RateProviderRequestsTotal   *prometheus.CounterVec
	RateProviderRequestDuration *prometheus.HistogramVec
}

// NewCatalogMetrics creates the collectors and registers them with reg.
func NewCatalogMetrics(reg prometheus.Registerer) *CatalogMetrics {
	factory := promauto.With(reg)
	return &CatalogMetrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RateProviderRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_rate_provider_requests_total",
				Help: "Exchange rate provider calls by outcome",
			},
			[]string{"base", "target", "outcome"},
		),
		RateProviderRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_rate_provider_request_duration_seconds",
				Help:    "Exchange rate provider call latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.025, 2, 9), // 25ms .. 6.4s
			},
			[]string{"base", "target"},
		),
	}
}

// RecordHTTPRequest records one served HTTP request.
func (m *CatalogMetrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRateRequest records one call to the exchange rate provider.
func (m *CatalogMetrics) RecordRateRequest(base, target, outcome string, duration time.Duration) {
	m.RateProviderRequestsTotal.WithLabelValues(base, target, outcome).Inc()
	m.RateProviderRequestDuration.WithLabelValues(base, target).Observe(duration.Seconds())
}

// GinMiddleware records request count and latency labelled by the matched route template.
func (m *CatalogMetrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		m.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
