// Package metrics registers the Prometheus collectors exposed on
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests handled",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes request latency per route
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	// AffiliateClicksTotal counts tracked affiliate clicks
	AffiliateClicksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "affiliate_clicks_total",
		Help: "Total number of affiliate clicks tracked",
	})

	// AffiliateClicksThrottled counts clicks rejected by the throttle
	AffiliateClicksThrottled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "affiliate_clicks_throttled_total",
		Help: "Total number of affiliate clicks rejected by the per-IP throttle",
	})

	// AffiliateConversionsTotal counts successful conversion attributions
	AffiliateConversionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "affiliate_conversions_total",
		Help: "Total number of conversions attributed to clicks",
	})

	// CommissionEarned accumulates commission amounts from conversions
	CommissionEarned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "affiliate_commission_earned_total",
		Help: "Cumulative commission amount from attributed conversions",
	})

	// DealsExpired counts deals deactivated by the expiry job
	DealsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deals_expired_total",
		Help: "Total number of deals deactivated after their end date",
	})
)
