package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	reqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "marketplace",
			Name:      "http_requests_total",
			Help:      "HTTP requests handled, per service, route and status",
		},
		[]string{"service", "method", "route", "status"},
	)
	reqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "marketplace",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds, per service and route",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "route"},
	)
)

func init() { prometheus.MustRegister(reqTotal, reqDuration) }

// Metrics counts and times every request. The service label tells the user
// and product binaries apart when one job scrapes both. Unmatched requests
// fall back to the raw URL path so 404 traffic still shows up.
func Metrics(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		reqTotal.WithLabelValues(service, method, route, status).Inc()
		reqDuration.WithLabelValues(service, method, route).Observe(time.Since(start).Seconds())
	}
}
