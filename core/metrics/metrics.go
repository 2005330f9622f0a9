package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "route", "status"},
	)
	refreshRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_refresh_runs_total",
			Help: "Reconciliation runs by result.",
		},
		[]string{"result"},
	)
	refreshItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_refresh_items_total",
			Help: "Products touched by reconciliation, by action.",
		},
		[]string{"action"},
	)
	publishFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_publish_failures_total",
			Help: "Events that could not be published, by topic.",
		},
		[]string{"topic"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(refreshRunsTotal)
	prometheus.MustRegister(refreshItemsTotal)
	prometheus.MustRegister(publishFailuresTotal)
}

// RecordRequest records one HTTP request.
func RecordRequest(method, route string, statusCode int, duration time.Duration) {
	status := classifyStatus(statusCode)
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// RecordRefresh records the outcome of a reconciliation run (success, noop, failure).
func RecordRefresh(result string) {
	refreshRunsTotal.WithLabelValues(result).Inc()
}

// RecordRefreshItems adds n products to the counter of action (create, update, skip).
func RecordRefreshItems(action string, n int) {
	if n <= 0 {
		return
	}
	refreshItemsTotal.WithLabelValues(action).Add(float64(n))
}

// RecordPublishFailure counts an event that failed to publish.
func RecordPublishFailure(topic string) {
	publishFailuresTotal.WithLabelValues(topic).Inc()
}

// Middleware records every request against its matched route pattern.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		RecordRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}

// Handler serves the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

func classifyStatus(statusCode int) string {
	if statusCode < 100 || statusCode > 599 {
		return "unknown"
	}
	return strconv.Itoa(statusCode/100) + "xx"
}
