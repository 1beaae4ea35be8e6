package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salvaiguaba_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salvaiguaba_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "salvaiguaba_orders_created_total",
			Help: "Total number of orders created",
		},
	)

	PaymentsByStatus = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salvaiguaba_payments_total",
			Help: "Payment status transitions observed",
		},
		[]string{"status"},
	)

	WebhookUnknownTransactions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "salvaiguaba_webhook_unknown_transactions_total",
			Help: "Webhook notifications referencing no local payment",
		},
	)
)

// Middleware records request count and duration per route.
func Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		method := c.Request().Method
		path := c.Path()
		status := strconv.Itoa(c.Response().Status)

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler exposes the prometheus scrape endpoint.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
