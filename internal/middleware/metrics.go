package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter           = otel.Meter("go-echo-newsroom")
	requestCounter  metric.Int64Counter
	requestDuration metric.Float64Histogram
	activeRequests  metric.Int64UpDownCounter
	articleLookups  metric.Int64Counter
)

// ArticleLookupsTotal is scraped from /metrics.
var ArticleLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "newsroom",
		Name:      "article_lookups_total",
		Help:      "Total number of reader article lookups",
	},
	[]string{"class", "outcome"},
)

// HTTPRequestsTotal mirrors http.server.request.total for Prometheus scrapers.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "newsroom",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	},
	[]string{"method", "route", "status"},
)

func InitMetrics() error {
	var err error

	requestCounter, err = meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	requestDuration, err = meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return err
	}

	activeRequests, err = meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	articleLookups, err = meter.Int64Counter(
		"articles.lookups",
		metric.WithDescription("Reader article lookups by caller class and outcome"),
		metric.WithUnit("{lookup}"),
	)
	return err
}

// RecordArticleLookup counts one reader lookup. outcome is "found" or
// "not_found".
func RecordArticleLookup(ctx context.Context, class, outcome string) {
	ArticleLookupsTotal.WithLabelValues(class, outcome).Inc()
	if articleLookups != nil {
		articleLookups.Add(ctx, 1, metric.WithAttributes(
			attribute.String("caller.class", class),
			attribute.String("lookup.outcome", outcome),
		))
	}
}

func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			ctx := c.Request().Context()

			routeAttrs := metric.WithAttributes(
				attribute.String("http.method", c.Request().Method),
				attribute.String("http.route", c.Path()),
			)

			if activeRequests != nil {
				activeRequests.Add(ctx, 1, routeAttrs)
				defer activeRequests.Add(ctx, -1, routeAttrs)
			}

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			statusCode := c.Response().Status
			HTTPRequestsTotal.WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(statusCode)).Inc()

			if requestCounter != nil && requestDuration != nil {
				attrs := metric.WithAttributes(
					attribute.String("http.method", c.Request().Method),
					attribute.String("http.route", c.Path()),
					attribute.Int("http.status_code", statusCode),
				)
				requestCounter.Add(ctx, 1, attrs)
				requestDuration.Record(ctx, float64(time.Since(start).Milliseconds()), attrs)
			}

			return nil
		}
	}
}
