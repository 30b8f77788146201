// Package metrics provides Prometheus metrics for the HTTP API.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/learnhub-auth/internal/apierror"
)

const namespace = "learnhub_auth"

// Metrics holds the request collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts handled requests by route, method and status.
	RequestsTotal *prometheus.CounterVec
	// RequestDuration measures request latency in seconds.
	RequestDuration *prometheus.HistogramVec
	// AuthOutcomes counts authentication attempts by flow and result.
	AuthOutcomes *prometheus.CounterVec
}

// New creates collectors registered in a fresh registry together with the
// Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		AuthOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Total number of authentication attempts",
			},
			[]string{"flow", "result"},
		),
	}
}

// RecordAuth records the outcome of an authentication attempt.
func (m *Metrics) RecordAuth(flow string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.AuthOutcomes.WithLabelValues(flow, result).Inc()
}

// Middleware observes every request. The route label is the registered path
// template so unmatched paths do not explode cardinality.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil && !c.Response().Committed {
				status = errorStatus(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			m.RequestsTotal.WithLabelValues(route, c.Request().Method, strconv.Itoa(status)).Inc()
			m.RequestDuration.WithLabelValues(route, c.Request().Method).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

func errorStatus(err error) int {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
