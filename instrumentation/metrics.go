package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all metric instruments for the API.
type Metrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	LoginsTotal         metric.Int64Counter
}

// newMetrics creates and registers all metric instruments.
func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error
	m.HTTPRequestsTotal, err = meter.Int64Counter(
		"booklane.http.requests.total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http.requests.total counter: %w", err)
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"booklane.http.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http.request.duration histogram: %w", err)
	}

	m.LoginsTotal, err = meter.Int64Counter(
		"booklane.auth.logins.total",
		metric.WithDescription("Number of completed login attempts by outcome"),
		metric.WithUnit("{login}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth.logins.total counter: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records one handled request.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, durationMs float64) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, durationMs, attrs)
}

// RecordLogin records a completed login attempt.
func (m *Metrics) RecordLogin(ctx context.Context, outcome string) {
	m.LoginsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
