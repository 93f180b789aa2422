// Package instrumentation provides OpenTelemetry metrics for the HTTP
// surface and the login flow. When disabled it uses no-op providers, so
// instrumented code paths carry zero overhead.
package instrumentation

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// meterName identifies this module's meter.
const meterName = "github.com/booklane/booklane"

// Config holds instrumentation configuration.
type Config struct {
	// ServiceName is the name reported with metrics.
	ServiceName string

	// Enabled controls whether instrumentation is active. When false,
	// no-op instruments are used.
	Enabled bool

	// MeterProvider overrides the global provider. Used by tests.
	MeterProvider metric.MeterProvider
}

// Instrumentation holds the configured metric instruments.
type Instrumentation struct {
	config  Config
	meter   metric.Meter
	metrics *Metrics
}

// New creates an instrumentation instance.
func New(config Config) (*Instrumentation, error) {
	if config.ServiceName == "" {
		config.ServiceName = "booklane"
	}

	provider := config.MeterProvider
	if provider == nil {
		if config.Enabled {
			provider = otel.GetMeterProvider()
		} else {
			provider = noop.NewMeterProvider()
		}
	}

	inst := &Instrumentation{
		config: config,
		meter:  provider.Meter(meterName),
	}

	metrics, err := newMetrics(inst.meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}
	inst.metrics = metrics

	return inst, nil
}

// Metrics returns the pre-configured metric instruments.
func (i *Instrumentation) Metrics() *Metrics {
	return i.metrics
}
