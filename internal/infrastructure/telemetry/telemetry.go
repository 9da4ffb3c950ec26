// Package telemetry wires OpenTelemetry tracing, metrics and log export plus
// Pyroscope continuous profiling for the storefront backend.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/storefront/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

// ServiceVersion is reported on every exported signal
var ServiceVersion = "1.0.0"

// Config is the flattened telemetry configuration shared by all providers
type Config struct {
	Enabled           bool
	CollectorEndpoint string
	Insecure          bool
	ServiceName       string
	SamplingRatio     float64

	MetricsEnabled        bool
	MetricsExportInterval time.Duration
	LogsEnabled           bool

	DBTraceEnabled    bool
	DBLogFullSQL      bool
	DBSlowQueryThresh time.Duration

	ProfilingEnabled bool
	PyroscopeAddress string
}

// FromConfig converts the application configuration section
func FromConfig(c config.TelemetryConfig) Config {
	return Config{
		Enabled:               c.Enabled,
		CollectorEndpoint:     c.CollectorEndpoint,
		Insecure:              c.Insecure,
		ServiceName:           c.ServiceName,
		SamplingRatio:         c.SamplingRatio,
		MetricsEnabled:        c.MetricsEnabled,
		MetricsExportInterval: c.MetricsExportInterval,
		LogsEnabled:           c.LogsEnabled,
		DBTraceEnabled:        c.DBTraceEnabled,
		DBLogFullSQL:          c.DBLogFullSQL,
		DBSlowQueryThresh:     c.DBSlowQueryThresh,
		ProfilingEnabled:      c.ProfilingEnabled,
		PyroscopeAddress:      c.PyroscopeAddress,
	}
}

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// Providers groups every telemetry component started for the process
type Providers struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
}

// Setup starts the providers enabled in cfg. Disabled ones are still returned as no-ops
// so callers never need nil checks.
func Setup(ctx context.Context, cfg Config, log *zap.Logger) (*Providers, error) {
	tp, err := NewTracerProvider(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	mp, err := NewMeterProvider(ctx, cfg, log)
	if err != nil {
		return nil, errors.Join(err, tp.Shutdown(ctx))
	}
	lp, err := NewLoggerProvider(ctx, cfg, log)
	if err != nil {
		return nil, errors.Join(err, tp.Shutdown(ctx), mp.Shutdown(ctx))
	}
	prof, err := NewProfiler(cfg, log)
	if err != nil {
		return nil, errors.Join(err, tp.Shutdown(ctx), mp.Shutdown(ctx), lp.Shutdown(ctx))
	}
	if prof.IsEnabled() {
		tp.EnableSpanProfiles()
	}
	return &Providers{Tracer: tp, Meter: mp, Logs: lp, Profiler: prof}, nil
}

// Shutdown flushes and stops every provider, logs last so shutdown messages are exported
func (p *Providers) Shutdown(ctx context.Context) error {
	return errors.Join(
		p.Profiler.Stop(),
		p.Tracer.Shutdown(ctx),
		p.Meter.Shutdown(ctx),
		p.Logs.Shutdown(ctx),
	)
}
