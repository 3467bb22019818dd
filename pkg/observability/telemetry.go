package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"

	"github.com/Alijeyrad/mindwell_backend/config"
)

const (
	defaultServiceName = "mindwell_backend"
	shutdownTimeout    = 5 * time.Second
)

// Config is the flattened view of the observability section.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	// OTLPEndpoint is host:port of an OTLP/HTTP collector. Empty keeps spans
	// in-process.
	OTLPEndpoint string
	OTLPInsecure bool
	SamplingRate float64

	// Metrics turns on the Prometheus reader behind /metrics.
	Metrics bool
}

func FromCentralConfig(c *config.Config) Config {
	o := c.Observability
	cfg := Config{
		ServiceName:    o.ServiceName,
		ServiceVersion: o.ServiceVersion,
		Environment:    c.Server.Environment,
		SamplingRate:   o.Tracing.SamplingRate,
		Metrics:        o.Metrics.Enabled,
	}
	if o.Tracing.Enabled {
		cfg.OTLPEndpoint = o.Tracing.OTLPEndpoint
		cfg.OTLPInsecure = o.Tracing.OTLPInsecure
	}
	return cfg
}

// Provider owns the process-wide tracer and meter providers.
// PrometheusExporter is nil when metrics are off.
type Provider struct {
	TracerProvider     *trace.TracerProvider
	MeterProvider      *metric.MeterProvider
	PrometheusExporter *prometheus.Exporter
}

// InitTelemetry builds both providers, installs them as the otel globals and
// sets W3C trace-context propagation.
func InitTelemetry(ctx context.Context, cfg Config) (*Provider, error) {
	res, err := serviceResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("observability: resource: %w", err)
	}

	tp, err := newTracerProvider(ctx, res, cfg)
	if err != nil {
		return nil, fmt.Errorf("observability: tracing: %w", err)
	}

	p := &Provider{TracerProvider: tp}

	meterOpts := []metric.Option{metric.WithResource(res)}
	if cfg.Metrics {
		exp, err := prometheus.New()
		if err != nil {
			_ = tp.Shutdown(ctx)
			return nil, fmt.Errorf("observability: prometheus exporter: %w", err)
		}
		p.PrometheusExporter = exp
		meterOpts = append(meterOpts, metric.WithReader(exp))
	}
	p.MeterProvider = metric.NewMeterProvider(meterOpts...)

	otel.SetTracerProvider(p.TracerProvider)
	otel.SetMeterProvider(p.MeterProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return p, nil
}

func serviceResource(cfg Config) (*resource.Resource, error) {
	name := cfg.ServiceName
	if name == "" {
		name = defaultServiceName
	}
	attrs := []resource.Option{
		resource.WithAttributes(semconv.ServiceName(name)),
	}
	if cfg.ServiceVersion != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.ServiceVersion(cfg.ServiceVersion)))
	}
	if cfg.Environment != "" {
		attrs = append(attrs, resource.WithAttributes(semconv.DeploymentEnvironmentName(cfg.Environment)))
	}
	custom, err := resource.New(context.Background(), attrs...)
	if err != nil {
		return nil, err
	}
	return resource.Merge(resource.Default(), custom)
}

// newTracerProvider samples by ratio and follows the parent decision for
// propagated traces. A zero or out-of-range rate samples everything.
func newTracerProvider(ctx context.Context, res *resource.Resource, cfg Config) (*trace.TracerProvider, error) {
	rate := cfg.SamplingRate
	if rate <= 0 || rate > 1 {
		rate = 1
	}

	opts := []trace.TracerProviderOption{
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(rate))),
	}

	if cfg.OTLPEndpoint != "" {
		httpOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.OTLPEndpoint)}
		if cfg.OTLPInsecure {
			httpOpts = append(httpOpts, otlptracehttp.WithInsecure())
		}
		exp, err := otlptracehttp.New(ctx, httpOpts...)
		if err != nil {
			return nil, err
		}
		opts = append(opts, trace.WithBatcher(exp))
	}

	return trace.NewTracerProvider(opts...), nil
}

// Shutdown flushes pending spans and stops both providers. Both are always
// attempted.
func (p *Provider) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
	}
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider: %w", err))
		}
	}
	return errors.Join(errs...)
}
