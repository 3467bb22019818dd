package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DomainMetrics counts safety-relevant events. A nil *DomainMetrics is valid
// and records nothing.
type DomainMetrics struct {
	generationFailures metric.Int64Counter
	flags              metric.Int64Counter
	assessments        metric.Int64Counter
	alertFailures      metric.Int64Counter
}

// NewDomainMetrics registers the counters on the global meter provider.
func NewDomainMetrics() (*DomainMetrics, error) {
	return NewDomainMetricsFrom(otel.Meter(tracerName))
}

func NewDomainMetricsFrom(meter metric.Meter) (*DomainMetrics, error) {
	var (
		m   DomainMetrics
		err error
	)

	if m.generationFailures, err = meter.Int64Counter(
		"mindwell_generation_failures_total",
		metric.WithDescription("Generative text calls that fell back to a canned reply"),
	); err != nil {
		return nil, err
	}
	if m.flags, err = meter.Int64Counter(
		"mindwell_flags_total",
		metric.WithDescription("Assessments and chat messages flagged for human follow-up"),
	); err != nil {
		return nil, err
	}
	if m.assessments, err = meter.Int64Counter(
		"mindwell_assessments_total",
		metric.WithDescription("Scored assessments by severity"),
	); err != nil {
		return nil, err
	}
	if m.alertFailures, err = meter.Int64Counter(
		"mindwell_alert_failures_total",
		metric.WithDescription("Counselor notifications that could not be delivered"),
	); err != nil {
		return nil, err
	}

	return &m, nil
}

func (m *DomainMetrics) GenerationFailed(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.generationFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// Flagged records a flag event; kind is "assessment" or "chat".
func (m *DomainMetrics) Flagged(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.flags.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

func (m *DomainMetrics) AssessmentScored(ctx context.Context, severity string) {
	if m == nil {
		return
	}
	m.assessments.Add(ctx, 1, metric.WithAttributes(attribute.String("severity", severity)))
}

func (m *DomainMetrics) AlertFailed(ctx context.Context, channel string) {
	if m == nil {
		return
	}
	m.alertFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("channel", channel)))
}
