package telemetry

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all custom metrics for the service
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal metric.Int64Counter
	HTTPDurationMs    metric.Float64Histogram

	// Business metrics
	PatientTotal          metric.Int64Counter
	TestTotal             metric.Int64Counter
	CriticalQueryDuration metric.Float64Histogram
}

// InitMetrics initializes all custom metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/clinitrack/clinical-record-service")

	httpRequestsTotal, err := meter.Int64Counter(
		"http_server_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	httpDurationMs, err := meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	patientTotal, err := meter.Int64Counter(
		"patient_total",
		metric.WithDescription("Total number of patient operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	testTotal, err := meter.Int64Counter(
		"test_total",
		metric.WithDescription("Total number of diagnostic test operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	criticalQueryDuration, err := meter.Float64Histogram(
		"critical_query_duration_ms",
		metric.WithDescription("Critical-patient classification scan duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	log.Println("✓ Custom metrics initialized")

	return &Metrics{
		HTTPRequestsTotal:     httpRequestsTotal,
		HTTPDurationMs:        httpDurationMs,
		PatientTotal:          patientTotal,
		TestTotal:             testTotal,
		CriticalQueryDuration: criticalQueryDuration,
	}, nil
}

// Recorder methods are nil-safe so callers can run without telemetry.

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, durationMs float64) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("http_method", method),
		attribute.String("http_route", route),
		attribute.Int("http_status_code", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

// RecordPatientOperation records a patient operation metric
func (m *Metrics) RecordPatientOperation(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.PatientTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordTestOperation records a diagnostic test operation metric
func (m *Metrics) RecordTestOperation(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.TestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordCriticalQuery records a critical-patient scan metric
func (m *Metrics) RecordCriticalQuery(ctx context.Context, durationMs float64, matched int) {
	if m == nil {
		return
	}
	m.CriticalQueryDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.Int("matched", matched),
	))
}
