package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics initializes the Prometheus metrics exporter.
// Returns the MeterProvider and an HTTP handler for /metrics endpoint.
func InitMetrics(_ MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	handler := promhttp.Handler()

	return provider, handler, nil
}

// EngineMetrics records amortization engine activity.
type EngineMetrics struct {
	simulations    metric.Int64Counter
	comparisons    metric.Int64Counter
	scheduleLength metric.Int64Histogram
	candidates     metric.Int64Histogram
}

// NewEngineMetrics registers the engine instruments on provider.
func NewEngineMetrics(provider metric.MeterProvider) (*EngineMetrics, error) {
	meter := provider.Meter("github.com/muyuda/khaya/kpr")

	simulations, err := meter.Int64Counter("kpr_simulations_total",
		metric.WithDescription("Schedules produced, by calculation mode."))
	if err != nil {
		return nil, fmt.Errorf("simulations counter: %w", err)
	}
	comparisons, err := meter.Int64Counter("kpr_comparisons_total",
		metric.WithDescription("Comparison rankings produced, by calculation mode."))
	if err != nil {
		return nil, fmt.Errorf("comparisons counter: %w", err)
	}
	scheduleLength, err := meter.Int64Histogram("kpr_schedule_months",
		metric.WithDescription("Rows emitted per schedule."),
		metric.WithExplicitBucketBoundaries(12, 60, 120, 180, 240, 300, 360))
	if err != nil {
		return nil, fmt.Errorf("schedule histogram: %w", err)
	}
	candidates, err := meter.Int64Histogram("kpr_comparison_candidates",
		metric.WithDescription("Entries returned per comparison."))
	if err != nil {
		return nil, fmt.Errorf("candidates histogram: %w", err)
	}

	return &EngineMetrics{
		simulations:    simulations,
		comparisons:    comparisons,
		scheduleLength: scheduleLength,
		candidates:     candidates,
	}, nil
}

// RecordSimulation counts one schedule of the given length.
func (m *EngineMetrics) RecordSimulation(ctx context.Context, mode string, months int) {
	attrs := metric.WithAttributes(attribute.String("mode", mode))
	m.simulations.Add(ctx, 1, attrs)
	m.scheduleLength.Record(ctx, int64(months), attrs)
}

// RecordComparison counts one ranking.
func (m *EngineMetrics) RecordComparison(ctx context.Context, mode string, candidates int) {
	attrs := metric.WithAttributes(attribute.String("mode", mode))
	m.comparisons.Add(ctx, 1, attrs)
	m.candidates.Record(ctx, int64(candidates), attrs)
}
