package observability

import (
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
// Returns the MeterProvider and an HTTP handler for the /metrics endpoint.
func InitMetrics(_ MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	return provider, promhttp.Handler(), nil
}

// SettlementMetrics holds the instruments recorded by the settlement engine.
type SettlementMetrics struct {
	RateLookups     metric.Int64Counter
	RateRefreshRuns metric.Int64Counter
	SummariesBuilt  metric.Int64Counter
	SummaryDuration metric.Float64Histogram
}

// NewSettlementMetrics registers the settlement instruments on the given meter.
func NewSettlementMetrics(meter metric.Meter) (*SettlementMetrics, error) {
	lookups, err := meter.Int64Counter("settlement_rate_lookups_total",
		metric.WithDescription("Exchange rate resolutions by source"))
	if err != nil {
		return nil, err
	}

	refreshes, err := meter.Int64Counter("settlement_rate_refresh_runs_total",
		metric.WithDescription("Scheduled rate refresh executions by outcome"))
	if err != nil {
		return nil, err
	}

	summaries, err := meter.Int64Counter("settlement_summaries_total",
		metric.WithDescription("Trip financial summaries composed"))
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram("settlement_summary_duration_seconds",
		metric.WithDescription("Wall time to compose a trip financial summary"))
	if err != nil {
		return nil, err
	}

	return &SettlementMetrics{
		RateLookups:     lookups,
		RateRefreshRuns: refreshes,
		SummariesBuilt:  summaries,
		SummaryDuration: duration,
	}, nil
}

// SourceAttr labels a rate lookup with the source that satisfied it
// ("identity", "cache", "provider", "fallback").
func SourceAttr(source string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("source", source))
}

// OutcomeAttr labels a refresh run with its outcome ("ok", "partial", "failed").
func OutcomeAttr(outcome string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("outcome", outcome))
}
