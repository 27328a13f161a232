package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	ServiceName    = "childmon"
	ServiceVersion = "1.0.0"
	MeterName      = "childmon"
)

// OTelProviders holds the OpenTelemetry metric pipeline: a Prometheus-backed
// meter provider plus the HTTP handler serving the scrape endpoint.
type OTelProviders struct {
	MeterProvider  *sdkmetric.MeterProvider
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// InitializeOTel sets up the OpenTelemetry meter provider with a Prometheus
// exporter and registers it globally.
func InitializeOTel(logger *slog.Logger) (*OTelProviders, error) {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(ServiceVersion),
	)

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(mp)

	logger.Info("metrics initialized", slog.String("exporter", "prometheus"))

	return &OTelProviders{
		MeterProvider:  mp,
		Meter:          mp.Meter(MeterName, metric.WithInstrumentationVersion(ServiceVersion)),
		PrometheusHTTP: promhttp.Handler(),
		Logger:         logger,
	}, nil
}

// Shutdown flushes and stops the meter provider.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	if p.MeterProvider != nil {
		return p.MeterProvider.Shutdown(ctx)
	}
	return nil
}

// PipelineMetrics are the application-specific instruments recorded by the
// ingestion pipeline and its HTTP surface.
type PipelineMetrics struct {
	RecordsIngested metric.Int64Counter
	SheetsSkipped   metric.Int64Counter
	WorkbookLoads   metric.Int64Counter
	CacheHits       metric.Int64Counter
	HTTPRequests    metric.Int64Counter
}

// CreatePipelineMetrics registers the pipeline instruments on the meter.
func CreatePipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	recordsIngested, err := meter.Int64Counter(
		"childmon_records_ingested_total",
		metric.WithDescription("Total child records accepted during ingestion"),
	)
	if err != nil {
		return nil, err
	}

	sheetsSkipped, err := meter.Int64Counter(
		"childmon_sheets_skipped_total",
		metric.WithDescription("Total workbook sheets skipped with a warning"),
	)
	if err != nil {
		return nil, err
	}

	workbookLoads, err := meter.Int64Counter(
		"childmon_workbook_loads_total",
		metric.WithDescription("Total full workbook ingestions"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter(
		"childmon_dataset_cache_hits_total",
		metric.WithDescription("Total dataset requests served from the cache"),
	)
	if err != nil {
		return nil, err
	}

	httpRequests, err := meter.Int64Counter(
		"childmon_http_requests_total",
		metric.WithDescription("Total HTTP requests handled"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		RecordsIngested: recordsIngested,
		SheetsSkipped:   sheetsSkipped,
		WorkbookLoads:   workbookLoads,
		CacheHits:       cacheHits,
		HTTPRequests:    httpRequests,
	}, nil
}
