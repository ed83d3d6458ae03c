package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"

	"github.com/isletme/backend/internal/infrastructure/config"
)

// MeterName is the instrumentation scope of the application metrics
const MeterName = "github.com/isletme/backend"

// MeterProvider wraps the SDK meter provider with lifecycle management
type MeterProvider struct {
	provider *sdkmetric.MeterProvider
	logger   *zap.Logger
}

// NewMeterProvider exports metrics over OTLP gRPC on cfg.MetricsInterval
func NewMeterProvider(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*MeterProvider, error) {
	mp := &MeterProvider{logger: logger}
	if !cfg.Enabled {
		return mp, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create OTLP metric exporter: %w", err)
	}

	res, err := newResource(cfg.ServiceName)
	if err != nil {
		return nil, err
	}

	mp.provider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.MetricsInterval))),
	)
	otel.SetMeterProvider(mp.provider)

	logger.Info("meter provider initialized", zap.Duration("export_interval", cfg.MetricsInterval))
	return mp, nil
}

// Meter returns the application meter
func (mp *MeterProvider) Meter() metric.Meter {
	if mp.provider == nil {
		return otel.GetMeterProvider().Meter(MeterName)
	}
	return mp.provider.Meter(MeterName)
}

// Shutdown flushes pending metrics
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.provider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := mp.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown meter provider: %w", err)
	}
	return nil
}

// Attribute keys shared by the application metrics
var (
	AttrTenantID   = attribute.Key("tenant_id")
	AttrHTTPMethod = attribute.Key("http.method")
	AttrHTTPRoute  = attribute.Key("http.route")
	AttrHTTPStatus = attribute.Key("http.status_code")
	AttrOutcome    = attribute.Key("outcome")
	AttrCategory   = attribute.Key("opex.category")
	AttrDocument   = attribute.Key("document.type")
)

// Outcome values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// HTTPDurationBuckets are histogram boundaries for request latency in seconds
var HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// renderDurationBuckets cover headless Chrome render times in seconds
var renderDurationBuckets = []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30}

// Metrics holds the instruments recorded by the application
type Metrics struct {
	httpRequests     metric.Int64Counter
	httpDuration     metric.Float64Histogram
	opexCellWrites   metric.Int64Counter
	opexBulkSaves    metric.Int64Counter
	pdfRenders       metric.Int64Counter
	pdfRenderSeconds metric.Float64Histogram
	logins           metric.Int64Counter
}

// NewMetrics creates the application instruments on meter
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)
	if m.httpRequests, err = meter.Int64Counter("http.server.requests",
		metric.WithDescription("Handled HTTP requests"), metric.WithUnit("{request}")); err != nil {
		return nil, fmt.Errorf("create http.server.requests: %w", err)
	}
	if m.httpDuration, err = meter.Float64Histogram("http.server.duration",
		metric.WithDescription("HTTP request latency"), metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(HTTPDurationBuckets...)); err != nil {
		return nil, fmt.Errorf("create http.server.duration: %w", err)
	}
	if m.opexCellWrites, err = meter.Int64Counter("opex.cell.writes",
		metric.WithDescription("OPEX cell upserts"), metric.WithUnit("{write}")); err != nil {
		return nil, fmt.Errorf("create opex.cell.writes: %w", err)
	}
	if m.opexBulkSaves, err = meter.Int64Counter("opex.bulk.saves",
		metric.WithDescription("OPEX bulk save runs"), metric.WithUnit("{run}")); err != nil {
		return nil, fmt.Errorf("create opex.bulk.saves: %w", err)
	}
	if m.pdfRenders, err = meter.Int64Counter("pdf.renders",
		metric.WithDescription("PDF documents rendered"), metric.WithUnit("{document}")); err != nil {
		return nil, fmt.Errorf("create pdf.renders: %w", err)
	}
	if m.pdfRenderSeconds, err = meter.Float64Histogram("pdf.render.duration",
		metric.WithDescription("PDF render latency"), metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(renderDurationBuckets...)); err != nil {
		return nil, fmt.Errorf("create pdf.render.duration: %w", err)
	}
	if m.logins, err = meter.Int64Counter("auth.logins",
		metric.WithDescription("Login attempts"), metric.WithUnit("{attempt}")); err != nil {
		return nil, fmt.Errorf("create auth.logins: %w", err)
	}
	return &m, nil
}

// NopMetrics records into the global no-op meter
func NopMetrics() *Metrics {
	m, _ := NewMetrics(otel.GetMeterProvider().Meter(MeterName))
	return m
}

func outcome(err error) attribute.KeyValue {
	if err != nil {
		return AttrOutcome.String(OutcomeFailure)
	}
	return AttrOutcome.String(OutcomeSuccess)
}

// RecordHTTPRequest records one served request
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	attrs := metric.WithAttributes(AttrHTTPMethod.String(method), AttrHTTPRoute.String(route), AttrHTTPStatus.Int(status))
	m.httpRequests.Add(ctx, 1, attrs)
	m.httpDuration.Record(ctx, d.Seconds(), attrs)
}

// RecordOpexWrite records one cell upsert
func (m *Metrics) RecordOpexWrite(ctx context.Context, category string, err error) {
	m.opexCellWrites.Add(ctx, 1, metric.WithAttributes(AttrCategory.String(category), outcome(err)))
}

// RecordOpexBulkSave records a bulk save run that ended with failed cells
func (m *Metrics) RecordOpexBulkSave(ctx context.Context, failed int) {
	var err error
	if failed > 0 {
		err = fmt.Errorf("%d cells failed", failed)
	}
	m.opexBulkSaves.Add(ctx, 1, metric.WithAttributes(outcome(err)))
}

// RecordPDFRender records a render and its latency
func (m *Metrics) RecordPDFRender(ctx context.Context, documentType string, d time.Duration, err error) {
	attrs := metric.WithAttributes(AttrDocument.String(documentType), outcome(err))
	m.pdfRenders.Add(ctx, 1, attrs)
	m.pdfRenderSeconds.Record(ctx, d.Seconds(), attrs)
}

// RecordLogin records a login attempt
func (m *Metrics) RecordLogin(ctx context.Context, err error) {
	m.logins.Add(ctx, 1, metric.WithAttributes(outcome(err)))
}
