package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"

	"assetlib/internal/config"
)

const (
	ServiceName = "assetlib"
	MeterName   = "assetlib"
)

// OTelConfig holds OpenTelemetry configuration
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	TraceExporter  string // "stdout", "none"
	MetricExporter string // "prometheus", "none"
	EnableMetrics  bool
	EnableTracing  bool
	SampleRatio    float64
}

// OTelProviders holds the OpenTelemetry providers
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// DefaultOTelConfig returns a default OpenTelemetry configuration
func DefaultOTelConfig() *OTelConfig {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	return &OTelConfig{
		ServiceName:    ServiceName,
		ServiceVersion: "dev",
		Environment:    env,
		TraceExporter:  "none",
		MetricExporter: "prometheus",
		EnableMetrics:  true,
		EnableTracing:  true,
		SampleRatio:    1.0,
	}
}

// OTelConfigFrom builds an OpenTelemetry configuration from the telemetry
// section of the application config.
func OTelConfigFrom(cfg config.TelemetryConfig, version string) *OTelConfig {
	c := DefaultOTelConfig()
	if cfg.ServiceName != "" {
		c.ServiceName = cfg.ServiceName
	}
	c.ServiceVersion = version
	c.EnableMetrics = cfg.EnableMetrics
	c.EnableTracing = cfg.EnableTracing
	if cfg.TraceToStdout {
		c.TraceExporter = "stdout"
	}
	return c
}

// InitializeOTel initializes the tracer and meter providers and installs
// them globally.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil {
		cfg = DefaultOTelConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx := context.Background()

	logger.InfoContext(ctx, "Initializing OpenTelemetry",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion),
		slog.String("environment", cfg.Environment),
		slog.Bool("tracing_enabled", cfg.EnableTracing),
		slog.Bool("metrics_enabled", cfg.EnableMetrics))

	res := createResource(cfg)

	providers := &OTelProviders{
		Logger: logger,
		Tracer: otel.Tracer(MeterName),
		Meter:  noop.NewMeterProvider().Meter(MeterName),
	}

	if cfg.EnableTracing {
		if err := initializeTracing(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.EnableMetrics {
		if err := initializeMetrics(ctx, cfg, res, providers); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return providers, nil
}

func createResource(cfg *OTelConfig) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", generateInstanceID()),
	)
}

func initializeTracing(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	}

	switch cfg.TraceExporter {
	case "stdout":
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithBatcher(exporter))
	case "none", "":
		// Spans are still created so trace ids reach the logs
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	tp := sdktrace.NewTracerProvider(opts...)
	providers.TracerProvider = tp
	providers.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(cfg.ServiceVersion))
	otel.SetTracerProvider(tp)

	providers.Logger.InfoContext(ctx, "Tracing initialized",
		slog.String("exporter", cfg.TraceExporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))
	return nil
}

func initializeMetrics(ctx context.Context, cfg *OTelConfig, res *resource.Resource, providers *OTelProviders) error {
	switch cfg.MetricExporter {
	case "prometheus":
		// A registry per provider set keeps repeated initialisation safe
		registry := promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return fmt.Errorf("failed to create prometheus exporter: %w", err)
		}

		providers.PrometheusHTTP = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		providers.MeterProvider = mp
		providers.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(cfg.ServiceVersion))
		otel.SetMeterProvider(mp)
	case "none":
		return nil
	default:
		return fmt.Errorf("unsupported metric exporter: %s", cfg.MetricExporter)
	}

	providers.Logger.InfoContext(ctx, "Metrics initialized",
		slog.String("exporter", cfg.MetricExporter))
	return nil
}

// BusinessMetrics holds the application-specific instruments
type BusinessMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Library metrics
	SearchesTotal        metric.Int64Counter
	SearchResults        metric.Int64Histogram
	FavoriteToggles      metric.Int64Counter
	SectionLoadFailures  metric.Int64Counter
	PreviewSessionsOpen  metric.Int64UpDownCounter
	PreviewSessionsTotal metric.Int64Counter
	ExportsTotal         metric.Int64Counter

	// WebSocket metrics
	WebSocketClients metric.Int64UpDownCounter
}

// CreateBusinessMetrics creates the application-specific instruments on meter
func CreateBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	m := &BusinessMetrics{}
	var errs []error
	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		errs = append(errs, err)
		return c
	}
	gauge := func(name, desc string) metric.Int64UpDownCounter {
		c, err := meter.Int64UpDownCounter(name, metric.WithDescription(desc))
		errs = append(errs, err)
		return c
	}

	m.HTTPRequestsTotal = counter("http_requests_total", "Total number of HTTP requests")
	m.HTTPActiveRequests = gauge("http_active_requests", "Number of active HTTP requests")
	duration, err := meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"))
	errs = append(errs, err)
	m.HTTPRequestDuration = duration

	m.SearchesTotal = counter("library_searches_total", "Total number of library searches")
	results, err := meter.Int64Histogram("library_search_results",
		metric.WithDescription("Number of results returned per search"))
	errs = append(errs, err)
	m.SearchResults = results
	m.FavoriteToggles = counter("library_favorite_toggles_total", "Total number of favorite toggles")
	m.SectionLoadFailures = counter("library_section_load_failures_total", "Total number of failed section loads")
	m.PreviewSessionsOpen = gauge("library_preview_sessions_open", "Number of open layout previews")
	m.PreviewSessionsTotal = counter("library_preview_sessions_total", "Total number of layout previews opened")
	m.ExportsTotal = counter("library_exports_total", "Total number of catalog exports")
	m.WebSocketClients = gauge("websocket_clients", "Number of connected change feed clients")

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordSearch records a search and the size of its result
func (m *BusinessMetrics) RecordSearch(ctx context.Context, tab string, results int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("tab", tab))
	m.SearchesTotal.Add(ctx, 1, attrs)
	m.SearchResults.Record(ctx, int64(results), attrs)
}

// RecordFavoriteToggle records a favorite toggle of the given kind
// ("asset" for the favorites list, "layout" for the layout flag).
func (m *BusinessMetrics) RecordFavoriteToggle(ctx context.Context, kind string, added bool) {
	if m == nil {
		return
	}
	m.FavoriteToggles.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.Bool("added", added)))
}

// RecordSectionFailure records a section that failed to load
func (m *BusinessMetrics) RecordSectionFailure(ctx context.Context, section string) {
	if m == nil {
		return
	}
	m.SectionLoadFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("section", section)))
}

// RecordPreviewOpened records a newly opened layout preview
func (m *BusinessMetrics) RecordPreviewOpened(ctx context.Context) {
	if m == nil {
		return
	}
	m.PreviewSessionsTotal.Add(ctx, 1)
	m.PreviewSessionsOpen.Add(ctx, 1)
}

// RecordPreviewClosed records a closed or discarded layout preview
func (m *BusinessMetrics) RecordPreviewClosed(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.PreviewSessionsOpen.Add(ctx, -1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordExport records a catalog export in the given format
func (m *BusinessMetrics) RecordExport(ctx context.Context, format string) {
	if m == nil {
		return
	}
	m.ExportsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("format", format)))
}

// RecordClientChange records a change feed client connecting (+1) or leaving (-1)
func (m *BusinessMetrics) RecordClientChange(ctx context.Context, delta int64) {
	if m == nil {
		return
	}
	m.WebSocketClients.Add(ctx, delta)
}

// RecordHTTPRequest records a finished HTTP request
func (m *BusinessMetrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status))
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// Shutdown gracefully shuts down OpenTelemetry providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("opentelemetry shutdown errors: %w", errors.Join(errs...))
	}

	p.Logger.InfoContext(ctx, "OpenTelemetry shutdown complete")
	return nil
}

func generateInstanceID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("%s-%d", hostname, time.Now().Unix())
}

// TraceIDFromContext extracts trace ID from context for logging correlation
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}
