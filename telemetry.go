package main

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	prometheusotel "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"boolsearch/internal/index"
)

type telemetry struct {
	enabled bool
	logger  *slog.Logger

	registry       *prometheus.Registry
	metricsHandler http.Handler

	reqCount atomic.Int64
	errCount atomic.Int64

	httpRequests  metric.Int64Counter
	httpErrors    metric.Int64Counter
	httpLatency   metric.Float64Histogram
	buildDocs     metric.Int64Counter
	buildLatency  metric.Float64Histogram
	searchOps     metric.Int64Counter
	searchLatency metric.Float64Histogram
	searchHits    metric.Int64Histogram

	termsGauge    prometheus.Gauge
	postingsGauge prometheus.Gauge
	skippedGauge  prometheus.Gauge
}

func newTelemetry(ctx context.Context, logger *slog.Logger, enabled bool) *telemetry {
	telemetry := &telemetry{enabled: enabled, logger: logger}
	if !enabled {
		return telemetry
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	exporter, err := prometheusotel.New(prometheusotel.WithRegisterer(registry))
	if err != nil {
		logger.Error("failed to initialize prometheus exporter", "error", err)
		telemetry.enabled = false
		return telemetry
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	meter := provider.Meter("boolsearch")

	httpReq, _ := meter.Int64Counter("http_requests_total", metric.WithDescription("Total HTTP requests"))
	httpErr, _ := meter.Int64Counter("http_errors_total", metric.WithDescription("HTTP requests that returned an error status"))
	httpLatency, _ := meter.Float64Histogram("http_request_duration_ms", metric.WithDescription("Latency of HTTP requests in milliseconds"), metric.WithUnit("ms"))
	buildDocs, _ := meter.Int64Counter("index_documents_total", metric.WithDescription("Documents added to the inverted index"))
	buildLatency, _ := meter.Float64Histogram("index_build_ms", metric.WithDescription("Time spent building the inverted index"), metric.WithUnit("ms"))
	searchOps, _ := meter.Int64Counter("search_requests_total", metric.WithDescription("Boolean queries evaluated"))
	searchLatency, _ := meter.Float64Histogram("search_latency_ms", metric.WithDescription("Latency of boolean query evaluation"), metric.WithUnit("ms"))
	searchHits, _ := meter.Int64Histogram("search_hits", metric.WithDescription("Documents matched per query"))

	termsGauge := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "boolsearch", Name: "index_terms", Help: "Distinct stemmed terms in the index"})
	postingsGauge := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "boolsearch", Name: "index_postings", Help: "Posting entries across all terms"})
	skippedGauge := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "boolsearch", Name: "corpus_skipped_records", Help: "Corpus lines without a tab separator"})
	registry.MustRegister(termsGauge, postingsGauge, skippedGauge)

	telemetry.registry = registry
	telemetry.metricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	telemetry.httpRequests = httpReq
	telemetry.httpErrors = httpErr
	telemetry.httpLatency = httpLatency
	telemetry.buildDocs = buildDocs
	telemetry.buildLatency = buildLatency
	telemetry.searchOps = searchOps
	telemetry.searchLatency = searchLatency
	telemetry.searchHits = searchHits
	telemetry.termsGauge = termsGauge
	telemetry.postingsGauge = postingsGauge
	telemetry.skippedGauge = skippedGauge

	telemetry.logger.Debug("telemetry initialized", "prometheus", true)
	telemetry.httpRequests.Add(ctx, 0) // ensure metric is created eagerly
	return telemetry
}

func (t *telemetry) recordRequest(ctx context.Context, method, path string, status int, duration time.Duration) {
	t.reqCount.Add(1)
	if status >= http.StatusBadRequest {
		t.errCount.Add(1)
	}
	if !t.enabled {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("path", path),
		attribute.Int("status", status),
	)
	t.httpRequests.Add(ctx, 1, attrs)
	t.httpLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
	if status >= http.StatusBadRequest {
		t.httpErrors.Add(ctx, 1, attrs)
	}
}

// requestCounts is kept even when metrics are disabled; /v1/stats reports it.
func (t *telemetry) requestCounts() (total, failed int64) {
	return t.reqCount.Load(), t.errCount.Load()
}

func (t *telemetry) recordBuild(ctx context.Context, stats index.IndexStats, skipped int, duration time.Duration) {
	if !t.enabled {
		return
	}

	t.buildDocs.Add(ctx, int64(stats.Documents))
	t.buildLatency.Record(ctx, float64(duration.Milliseconds()))
	t.termsGauge.Set(float64(stats.Terms))
	t.postingsGauge.Set(float64(stats.Postings))
	t.skippedGauge.Set(float64(skipped))
}

func (t *telemetry) recordSearch(ctx context.Context, source string, hits int, duration time.Duration) {
	if !t.enabled {
		return
	}

	attrs := metric.WithAttributes(attribute.String("source", source))
	t.searchOps.Add(ctx, 1, attrs)
	t.searchLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	t.searchHits.Record(ctx, int64(hits), attrs)
}

func (t *telemetry) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !t.enabled || t.registry == nil {
		respond(w, http.StatusOK, map[string]any{"enabled": false})
		return
	}

	t.metricsHandler.ServeHTTP(w, r)
}
