// Package telemetry exports the planner's Prometheus metrics and OpenTelemetry tracer.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonesrussell/north-cloud/social-planner/infrastructure/metrics"
)

const (
	serviceName = "social-planner"
	namespace   = "social_planner"
)

// Metrics holds the planner's collectors. A nil *Metrics records nothing.
type Metrics struct {
	PostsGenerated     *prometheus.CounterVec
	GenerationDuration prometheus.Histogram
	SchedulesCreated   prometheus.Counter
	Classifications    *prometheus.CounterVec
	PublishTotal       *prometheus.CounterVec
	NewsFetchTotal     *prometheus.CounterVec
	DraftsPurged       prometheus.Counter
	HTTP               *metrics.HTTPMetrics
}

// Provider bundles tracer, metrics and the registry they live in.
type Provider struct {
	Tracer   trace.Tracer
	Metrics  *Metrics
	registry *prometheus.Registry
}

// NewProvider registers every collector on a fresh registry.
func NewProvider() *Provider {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Provider{
		Tracer:   otel.Tracer(serviceName),
		Metrics:  newMetrics(reg),
		registry: reg,
	}
}

// Handler serves /metrics for this provider's registry.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Registry exposes the registry for tests.
func (p *Provider) Registry() *prometheus.Registry {
	return p.registry
}

func newMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PostsGenerated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_generated_total",
			Help:      "Posts generated by post type and tone.",
		}, []string{"post_type", "tone"}),
		GenerationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time to generate one batch of posts.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		SchedulesCreated: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedules_created_total",
			Help:      "Weekly schedules created.",
		}),
		Classifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Website classifications by industry and tone.",
		}, []string{"industry", "tone"}),
		PublishTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_total",
			Help:      "Publish attempts by client mode and result.",
		}, []string{"mode", "result"}),
		NewsFetchTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "news_fetch_total",
			Help:      "News fetches by source and result.",
		}, []string{"source", "result"}),
		DraftsPurged: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "drafts_purged_total",
			Help:      "Draft posts removed by retention cleanup.",
		}),
		HTTP: metrics.NewHTTPMetrics(reg, namespace),
	}
}

func (m *Metrics) PostGenerated(postType, tone string) {
	if m == nil {
		return
	}
	m.PostsGenerated.WithLabelValues(postType, tone).Inc()
}

func (m *Metrics) ObserveGeneration(d time.Duration) {
	if m == nil {
		return
	}
	m.GenerationDuration.Observe(d.Seconds())
}

func (m *Metrics) ScheduleCreated() {
	if m == nil {
		return
	}
	m.SchedulesCreated.Inc()
}

func (m *Metrics) Classified(industry, tone string) {
	if m == nil {
		return
	}
	m.Classifications.WithLabelValues(industry, tone).Inc()
}

func (m *Metrics) Published(mode string, err error) {
	if m == nil {
		return
	}
	m.PublishTotal.WithLabelValues(mode, result(err)).Inc()
}

func (m *Metrics) NewsFetched(source string, err error) {
	if m == nil {
		return
	}
	m.NewsFetchTotal.WithLabelValues(source, result(err)).Inc()
}

func (m *Metrics) Purged(n int64) {
	if m == nil {
		return
	}
	m.DraftsPurged.Add(float64(n))
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// StartSpan starts a span on p's tracer, or on the global tracer when p is nil.
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := otel.Tracer(serviceName)
	if p != nil && p.Tracer != nil {
		tracer = p.Tracer
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// MetricsOrNil returns p.Metrics, tolerating a nil provider.
func (p *Provider) MetricsOrNil() *Metrics {
	if p == nil {
		return nil
	}
	return p.Metrics
}

// EndSpan records err on span and ends it.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
