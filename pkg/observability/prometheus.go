package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus implements every hook interface with Prometheus collectors.
type Prometheus struct {
	registry *prometheus.Registry

	LayoutsTotal     *prometheus.CounterVec
	LayoutDuration   *prometheus.HistogramVec
	LayoutNodes      *prometheus.HistogramVec
	LayoutFallbacks  *prometheus.CounterVec
	LayoutsInFlight  prometheus.Gauge
	ClusterRuns      *prometheus.CounterVec
	ClusterCount     prometheus.Histogram
	CacheEventsTotal *prometheus.CounterVec
	CacheBytes       *prometheus.HistogramVec

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge
	HTTPResponseSize     *prometheus.HistogramVec
}

// NewPrometheus registers the wikigraph collectors on reg. A nil reg gets
// a fresh registry.
func NewPrometheus(reg *prometheus.Registry) *Prometheus {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Prometheus{
		registry: reg,

		LayoutsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wikigraph_layouts_total",
			Help: "Total number of layouts computed",
		}, []string{"engine", "mode", "status"}),
		LayoutDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wikigraph_layout_duration_seconds",
			Help:    "Layout computation time in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"engine", "mode"}),
		LayoutNodes: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wikigraph_layout_nodes",
			Help:    "Number of nodes per layout",
			Buckets: []float64{1, 10, 50, 100, 250, 500, 750, 1000, 5000},
		}, []string{"engine", "mode"}),
		LayoutFallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wikigraph_layout_fallback_placements_total",
			Help: "Nodes placed by the spiral or circle fallback",
		}, []string{"engine", "mode"}),
		LayoutsInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "wikigraph_layouts_in_flight",
			Help: "Layouts currently being computed",
		}),
		ClusterRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wikigraph_cluster_detection_runs_total",
			Help: "Community detection runs",
		}, []string{"converged"}),
		ClusterCount: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "wikigraph_cluster_detection_communities",
			Help:    "Communities found per detection run",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		CacheEventsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wikigraph_cache_events_total",
			Help: "Cache hits, misses and writes",
		}, []string{"key_type", "event"}),
		CacheBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wikigraph_cache_write_bytes",
			Help:    "Size of cache writes in bytes",
			Buckets: []float64{1e3, 1e4, 1e5, 1e6, 1e7},
		}, []string{"key_type"}),

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wikigraph_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wikigraph_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		HTTPRequestsInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "wikigraph_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		}),
		HTTPResponseSize: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wikigraph_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: []float64{100, 1000, 10000, 100000, 1000000},
		}, []string{"method", "route"}),
	}
}

// Registry returns the registry the collectors live on.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

func (p *Prometheus) OnLayoutStart(_ context.Context, engine, mode string, nodes int) {
	p.LayoutsInFlight.Inc()
	p.LayoutNodes.WithLabelValues(engine, mode).Observe(float64(nodes))
}

func (p *Prometheus) OnLayoutComplete(_ context.Context, engine, mode string, stats LayoutStats, d time.Duration, err error) {
	p.LayoutsInFlight.Dec()
	p.LayoutsTotal.WithLabelValues(engine, mode, status(err)).Inc()
	p.LayoutDuration.WithLabelValues(engine, mode).Observe(d.Seconds())
	if stats.Fallback > 0 {
		p.LayoutFallbacks.WithLabelValues(engine, mode).Add(float64(stats.Fallback))
	}
}

func (p *Prometheus) OnClusters(_ context.Context, communities int, converged bool, _ time.Duration) {
	p.ClusterRuns.WithLabelValues(strconv.FormatBool(converged)).Inc()
	p.ClusterCount.Observe(float64(communities))
}

func (p *Prometheus) OnCacheHit(_ context.Context, keyType string) {
	p.CacheEventsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (p *Prometheus) OnCacheMiss(_ context.Context, keyType string) {
	p.CacheEventsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (p *Prometheus) OnCacheSet(_ context.Context, keyType string, size int) {
	p.CacheEventsTotal.WithLabelValues(keyType, "set").Inc()
	p.CacheBytes.WithLabelValues(keyType).Observe(float64(size))
}

func (p *Prometheus) OnRequest(context.Context, string, string) {
	p.HTTPRequestsInFlight.Inc()
}

func (p *Prometheus) OnResponse(_ context.Context, method, route string, code, size int, d time.Duration) {
	p.HTTPRequestsInFlight.Dec()
	s := strconv.Itoa(code)
	p.HTTPRequestsTotal.WithLabelValues(method, route, s).Inc()
	p.HTTPRequestDuration.WithLabelValues(method, route, s).Observe(d.Seconds())
	p.HTTPResponseSize.WithLabelValues(method, route).Observe(float64(size))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

var (
	_ LayoutHooks = (*Prometheus)(nil)
	_ CacheHooks  = (*Prometheus)(nil)
	_ HTTPHooks   = (*Prometheus)(nil)
)
