package metrics

import (
	"regexp"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "ecsig"

var (
	Prom = New()
)

var (
	_ Metrics  = (*Prometheus)(nil)
	_ Recorder = (*Prometheus)(nil)
)

type Prometheus struct {
	registry *prometheus.Registry

	conversions        *prometheus.CounterVec
	conversionDuration *prometheus.HistogramVec
	rateLimited        prometheus.Counter
	requests           *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
}

func New() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Signature operations by operation, formats and result.",
		}, []string{"operation", "from", "to", "result"}),
		conversionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Time spent in signature operations.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"operation"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	p.registry.MustRegister(p.conversions, p.conversionDuration, p.rateLimited, p.requests, p.requestDuration)

	return p
}

func (p *Prometheus) WithGoCollectorRuntimeMetrics() {
	_ = p.registry.Register(collectors.NewGoCollector(
		collectors.WithGoCollectorRuntimeMetrics(collectors.GoRuntimeMetricsRule{Matcher: regexp.MustCompile("/.*")}),
	))
}

func (p *Prometheus) WithBuildInfoCollector() {
	_ = p.registry.Register(collectors.NewBuildInfoCollector())
}

func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

func (p *Prometheus) ObserveConversion(operation, from, to, result string, d time.Duration) {
	p.conversions.WithLabelValues(operation, from, to, result).Inc()
	p.conversionDuration.WithLabelValues(operation).Observe(d.Seconds())
}

func (p *Prometheus) IncRateLimited() {
	p.rateLimited.Inc()
}
