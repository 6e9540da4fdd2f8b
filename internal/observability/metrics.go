// File: internal/observability/metrics.go
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for provider-backed operations.
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
)

// Metrics holds the Prometheus collectors of the service. Each instance owns
// its registry so tests can build as many as they like. All methods are safe
// to call on a nil receiver, which records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	Analyses        *prometheus.CounterVec
	ThreatLevels    *prometheus.CounterVec
	TopicScans      *prometheus.CounterVec
	ProfilesFound   prometheus.Counter
	GraphsGenerated prometheus.Counter
	ActiveThreats   prometheus.Gauge
}

// NewMetrics creates and registers all collectors under the given namespace.
func NewMetrics(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "profile_analyses_total",
			Help:      "Profile analyses by outcome",
		}, []string{"outcome"}),
		ThreatLevels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "threat_levels_total",
			Help:      "Analyzed profiles by threat level",
		}, []string{"level"}),
		TopicScans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "topic_scans_total",
			Help:      "Topic scans by outcome",
		}, []string{"outcome"}),
		ProfilesFound: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suspect_profiles_found_total",
			Help:      "Suspect profiles returned by topic scans",
		}),
		GraphsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "botnet_graphs_generated_total",
			Help:      "Interaction graphs generated",
		}),
		ActiveThreats: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dashboard_active_threats",
			Help:      "Current simulated active threat count",
		}),
	}

	m.registry.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.Analyses,
		m.ThreatLevels,
		m.TopicScans,
		m.ProfilesFound,
		m.GraphsGenerated,
		m.ActiveThreats,
	)
	return m
}

// Registry returns the Prometheus registry backing these metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records a served request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordAnalysis records the outcome and verdict of a profile analysis.
func (m *Metrics) RecordAnalysis(outcome, level string) {
	if m == nil {
		return
	}
	m.Analyses.WithLabelValues(outcome).Inc()
	m.ThreatLevels.WithLabelValues(level).Inc()
}

// RecordScan records a topic scan and how many profiles it produced.
func (m *Metrics) RecordScan(outcome string, profiles int) {
	if m == nil {
		return
	}
	m.TopicScans.WithLabelValues(outcome).Inc()
	m.ProfilesFound.Add(float64(profiles))
}

// RecordGraph counts a generated interaction graph.
func (m *Metrics) RecordGraph() {
	if m == nil {
		return
	}
	m.GraphsGenerated.Inc()
}

// SetActiveThreats publishes the simulated active threat count.
func (m *Metrics) SetActiveThreats(n int) {
	if m == nil {
		return
	}
	m.ActiveThreats.Set(float64(n))
}
