package monitor

import (
	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "jsmon"

// RunMetrics collects Prometheus metrics for one monitor pass on a private registry.
type RunMetrics struct {
	registry      *prometheus.Registry
	checks        *prometheus.CounterVec
	checkDuration *prometheus.HistogramVec
	notifications *prometheus.CounterVec
	fetchedBytes  prometheus.Counter
	lastRun       prometheus.Gauge
	runDuration   prometheus.Gauge
}

// NewRunMetrics registers the run metrics. Every check state starts at zero so the exported
// series set is stable across runs.
func NewRunMetrics() *RunMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &RunMetrics{
		registry: reg,
		checks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "checks_total",
			Help:      "Endpoint checks by outcome",
		}, []string{"state"}),
		checkDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "check_duration_seconds",
			Help:      "Time spent checking one endpoint",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"state"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "notifications_total",
			Help:      "Notification deliveries by result",
		}, []string{"result"}),
		fetchedBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "fetched_bytes_total",
			Help:      "Bytes of content fetched",
		}),
		lastRun: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
		runDuration: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_run_duration_seconds",
			Help:      "Duration of the last run",
		}),
	}

	for _, s := range models.AllCheckStates {
		m.checks.WithLabelValues(s.String())
	}
	m.notifications.WithLabelValues("delivered")
	m.notifications.WithLabelValues("failed")
	return m
}

// Registry exposes the underlying registry.
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveCheck records one endpoint result.
func (m *RunMetrics) ObserveCheck(result models.CheckResult) {
	state := result.State.String()
	m.checks.WithLabelValues(state).Inc()
	m.checkDuration.WithLabelValues(state).Observe(result.Duration.Seconds())
	if result.NewSize > 0 {
		m.fetchedBytes.Add(float64(result.NewSize))
	}
	m.notifications.WithLabelValues("delivered").Add(float64(result.NotifiedOK))
	m.notifications.WithLabelValues("failed").Add(float64(result.NotifiedFailed))
}

// ObserveRun records run-level gauges.
func (m *RunMetrics) ObserveRun(summary *models.RunSummary) {
	m.lastRun.Set(float64(summary.FinishedAt.Unix()))
	m.runDuration.Set(summary.FinishedAt.Sub(summary.StartedAt).Seconds())
}

// WriteTextfile writes the registry in the text exposition format for the node exporter
// textfile collector. The file is replaced atomically.
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return common.WrapErrorf(err, "failed to write metrics to '%s'", path)
	}
	return nil
}
