package harness

import "github.com/prometheus/client_golang/prometheus"

// MetricsCollector exports evaluation summaries as real Prometheus
// metrics, replacing the teacher's hand-rolled PrometheusWorkGroupCollector
// text writer with github.com/prometheus/client_golang.
type MetricsCollector struct {
	registry *prometheus.Registry

	tickDuration      prometheus.Histogram
	nodesEvaluated    prometheus.Counter
	nodesFailed       prometheus.Counter
	notifications     prometheus.Gauge
	evaluationsFailed prometheus.Counter
}

// NewMetricsCollector registers the engine's metrics against registry,
// or a fresh prometheus.Registry if nil.
func NewMetricsCollector(registry *prometheus.Registry) *MetricsCollector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	c := &MetricsCollector{
		registry: registry,
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tsgraph",
			Subsystem: "harness",
			Name:      "tick_duration_seconds",
			Help:      "Evaluation duration per tick.",
			Buckets:   prometheus.DefBuckets,
		}),
		nodesEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tsgraph",
			Subsystem: "harness",
			Name:      "nodes_evaluated_total",
			Help:      "Nodes evaluated successfully across all ticks.",
		}),
		nodesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tsgraph",
			Subsystem: "harness",
			Name:      "nodes_failed_total",
			Help:      "Node evaluation failures across all ticks.",
		}),
		notifications: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tsgraph",
			Subsystem: "harness",
			Name:      "notifications_total",
			Help:      "Cumulative NotifiableContext.Notify calls observed as of the latest tick.",
		}),
		evaluationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tsgraph",
			Subsystem: "harness",
			Name:      "ticks_failed_total",
			Help:      "Ticks that returned a non-nil error.",
		}),
	}
	registry.MustRegister(c.tickDuration, c.nodesEvaluated, c.nodesFailed, c.notifications, c.evaluationsFailed)
	return c
}

// Registry returns the underlying Prometheus registry, for wiring into
// an HTTP handler via promhttp.
func (c *MetricsCollector) Registry() *prometheus.Registry { return c.registry }

// EvaluationCompleted implements EvaluationObserver.
func (c *MetricsCollector) EvaluationCompleted(summary EvaluationSummary) {
	c.tickDuration.Observe(summary.Duration.Seconds())
	c.nodesEvaluated.Add(float64(summary.NodesEvaluated))
	c.nodesFailed.Add(float64(summary.NodesFailed))
	c.notifications.Set(float64(summary.Notifications))
	if summary.Err != nil {
		c.evaluationsFailed.Inc()
	}
}

var _ EvaluationObserver = (*MetricsCollector)(nil)
