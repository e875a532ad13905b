package harness

import (
	"encoding/json"

	tsgraph "github.com/tsgraph/core"
)

// EvaluationObserver receives a summary after every Engine.Tick,
// generalizing the teacher's SchedulerObserver from work-group
// summaries to evaluation-cycle summaries.
type EvaluationObserver interface {
	EvaluationCompleted(summary EvaluationSummary)
}

// InstrumentationConfig selects which observers WithInstrumentation
// wires into an Engine.
type InstrumentationConfig struct {
	// Observer, if set, is always included first in the chain.
	Observer EvaluationObserver

	EnableStructuredLogging bool
	StructuredLogger        tsgraph.Logger

	EnablePrometheus bool
	Collector        *MetricsCollector
}

type noopObserver struct{}

func (noopObserver) EvaluationCompleted(EvaluationSummary) {}

type compositeObserver struct {
	observers []EvaluationObserver
}

func (c compositeObserver) EvaluationCompleted(summary EvaluationSummary) {
	for _, observer := range c.observers {
		observer.EvaluationCompleted(summary)
	}
}

type loggingObserver struct {
	logger tsgraph.Logger
}

func newLoggingObserver(logger tsgraph.Logger) EvaluationObserver {
	if logger == nil {
		return noopObserver{}
	}
	return loggingObserver{logger: logger}
}

func (o loggingObserver) EvaluationCompleted(summary EvaluationSummary) {
	payload := map[string]any{
		"correlation_id":  summary.CorrelationID.String(),
		"tick":            summary.TickIndex,
		"engine_time":     int64(summary.Time),
		"nodes_evaluated": summary.NodesEvaluated,
		"nodes_failed":    summary.NodesFailed,
		"notifications":   summary.Notifications,
		"duration_ms":     durationMillis(summary),
	}
	if summary.Err != nil {
		payload["error"] = summary.Err.Error()
	}
	data, err := json.Marshal(payload)
	if err != nil {
		o.logger.Error("evaluation summary marshal error", "err", err)
		return
	}
	o.logger.Info(string(data))
}

func durationMillis(summary EvaluationSummary) float64 {
	return float64(summary.Duration.Microseconds()) / 1000.0
}

func buildObserverChain(logger tsgraph.Logger, cfg InstrumentationConfig) EvaluationObserver {
	var observers []EvaluationObserver

	if cfg.Observer != nil {
		observers = append(observers, cfg.Observer)
	}

	if cfg.EnableStructuredLogging {
		structuredLogger := cfg.StructuredLogger
		if structuredLogger == nil {
			structuredLogger = logger
		}
		observers = append(observers, newLoggingObserver(structuredLogger))
	}

	if cfg.EnablePrometheus {
		collector := cfg.Collector
		if collector == nil {
			collector = NewMetricsCollector(nil)
		}
		observers = append(observers, collector)
	}

	if len(observers) == 0 {
		return noopObserver{}
	}
	if len(observers) == 1 {
		return observers[0]
	}
	return compositeObserver{observers: observers}
}
