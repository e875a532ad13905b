package harness

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stretchr/testify/require"
)

func TestNewMetricsCollectorRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	collector := NewMetricsCollector(registry)
	require.Same(t, registry, collector.Registry())

	families, err := registry.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestNewMetricsCollectorDefaultsToFreshRegistry(t *testing.T) {
	collector := NewMetricsCollector(nil)
	require.NotNil(t, collector.Registry())
}

func TestMetricsCollectorEvaluationCompletedUpdatesGaugeNotCounter(t *testing.T) {
	collector := NewMetricsCollector(prometheus.NewRegistry())

	collector.EvaluationCompleted(EvaluationSummary{
		Duration:       10 * time.Millisecond,
		NodesEvaluated: 2,
		NodesFailed:    1,
		Notifications:  5,
	})
	require.Equal(t, float64(5), readGauge(t, collector))

	// A later tick reports a smaller cumulative total (e.g. after a
	// counter reset elsewhere); Set must reflect it exactly, not
	// compound with the previous value the way Add would.
	collector.EvaluationCompleted(EvaluationSummary{Notifications: 3})
	require.Equal(t, float64(3), readGauge(t, collector))
}

func TestMetricsCollectorCountsFailedEvaluations(t *testing.T) {
	collector := NewMetricsCollector(prometheus.NewRegistry())
	collector.EvaluationCompleted(EvaluationSummary{Err: errors.New("boom")})

	families, err := collector.Registry().Gather()
	require.NoError(t, err)

	var found bool
	for _, f := range families {
		if f.GetName() == "tsgraph_harness_ticks_failed_total" {
			found = true
			require.Equal(t, float64(1), f.Metric[0].GetCounter().GetValue())
		}
	}
	require.True(t, found)
}

func readGauge(t *testing.T, collector *MetricsCollector) float64 {
	t.Helper()
	families, err := collector.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "tsgraph_harness_notifications_total" {
			return f.Metric[0].GetGauge().GetValue()
		}
	}
	t.Fatal("notifications gauge not found")
	return 0
}
