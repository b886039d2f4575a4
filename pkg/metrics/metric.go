package metrics

import (
	"strconv"
	"time"

	"github.com/lintang-b-s/elenav/pkg"
	"github.com/lintang-b-s/elenav/pkg/engine/routing"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "elenav"

// OptimizerMetrics prometheus collectors for the strategy searches. registered on its own
// registry so several engines can live in one process.
type OptimizerMetrics struct {
	reg *prometheus.Registry

	strategyRuns     *prometheus.CounterVec
	strategySettled  *prometheus.HistogramVec
	strategyDuration *prometheus.HistogramVec
	selections       *prometheus.CounterVec
	selectedGain     *prometheus.HistogramVec
	selectedDistance *prometheus.HistogramVec
}

func NewOptimizerMetrics() *OptimizerMetrics {
	reg := prometheus.NewRegistry()
	m := &OptimizerMetrics{
		reg: reg,
		strategyRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "strategy_runs_total",
			Help:      "Constrained searches run, by weighting strategy and whether the target was reached.",
		}, []string{"strategy", "carry", "found"}),
		strategySettled: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "strategy_settled_vertices",
			Help:      "Vertices settled by one constrained search.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}, []string{"strategy", "carry"}),
		strategyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "strategy_duration_seconds",
			Help:      "Wall time of one constrained search.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 12),
		}, []string{"strategy", "carry"}),
		selections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "selections_total",
			Help:      "Strategy selections, by objective and whether a route within budget was found.",
		}, []string{"objective", "found"}),
		selectedGain: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "selected_elevation_gain_meters",
			Help:      "Elevation gain of the selected route.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}, []string{"objective"}),
		selectedDistance: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "selected_distance_meters",
			Help:      "Distance of the selected route.",
			Buckets:   prometheus.ExponentialBuckets(100, 2, 12),
		}, []string{"objective"}),
	}

	reg.MustRegister(m.strategyRuns, m.strategySettled, m.strategyDuration,
		m.selections, m.selectedGain, m.selectedDistance)
	return m
}

func strategyLabel(ws routing.WeightingStrategy) (string, string) {
	carry := "false"
	if ws.CarryParentPriority {
		carry = "true"
	}
	return strconv.Itoa(int(ws.ID)), carry
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func (m *OptimizerMetrics) ObserveStrategy(strategy routing.WeightingStrategy, found bool, settled int,
	elapsed time.Duration) {
	id, carry := strategyLabel(strategy)
	m.strategyRuns.WithLabelValues(id, carry, boolLabel(found)).Inc()
	m.strategySettled.WithLabelValues(id, carry).Observe(float64(settled))
	m.strategyDuration.WithLabelValues(id, carry).Observe(elapsed.Seconds())
}

func (m *OptimizerMetrics) ObserveSelection(objective pkg.Objective, outcome routing.SearchOutcome) {
	m.selections.WithLabelValues(objective.String(), boolLabel(outcome.Found)).Inc()
	if !outcome.Found {
		return
	}
	m.selectedGain.WithLabelValues(objective.String()).Observe(outcome.Gain)
	m.selectedDistance.WithLabelValues(objective.String()).Observe(outcome.Distance)
}

func (m *OptimizerMetrics) Registry() *prometheus.Registry {
	return m.reg
}

// WriteToFile dumps every collector in the prometheus text format.
func (m *OptimizerMetrics) WriteToFile(filename string) error {
	return prometheus.WriteToTextfile(filename, m.reg)
}
