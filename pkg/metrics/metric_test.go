package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lintang-b-s/elenav/pkg"
	da "github.com/lintang-b-s/elenav/pkg/datastructure"
	"github.com/lintang-b-s/elenav/pkg/engine/routing"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveStrategy(t *testing.T) {
	m := NewOptimizerMetrics()

	m.ObserveStrategy(routing.WeightingStrategy{ID: 2, CarryParentPriority: true}, true, 40, time.Millisecond)
	m.ObserveStrategy(routing.WeightingStrategy{ID: 2, CarryParentPriority: true}, true, 10, time.Millisecond)
	m.ObserveStrategy(routing.WeightingStrategy{ID: 3}, false, 5, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.strategyRuns.WithLabelValues("2", "true", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.strategyRuns.WithLabelValues("3", "false", "false")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.strategySettled))
}

func TestObserveSelection(t *testing.T) {
	m := NewOptimizerMetrics()

	m.ObserveSelection(pkg.MAXIMIZE, routing.SearchOutcome{
		Route: []da.Index{0, 2, 1}, Distance: 1200, Gain: 35, Drop: 20, Found: true,
	})
	m.ObserveSelection(pkg.MINIMIZE, routing.SearchOutcome{Route: []da.Index{}})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.selections.WithLabelValues("maximize", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.selections.WithLabelValues("minimize", "false")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.selectedGain))
}

func TestWriteToFile(t *testing.T) {
	m := NewOptimizerMetrics()
	m.ObserveStrategy(routing.WeightingStrategy{ID: 1, CarryParentPriority: true}, true, 3, time.Microsecond)

	out := filepath.Join(t.TempDir(), "elenav.prom")
	require.NoError(t, m.WriteToFile(out))

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), "elenav_strategy_runs_total"))
}
