package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggregateTestConfig(runs int) *Config {
	cfg := DefaultConfig()
	cfg.TotalFans = 200
	cfg.NumRuns = runs
	cfg.AgentsInspection = 5
	cfg.GateCapacity = map[Gate]int64{GateA: 150, GateB: 150}
	cfg.TurnstilesPerGate = map[Gate]int{GateA: 2, GateB: 2}
	cfg.WalkBaseSeconds = WalkBaseTable{
		North: {GateA: 60, GateB: 90},
		South: {GateA: 90, GateB: 60},
	}
	return cfg
}

func TestRunAggregator_RunsAllConfiguredRuns(t *testing.T) {
	cfg := aggregateTestConfig(4)
	result := NewRunAggregator(cfg, 1).Run()
	require.Len(t, result.Runs, 4)
}

func TestRunAggregator_MetricsCoverFixedSet(t *testing.T) {
	cfg := aggregateTestConfig(3)
	result := NewRunAggregator(cfg, 1).Run()
	for _, name := range metricNames {
		m, ok := result.Metrics[name]
		require.True(t, ok, "missing metric %s", name)
		assert.Len(t, m.Values, 3)
	}
}

func TestRunAggregator_RunIndicesArePreserved(t *testing.T) {
	cfg := aggregateTestConfig(3)
	result := NewRunAggregator(cfg, 1).Run()
	seen := make(map[int]bool)
	for _, r := range result.Runs {
		seen[r.RunIndex] = true
	}
	assert.Len(t, seen, 3)
}

func TestMinMax_EmptyIsZero(t *testing.T) {
	lo, hi := minMax(nil)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
}

func TestMinMax_Basic(t *testing.T) {
	lo, hi := minMax([]float64{3, 1, 4, 1, 5})
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 5.0, hi)
}

func TestWeightedTurnstileUtilization_WithinUnitInterval(t *testing.T) {
	cfg := aggregateTestConfig(1)
	s := NewSimulator(cfg, 1)
	s.Run()
	r := &RunResult{Config: cfg, Monitor: s.Monitor()}
	util := weightedTurnstileUtilization(r)
	assert.GreaterOrEqual(t, util, 0.0)
	assert.LessOrEqual(t, util, 1.0)
}
