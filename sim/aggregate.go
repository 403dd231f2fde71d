package sim

import (
	"sync"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// RunResult bundles everything one completed run produced: its stats, its
// monitor (for utilization), and the raw fan list (for the histogram
// hand-off).
type RunResult struct {
	RunIndex int
	Stats    RunStats
	Monitor  *Monitor
	Config   *Config
	Fans     []*Fan
}

// MetricSeries holds one metric's values across all successful runs plus
// its cross-run mean/stdev/min/max.
type MetricSeries struct {
	Name   string
	Values []float64
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// AggregateResult is the full cross-run output of the Aggregator: each
// run's individual result (for per-run summaries, capped to a handful for
// display) and the fixed set of cross-run metric series.
type AggregateResult struct {
	Runs    []*RunResult
	Metrics map[string]*MetricSeries
}

// metricNames is the fixed set of cross-run metrics reported for every
// aggregate run.
var metricNames = []string{
	"percent_inside_by_kickoff",
	"time_last_entry",
	"mean_wait_total",
	"mean_total_time",
	"mean_wait_inspect",
	"mean_wait_turn",
	"max_inspection_fifo",
	"utilization_inspection",
	"max_gate_fifo",
	"weighted_turnstile_utilization",
}

// RunAggregator runs K independent simulations and aggregates cross-run
// statistics. Each run gets a fresh, independently-seeded Simulator
// (seed = baseSeed + runIndex, so K=1 reproduces a single deterministic
// run under --seed) and its own isolated state.
type RunAggregator struct {
	cfg      *Config
	baseSeed int64
}

// NewRunAggregator creates an aggregator for cfg.NumRuns independent runs.
func NewRunAggregator(cfg *Config, baseSeed int64) *RunAggregator {
	return &RunAggregator{cfg: cfg, baseSeed: baseSeed}
}

// Run executes all configured runs. Runs may execute in parallel across OS
// threads: each owns an isolated Simulator and PartitionedRNG, and
// aggregation happens only after every run has returned. A run whose
// handler panics on an invariant violation is recovered and dropped;
// aggregation proceeds over the remaining completed runs.
func (a *RunAggregator) Run() *AggregateResult {
	n := a.cfg.NumRuns
	results := make([]*RunResult, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = a.runOne(idx)
		}(i)
	}
	wg.Wait()

	completed := make([]*RunResult, 0, n)
	for _, r := range results {
		if r != nil {
			completed = append(completed, r)
		}
	}
	if len(completed) < n {
		logrus.Warnf("%d of %d runs failed an invariant check and were dropped from aggregation", n-len(completed), n)
	}

	return &AggregateResult{
		Runs:    completed,
		Metrics: aggregateMetrics(completed),
	}
}

// runOne executes a single simulation run, recovering a mid-run panic into
// a nil result so one run's invariant violation doesn't abort the batch.
func (a *RunAggregator) runOne(idx int) (result *RunResult) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("run %d aborted: %v", idx, r)
			result = nil
		}
	}()

	s := NewSimulator(a.cfg, a.baseSeed+int64(idx))
	s.Run()
	return &RunResult{
		RunIndex: idx,
		Stats:    ComputeRunStats(s, a.cfg.ReportBinMinutes),
		Monitor:  s.Monitor(),
		Config:   a.cfg,
		Fans:     s.Fans(),
	}
}

// weightedTurnstileUtilization computes one run's capacity-weighted mean
// turnstile utilization: (Σ_g K_g·util_g) / Σ_g K_g.
func weightedTurnstileUtilization(r *RunResult) float64 {
	var weighted, totalTurnstiles float64
	for g, n := range r.Config.TurnstilesPerGate {
		util := r.Monitor.GateUtilization(g, n)
		weighted += util * float64(n)
		totalTurnstiles += float64(n)
	}
	if totalTurnstiles == 0 {
		return 0
	}
	return weighted / totalTurnstiles
}

func aggregateMetrics(runs []*RunResult) map[string]*MetricSeries {
	series := make(map[string]*MetricSeries, len(metricNames))
	for _, name := range metricNames {
		series[name] = &MetricSeries{Name: name}
	}

	for _, r := range runs {
		series["percent_inside_by_kickoff"].Values = append(series["percent_inside_by_kickoff"].Values, r.Stats.PercentInsideByKickoff)
		series["time_last_entry"].Values = append(series["time_last_entry"].Values, float64(r.Stats.TimeLastEntry))
		series["mean_wait_total"].Values = append(series["mean_wait_total"].Values, r.Stats.WaitInspect.Mean+r.Stats.WaitTurn.Mean)
		series["mean_total_time"].Values = append(series["mean_total_time"].Values, r.Stats.Total.Mean)
		series["mean_wait_inspect"].Values = append(series["mean_wait_inspect"].Values, r.Stats.WaitInspect.Mean)
		series["mean_wait_turn"].Values = append(series["mean_wait_turn"].Values, r.Stats.WaitTurn.Mean)
		series["max_inspection_fifo"].Values = append(series["max_inspection_fifo"].Values, float64(r.Monitor.PeakInspectionLine()))
		series["utilization_inspection"].Values = append(series["utilization_inspection"].Values, r.Monitor.InspectionUtilization(r.Config.AgentsInspection))
		series["max_gate_fifo"].Values = append(series["max_gate_fifo"].Values, float64(r.Monitor.PeakGateLineMax()))
		series["weighted_turnstile_utilization"].Values = append(series["weighted_turnstile_utilization"].Values, weightedTurnstileUtilization(r))
	}

	for _, s := range series {
		s.Mean = stat.Mean(s.Values, nil)
		s.StdDev = sampleStdDev(s.Values)
		s.Min, s.Max = minMax(s.Values)
	}
	return series
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// MetricLabel returns a human-readable label for a metric name, used by
// the report formatter.
func MetricLabel(name string) string {
	labels := map[string]string{
		"percent_inside_by_kickoff":      "% inside by kickoff",
		"time_last_entry":                "time of last entry (s)",
		"mean_wait_total":                "mean total queue wait (s)",
		"mean_total_time":                "mean total time (s)",
		"mean_wait_inspect":              "mean inspection wait (s)",
		"mean_wait_turn":                 "mean turnstile wait (s)",
		"max_inspection_fifo":            "max inspection FIFO size",
		"utilization_inspection":         "inspection utilization",
		"max_gate_fifo":                  "max gate FIFO size (any gate)",
		"weighted_turnstile_utilization": "capacity-weighted turnstile utilization",
	}
	if l, ok := labels[name]; ok {
		return l
	}
	return name
}
