package sim

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// PhaseStats holds count/mean/median/min/max/stdev/percentiles for one
// per-fan phase duration list. Percentiles are computed by nearest-rank
// rather than linear interpolation.
type PhaseStats struct {
	Count  int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
	P90    float64
	P95    float64
	P99    float64
}

// computePhaseStats summarizes values (already in seconds). Returns the
// zero-value PhaseStats{} if values is empty.
func computePhaseStats(values []int64) PhaseStats {
	n := len(values)
	if n == 0 {
		return PhaseStats{}
	}

	fv := make([]float64, n)
	for i, v := range values {
		fv[i] = float64(v)
	}
	sorted := append([]float64(nil), fv...)
	sort.Float64s(sorted)

	return PhaseStats{
		Count:  n,
		Mean:   stat.Mean(fv, nil),
		Median: nearestRank(sorted, 0.5),
		StdDev: sampleStdDev(fv),
		Min:    sorted[0],
		Max:    sorted[n-1],
		P90:    nearestRank(sorted, 0.90),
		P95:    nearestRank(sorted, 0.95),
		P99:    nearestRank(sorted, 0.99),
	}
}

// nearestRank returns sorted[floor(q*n)], clamped to [0, n-1].
func nearestRank(sorted []float64, q float64) float64 {
	n := len(sorted)
	idx := int(math.Floor(q * float64(n)))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}

// sampleStdDev returns the sample standard deviation, or 0 for n <= 1.
func sampleStdDev(values []float64) float64 {
	if len(values) <= 1 {
		return 0
	}
	return stat.StdDev(values, nil)
}

// GateStats summarizes one gate's completed-fan count, share of total, and
// utilization against its configured capacity.
type GateStats struct {
	Gate        Gate
	Count       int
	Percent     float64
	Utilization float64
}

// HistogramBin is one temporal bin of turnstile-completion counts.
type HistogramBin struct {
	StartMinute int
	EndMinute   int
	Count       int
	Percent     float64
}

// RunStats is the full set of per-run statistics derived from a completed
// Simulator's fans: six phase-duration distributions, per-gate breakdown,
// percentage inside before kickoff, last-entry time, and the
// reporting-resolution temporal histogram.
type RunStats struct {
	TotalCompleted int

	WaitInspect PhaseStats
	SvcInspect  PhaseStats
	Walk        PhaseStats
	WaitTurn    PhaseStats
	SvcTurn     PhaseStats
	Total       PhaseStats

	PerGate []GateStats

	PercentInsideByKickoff float64
	TimeLastEntry          int64

	Histogram []HistogramBin
}

// ComputeRunStats derives RunStats from sim's fans and monitor (for gate
// utilization) using binMinutes for the temporal histogram.
func ComputeRunStats(sim *Simulator, binMinutes int) RunStats {
	fans := sim.Fans()
	cfg := sim.Config()

	var waitInspect, svcInspect, walk, waitTurn, svcTurn, total []int64
	perGateCount := make(map[Gate]int)
	insideByKickoff := 0
	var lastEntry int64
	haveLast := false
	completed := 0

	for _, f := range fans {
		if !f.Complete() {
			continue
		}
		completed++
		waitInspect = append(waitInspect, f.WaitInspect())
		svcInspect = append(svcInspect, f.SvcInspect())
		walk = append(walk, f.Walk())
		waitTurn = append(waitTurn, f.WaitTurn())
		svcTurn = append(svcTurn, f.SvcTurn())
		total = append(total, f.Total())

		perGateCount[f.Gate]++
		if f.TurnstileEnd <= 0 {
			insideByKickoff++
		}
		if !haveLast || f.TurnstileEnd > lastEntry {
			lastEntry = f.TurnstileEnd
			haveLast = true
		}
	}

	perGate := make([]GateStats, 0, len(Gates))
	for _, g := range Gates {
		capacity, ok := cfg.GateCapacity[g]
		if !ok {
			continue
		}
		count := perGateCount[g]
		pct := 0.0
		if completed > 0 {
			pct = float64(count) / float64(completed) * 100
		}
		util := 0.0
		if capacity > 0 {
			util = float64(count) / float64(capacity)
		}
		perGate = append(perGate, GateStats{Gate: g, Count: count, Percent: pct, Utilization: util})
	}

	pctInside := 0.0
	if completed > 0 {
		pctInside = float64(insideByKickoff) / float64(completed) * 100
	}

	return RunStats{
		TotalCompleted:         completed,
		WaitInspect:            computePhaseStats(waitInspect),
		SvcInspect:             computePhaseStats(svcInspect),
		Walk:                   computePhaseStats(walk),
		WaitTurn:               computePhaseStats(waitTurn),
		SvcTurn:                computePhaseStats(svcTurn),
		Total:                  computePhaseStats(total),
		PerGate:                perGate,
		PercentInsideByKickoff: pctInside,
		TimeLastEntry:          lastEntry,
		Histogram:              computeHistogram(fans, binMinutes),
	}
}

// computeHistogram bins completed fans' turnstile-end times (converted to
// minutes) into binMinutes-wide buckets spanning floor(min/bin)*bin to
// (floor(max/bin)+1)*bin.
func computeHistogram(fans []*Fan, binMinutes int) []HistogramBin {
	var minutes []float64
	for _, f := range fans {
		if !f.Complete() {
			continue
		}
		minutes = append(minutes, float64(f.TurnstileEnd)/60.0)
	}
	if len(minutes) == 0 {
		return nil
	}

	lo, hi := minutes[0], minutes[0]
	for _, m := range minutes {
		if m < lo {
			lo = m
		}
		if m > hi {
			hi = m
		}
	}
	start := int(math.Floor(lo/float64(binMinutes))) * binMinutes
	end := (int(math.Floor(hi/float64(binMinutes))) + 1) * binMinutes

	bins := make([]HistogramBin, 0, (end-start)/binMinutes)
	for s := start; s < end; s += binMinutes {
		bins = append(bins, HistogramBin{StartMinute: s, EndMinute: s + binMinutes})
	}
	for _, m := range minutes {
		idx := (int(math.Floor(m/float64(binMinutes))) * binMinutes - start) / binMinutes
		if idx < 0 {
			idx = 0
		}
		if idx >= len(bins) {
			idx = len(bins) - 1
		}
		bins[idx].Count++
	}
	for i := range bins {
		bins[i].Percent = float64(bins[i].Count) / float64(len(minutes)) * 100
	}
	return bins
}
