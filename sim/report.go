package sim

import (
	"fmt"
	"sort"
	"strings"
)

// maxRunsDetailed caps how many individual run summaries are printed when
// NUM_RUNS is large; the rest still feed the cross-run aggregate.
const maxRunsDetailed = 5

// PrintReport writes the full human-readable report to stdout: one
// per-run summary for each of the first maxRunsDetailed runs, then the
// cross-run aggregate block.
func PrintReport(result *AggregateResult) {
	fmt.Println(strings.Repeat("=", 78))
	fmt.Println("GATEFLOW-SIM FINAL REPORT")
	fmt.Println(strings.Repeat("=", 78))

	detailed := result.Runs
	if len(detailed) > maxRunsDetailed {
		detailed = detailed[:maxRunsDetailed]
	}
	for _, r := range detailed {
		printRunSummary(r)
	}
	if len(result.Runs) > len(detailed) {
		fmt.Printf("\n(%d additional runs omitted from per-run detail, included in aggregate below)\n",
			len(result.Runs)-len(detailed))
	}

	printAggregate(result)
	printBottleneckCallout(result)
}

func printRunSummary(r *RunResult) {
	s := r.Stats
	fmt.Printf("\n--- Run %d ---\n", r.RunIndex+1)
	fmt.Printf("Fans processed        : %d\n", s.TotalCompleted)
	fmt.Printf("Last entry            : %.1f min\n", float64(s.TimeLastEntry)/60)
	fmt.Printf("Inside before kickoff : %.1f%%\n", s.PercentInsideByKickoff)

	printPhase("Inspection wait ", s.WaitInspect)
	printPhase("Inspection svc  ", s.SvcInspect)
	printPhase("Walk            ", s.Walk)
	printPhase("Turnstile wait  ", s.WaitTurn)
	printPhase("Turnstile svc   ", s.SvcTurn)
	printPhase("Total           ", s.Total)

	fmt.Println("\nGate        Count        % Total   Capacity Util   Status")
	fmt.Println(strings.Repeat("-", 68))
	gates := append([]GateStats(nil), s.PerGate...)
	sort.Slice(gates, func(i, j int) bool { return gates[i].Gate < gates[j].Gate })
	for _, g := range gates {
		fmt.Printf("%-10s  %-11d  %6.1f%%   %11.1f%%   %s\n",
			g.Gate, g.Count, g.Percent, g.Utilization*100, gateStatus(g.Utilization))
	}

	printHistogram(s.Histogram)
}

func printPhase(label string, p PhaseStats) {
	if p.Count == 0 {
		fmt.Printf("%s: no data\n", label)
		return
	}
	fmt.Printf("%s: mean %.1f min (%.0fs) | median %.1f min | p90 %.1f min | p95 %.1f min | min %.1f min | max %.1f min\n",
		label, p.Mean/60, p.Mean, p.Median/60, p.P90/60, p.P95/60, p.Min/60, p.Max/60)
}

func gateStatus(util float64) string {
	switch {
	case util > 0.90:
		return "SATURATED"
	case util > 0.80:
		return "HIGH"
	default:
		return "NORMAL"
	}
}

// maxHistogramRows caps the per-run report's temporal histogram at 12
// rows (2 hours at the default 10-minute report resolution).
const maxHistogramRows = 12

func printHistogram(bins []HistogramBin) {
	if len(bins) == 0 {
		return
	}
	if len(bins) > maxHistogramRows {
		bins = bins[:maxHistogramRows]
	}
	fmt.Println("\nArrival-to-entry histogram")
	fmt.Println(strings.Repeat("-", 60))
	maxCount := 0
	for _, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	const barWidth = 40
	for _, b := range bins {
		barLen := 0
		if maxCount > 0 {
			barLen = b.Count * barWidth / maxCount
		}
		fmt.Printf("[%5d,%5d) min  %6d (%5.1f%%)  %s\n",
			b.StartMinute, b.EndMinute, b.Count, b.Percent, strings.Repeat("#", barLen))
	}
}

func printAggregate(result *AggregateResult) {
	fmt.Println("\n" + strings.Repeat("=", 78))
	fmt.Printf("CROSS-RUN AGGREGATE (n=%d completed runs)\n", len(result.Runs))
	fmt.Println(strings.Repeat("=", 78))
	for _, name := range metricNames {
		m := result.Metrics[name]
		fmt.Printf("%-40s mean %.2f  stdev %.2f\n", MetricLabel(name), m.Mean, m.StdDev)
		fmt.Printf("%40s [min %.2f, max %.2f]  n=%d\n", "", m.Min, m.Max, len(m.Values))
	}
}

func printBottleneckCallout(result *AggregateResult) {
	if len(result.Runs) == 0 {
		return
	}
	worstGate := Gate("")
	worstUtil := -1.0
	for g, n := range result.Runs[0].Config.TurnstilesPerGate {
		var sum float64
		for _, r := range result.Runs {
			sum += r.Monitor.GateUtilization(g, n)
		}
		avg := sum / float64(len(result.Runs))
		if avg > worstUtil {
			worstUtil = avg
			worstGate = g
		}
	}
	if worstGate == "" {
		return
	}
	fmt.Printf("\nBottleneck gate: %s (mean turnstile utilization %.1f%%)\n", worstGate, worstUtil*100)
}
